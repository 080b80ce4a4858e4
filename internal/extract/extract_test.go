package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:rPr><w:rFonts w:ascii="Calibri"/></w:rPr><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Experience</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p><w:r><w:drawing/></w:r></w:p>
    <w:sectPr><w:cols w:num="2"/></w:sectPr>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDocxTextAndSignals(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/document.xml": docxBody})

	doc, err := New().Extract(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.MimeType != mimeDOCX {
		t.Fatalf("expected docx mime, got %s", doc.MimeType)
	}
	for _, want := range []string{"Jane Doe", "Experience", "Go"} {
		if !strings.Contains(doc.Text, want) {
			t.Fatalf("expected %q in text %q", want, doc.Text)
		}
	}
	if doc.Signals.Tables != 1 || doc.Signals.Images != 1 || !doc.Signals.MultiColumn {
		t.Fatalf("unexpected signals: %+v", doc.Signals)
	}
	if len(doc.Signals.Fonts) != 1 || doc.Signals.Fonts[0] != "Calibri" {
		t.Fatalf("unexpected fonts: %v", doc.Signals.Fonts)
	}
}

func TestExtractPlainTextByExtension(t *testing.T) {
	doc, err := New().Extract(context.Background(), []byte("Go developer\nSkills: Go"), "", "resume.txt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.MimeType != mimeText {
		t.Fatalf("expected text/plain, got %s", doc.MimeType)
	}
}

func TestExtractRejectsInvalidDocuments(t *testing.T) {
	notes := buildDocx(t, map[string]string{"notes.txt": "hello"})

	cases := []struct {
		name        string
		data        []byte
		mime        string
		file        string
		unsupported bool
	}{
		{name: "plain zip", data: notes, mime: "application/zip", file: "notes.zip", unsupported: true},
		{name: "image", data: []byte("\x89PNG\r\n\x1a\n0000"), mime: "image/png", file: "photo.png", unsupported: true},
		{name: "empty", data: nil, mime: "application/pdf", file: "resume.pdf"},
		{name: "broken pdf", data: []byte("%PDF-1.4 not really"), mime: "application/pdf", file: "resume.pdf"},
		{name: "blank text", data: []byte("   \n  "), mime: "text/plain", file: "resume.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Extract(context.Background(), tc.data, tc.mime, tc.file)
			var extErr *ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("expected *ExtractionError, got %v", err)
			}
			if got := errors.Is(err, ErrUnsupported); got != tc.unsupported {
				t.Fatalf("errors.Is(ErrUnsupported) = %v, want %v (err=%v)", got, tc.unsupported, err)
			}
		})
	}
}

func TestExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, []byte("Jane Doe\nGo developer"), "text/plain", "resume.txt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		t.Fatalf("cancellation must not be an *ExtractionError, got %v", err)
	}
}
