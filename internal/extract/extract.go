package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText  = "text/plain"
	mimeMD    = "text/markdown"
	mimeZip   = "application/zip"
	mimeOctet = "application/octet-stream"
)

// ErrUnsupported marks documents whose type cannot be extracted.
var ErrUnsupported = errors.New("unsupported document type")

// ExtractionError reports a document that is not a valid or parseable file.
type ExtractionError struct {
	MimeType string
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.FileName, e.MimeType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StructuralSignals carries layout metadata observed during extraction.
// Zero values mean nothing was detected.
type StructuralSignals struct {
	MultiColumn bool     `json:"multi_column"`
	Images      int      `json:"images"`
	Tables      int      `json:"tables"`
	Fonts       []string `json:"fonts,omitempty"`
}

// Document is the result of extracting one uploaded file.
type Document struct {
	Text     string
	MimeType string
	Signals  StructuralSignals
}

// Extractor pulls text and structural signals out of resume documents.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract extracts text from an in-memory payload. A done context returns
// ctx.Err() as is; every other failure is an *ExtractionError, and
// unsupported types also match ErrUnsupported.
func (x *Extractor) Extract(ctx context.Context, data []byte, mimeType string, fileName string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	wrap := func(err error) error {
		return &ExtractionError{MimeType: normalized, FileName: fileName, Err: err}
	}
	if len(data) == 0 {
		return Document{}, wrap(errors.New("empty document"))
	}

	var (
		doc Document
		err error
	)
	switch normalized {
	case mimePDF:
		doc, err = extractPDF(data)
	case mimeDOCX:
		doc, err = extractDOCX(data)
	case mimeText, mimeMD:
		doc, err = extractPlain(data)
	default:
		return Document{}, wrap(fmt.Errorf("%w: %s", ErrUnsupported, normalized))
	}
	if err != nil {
		return Document{}, wrap(err)
	}
	doc.MimeType = normalized
	if strings.TrimSpace(doc.Text) == "" {
		return Document{}, wrap(errors.New("no extractable text"))
	}
	return doc, nil
}

func extractPlain(data []byte) (Document, error) {
	if !utf8.Valid(data) {
		return Document{}, errors.New("text is not valid utf-8")
	}
	return Document{Text: string(data)}, nil
}

func extractPDF(data []byte) (doc Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return Document{}, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Document{}, err
	}
	doc.Text = buf.String()
	doc.Signals = pdfSignals(reader)
	return doc, nil
}

// pdfSignals collects font names and image XObjects. A malformed page only
// loses its own signals.
func pdfSignals(reader *pdf.Reader) StructuralSignals {
	var sig StructuralSignals
	fonts := map[string]struct{}{}
	for i := 1; i <= reader.NumPage(); i++ {
		func() {
			defer func() { _ = recover() }()
			page := reader.Page(i)
			if page.V.IsNull() {
				return
			}
			for _, t := range page.Content().Text {
				if name := strings.TrimSpace(t.Font); name != "" {
					fonts[name] = struct{}{}
				}
			}
			xobjects := page.Resources().Key("XObject")
			for _, key := range xobjects.Keys() {
				if xobjects.Key(key).Key("Subtype").Name() == "Image" {
					sig.Images++
				}
			}
		}()
	}
	sig.Fonts = sortedKeys(fonts)
	return sig
}

func extractDOCX(data []byte) (Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Document{}, errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return Document{}, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return Document{}, err
	}
	return parseDocxXML(raw)
}

// parseDocxXML walks WordprocessingML collecting paragraph text plus tables,
// drawings, column settings and run fonts.
func parseDocxXML(raw []byte) (Document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var (
		buf   strings.Builder
		sig   StructuralSignals
		fonts = map[string]struct{}{}
		inT   bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inT = true
			case "tab":
				buf.WriteString("\t")
			case "tbl":
				sig.Tables++
			case "drawing", "pict":
				sig.Images++
			case "cols":
				if n, err := strconv.Atoi(attr(t, "num")); err == nil && n > 1 {
					sig.MultiColumn = true
				}
			case "rFonts":
				if name := attr(t, "ascii"); name != "" {
					fonts[name] = struct{}{}
				}
			}
		case xml.CharData:
			if inT {
				buf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	sig.Fonts = sortedKeys(fonts)
	return Document{Text: strings.TrimSpace(buf.String()), Signals: sig}, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "" || clean == mimeOctet {
		if byExt := mimeFromExtension(fileName); byExt != "" {
			return byExt
		}
		clean = strings.ToLower(strings.Split(http.DetectContentType(data), ";")[0])
	}
	if clean != mimeZip {
		return clean
	}
	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}
	if byExt := mimeFromExtension(fileName); byExt == mimeDOCX {
		return byExt
	}
	return clean
}

func mimeFromExtension(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt":
		return mimeText
	case ".md":
		return mimeMD
	default:
		return ""
	}
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return mimeDOCX
		}
	}
	return ""
}
