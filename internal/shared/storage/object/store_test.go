package object

import (
	"errors"
	"strings"
	"testing"
)

func TestNewKeyNamespacesByUser(t *testing.T) {
	a, err := NewKey("guest:1", "resume.pdf")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	b, err := NewKey("guest:1", "resume.pdf")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	if a == b {
		t.Fatalf("expected unique keys, got %q twice", a)
	}
	prefix := userPrefix("guest:1")
	if !strings.HasPrefix(a, prefix+"/") || !strings.HasSuffix(a, "_resume.pdf") {
		t.Fatalf("unexpected key layout: %q", a)
	}
	if len(prefix) != 64 || strings.Contains(a, "guest:1") {
		t.Fatalf("expected hashed user prefix, got %q", prefix)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: " dir/sub\\cv.docx ", want: "dir_sub_cv.docx"},
		{in: "cv\x00\n.pdf", want: "cv.pdf"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: expected %q, got %q (%v)", tc.in, tc.want, got, err)
		}
	}
	long, _ := SanitizeFileName(strings.Repeat("a", 300) + ".pdf")
	if len([]rune(long)) != maxFileNameRunes || !strings.HasSuffix(long, ".pdf") {
		t.Fatalf("expected truncated name keeping the extension, got %d runes", len([]rune(long)))
	}
}

func TestCleanKey(t *testing.T) {
	if _, err := CleanKey("../x"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := CleanKey("/abs/key"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for absolute key, got %v", err)
	}
	if got, err := CleanKey("a/./b"); err != nil || got != "a/b" {
		t.Fatalf("expected a/b, got %q (%v)", got, err)
	}
}
