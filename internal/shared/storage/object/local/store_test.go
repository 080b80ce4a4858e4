package local

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"testing"

	"resume-matcher/internal/shared/storage/object"
)

func TestPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	key, err := s.Put(ctx, object.Object{UserID: "guest:1", FileName: "cv.txt", ContentType: "text/plain", Body: []byte("hello")})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := s.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "hello" {
		t.Fatalf("expected stored body, got %q", data)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Open(ctx, key); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not exist after delete, got %v", err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("expected second delete to be a no-op, got %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Open(context.Background(), "../secret"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestPutHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(t.TempDir()).Put(ctx, object.Object{UserID: "u", FileName: "a.txt"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
