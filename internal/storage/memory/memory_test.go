package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/ondrasimku/signature-builder/internal/storage"
)

func TestSaveOpenOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage("")

	if _, err := s.Save(ctx, "a.png", strings.NewReader("one"), storage.SaveOptions{ContentType: "image/png"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := s.Save(ctx, "a.png", strings.NewReader("two!"), storage.SaveOptions{ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if info.URL != "/images/a.png" || info.Size != 4 {
		t.Errorf("info = %+v", info)
	}

	rc, _, err := s.Open(ctx, "a.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "two!" {
		t.Errorf("data = %q, want last write", data)
	}
	if s.Len() != 1 || s.Writes("a.png") != 2 {
		t.Errorf("Len = %d, Writes = %d", s.Len(), s.Writes("a.png"))
	}
}

func TestOpenErrors(t *testing.T) {
	s := NewMemoryStorage("")

	if _, _, err := s.Open(context.Background(), "missing.png"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, _, err := s.Open(context.Background(), "../x"); !errors.Is(err, storage.ErrInvalidName) {
		t.Errorf("err = %v, want ErrInvalidName", err)
	}
}

func TestConcurrentSaves(t *testing.T) {
	s := NewMemoryStorage("")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("f-%d.png", i%8)
			if _, err := s.Save(context.Background(), name, strings.NewReader("x"), storage.SaveOptions{}); err != nil {
				t.Errorf("Save: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 8 {
		t.Errorf("Len = %d, want 8", s.Len())
	}
}
