package reportstore

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

func TestLocalLifecycle(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, logger.Nop())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()
	key := "report_a_20240101T000000_000000001.pdf"

	if err := store.Put(ctx, key, strings.NewReader("%PDF-1.3 body")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "%PDF-1.3 body" {
		t.Fatalf("body: want=%q got=%q", "%PDF-1.3 body", body)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open after delete: want=ErrNotFound got=%v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete missing: want nil got=%v", err)
	}
}

func TestValidateKey(t *testing.T) {
	for _, bad := range []string{"", " a.pdf", "../etc/passwd", "a/b.pdf", `a\b.pdf`, "..pdf"} {
		if ValidateKey(bad) == nil {
			t.Fatalf("ValidateKey(%q): want error", bad)
		}
	}
	if err := ValidateKey("report_x.pdf"); err != nil {
		t.Fatalf("ValidateKey: %v", err)
	}
}
