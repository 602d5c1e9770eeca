// Package reportstore holds generated report documents outside the database.
package reportstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNotFound = errors.New("report document not found")

type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys that could escape the store's namespace.
func ValidateKey(key string) error {
	k := strings.TrimSpace(key)
	switch {
	case k == "", k != key:
		return fmt.Errorf("invalid document key %q", key)
	case strings.ContainsAny(k, `/\`), strings.Contains(k, ".."):
		return fmt.Errorf("invalid document key %q", key)
	}
	return nil
}
