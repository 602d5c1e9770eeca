package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
)

func TestTranslate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, apperrors.ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, apperrors.ErrConflict},
		{"pg unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperrors.ErrConflict},
	}
	for _, tc := range cases {
		if got := Translate(tc.in); !errors.Is(got, tc.want) {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
	other := errors.New("disk full")
	if got := Translate(other); got != other {
		t.Fatalf("passthrough: want=%v got=%v", other, got)
	}
	if Translate(nil) != nil {
		t.Fatalf("nil: want=nil")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("fk violation should not count as unique")
	}
}
