package mysql

import (
	"context"
	"database/sql"
	"time"
	"unicode/utf8"

	"hbnb_web/internal/domain"
)

// Column widths of api_failures, counted in characters.
const (
	maxMessageLen = 1024
	maxPlaceIDLen = 64
)

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valStatus(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// Repo records page-boundary failures in api_failures.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Record(ctx context.Context, f domain.Failure) error {
	at := f.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertFailureSQL,
		f.Op,
		f.Kind,
		valStatus(f.Status),
		valStr(truncate(f.Message, maxMessageLen)),
		valStr(truncate(f.PlaceID, maxPlaceIDLen)),
		at.UTC(),
	)
	return err
}
