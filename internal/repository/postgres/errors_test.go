package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassifiers(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	foreignKey := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}
	plain := errors.New("some other failure")

	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{name: "unique violation", fn: isPgDuplicateError, err: unique, want: true},
		{name: "wrapped unique violation", fn: isPgDuplicateError, err: fmt.Errorf("insert: %w", unique), want: true},
		{name: "unique classifier ignores fk code", fn: isPgDuplicateError, err: foreignKey, want: false},
		{name: "unique classifier ignores plain error", fn: isPgDuplicateError, err: plain, want: false},

		{name: "foreign key violation", fn: isPgForeignKeyError, err: foreignKey, want: true},
		{name: "wrapped foreign key violation", fn: isPgForeignKeyError, err: fmt.Errorf("insert: %w", foreignKey), want: true},
		{name: "fk classifier ignores unique code", fn: isPgForeignKeyError, err: unique, want: false},

		{name: "check violation", fn: isPgCheckError, err: check, want: true},
		{name: "check classifier ignores fk code", fn: isPgCheckError, err: foreignKey, want: false},

		{name: "no rows", fn: isPgNoRowsError, err: pgx.ErrNoRows, want: true},
		{name: "wrapped no rows", fn: isPgNoRowsError, err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: true},
		{name: "no rows classifier ignores pg error", fn: isPgNoRowsError, err: unique, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("classifier = %v, want %v", got, tt.want)
			}
		})
	}
}
