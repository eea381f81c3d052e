package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsExclusionConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped exclusion violation", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23P01"}), true},
		{"duplicate object", &pgconn.PgError{Code: "42710"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		if got := IsExclusionConflict(tt.err); got != tt.want {
			t.Errorf("%s: IsExclusionConflict = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// The schema bootstrap treats 42710 as a benign re-run and anything else
// as fatal; misclassifying here would let the service boot without its
// overlap constraint.
func TestIsDuplicateObject(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate object", &pgconn.PgError{Code: "42710"}, true},
		{"wrapped duplicate object", fmt.Errorf("alter: %w", &pgconn.PgError{Code: "42710"}), true},
		{"insufficient privilege", &pgconn.PgError{Code: "42501"}, false},
		{"undefined object", &pgconn.PgError{Code: "42704"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		if got := IsDuplicateObject(tt.err); got != tt.want {
			t.Errorf("%s: IsDuplicateObject = %v, want %v", tt.name, got, tt.want)
		}
	}
}
