package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes translated into domain errors
const (
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeCheckViolation      pq.ErrorCode = "23514"
)

// violates reports whether err is a PostgreSQL error with the given code on the named constraint.
// An empty constraint matches any constraint.
func violates(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func isUniqueViolation(err error, constraint string) bool {
	return violates(err, codeUniqueViolation, constraint)
}

func isForeignKeyViolation(err error, constraint string) bool {
	return violates(err, codeForeignKeyViolation, constraint)
}

func isCheckViolation(err error, constraint string) bool {
	return violates(err, codeCheckViolation, constraint)
}

// nullableString converts a *string to a value lib/pq can bind
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
