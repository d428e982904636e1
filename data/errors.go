package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPoolNotInitialized is returned when the gateway has no connection pool.
var ErrPoolNotInitialized = errors.New("database pool is not initialized")

// ValidationError reports caller input that fails a precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing target row.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError reports a uniqueness violation the caller can fix.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// DataAccessError wraps a failed statement. Error returns only the driver
// message; the statement and its parameters are kept for server-side logs.
type DataAccessError struct {
	Op           string
	SQL          string
	RewrittenSQL string
	Params       []interface{}
	Err          error
}

func (e *DataAccessError) Error() string { return e.Err.Error() }

func (e *DataAccessError) Unwrap() error { return e.Err }

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func newNotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is or wraps a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// SQLSTATE codes the repositories react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeDuplicateTable      = "42P07"
	codeDuplicateObject     = "42710"
	codeDuplicateColumn     = "42701"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// isAlreadyExists matches the errors concurrent or repeated DDL produces when
// the object is already in place.
func isAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	switch pgCode(err) {
	case codeDuplicateTable, codeDuplicateObject, codeDuplicateColumn:
		return true
	case codeUniqueViolation:
		// CREATE ... IF NOT EXISTS racing on the catalog.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.TableName, "pg_") || strings.HasPrefix(pgErr.ConstraintName, "pg_")) {
			return true
		}
	}
	return strings.Contains(err.Error(), "already exists")
}
