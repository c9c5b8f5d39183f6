// Package errors defines the failure kinds every service returns and
// translates PostgreSQL errors into them.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a failure for the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConstraint
	KindInvalidArgument
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	case KindConstraint:
		return "constraint_violation"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// PostgreSQL SQLSTATE codes the store translation understands.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// Error is the typed failure returned across the service boundary.
type Error struct {
	Kind       Kind
	Message    string
	Fields     map[string]string // field-keyed messages for Validation
	Constraint string            // store constraint name for Constraint
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ── constructors ──

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func InvalidArgument(msg string) *Error { return New(KindInvalidArgument, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }

// Constraint builds a sentinel bound to a named store constraint.
func Constraint(name, msg string) *Error {
	return &Error{Kind: KindConstraint, Message: msg, Constraint: name}
}

// Validation builds a field-keyed validation failure.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// FieldError is shorthand for a single-field validation failure.
func FieldError(field, msg string) *Error {
	return Validation(map[string]string{field: msg})
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As is errors.As specialised to *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}

// FromStore translates a gorm / pgx error. Unknown errors are returned
// unchanged so callers can log them as internal failures.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(KindNotFound, "record not found", err)
	}

	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &Error{Kind: KindConstraint, Message: "duplicate value", Constraint: pgErr.ConstraintName, Err: err}
	case pgForeignKeyViolation:
		return &Error{Kind: KindConstraint, Message: "referenced record does not exist", Constraint: pgErr.ConstraintName, Err: err}
	case pgCheckViolation:
		return &Error{
			Kind:       KindValidation,
			Message:    "value out of range",
			Fields:     map[string]string{columnOrConstraint(pgErr): "value violates " + pgErr.ConstraintName},
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	case pgNotNullViolation:
		return &Error{
			Kind:    KindValidation,
			Message: "missing required value",
			Fields:  map[string]string{pgErr.ColumnName: "is required"},
			Err:     err,
		}
	}
	return err
}

// IsConstraint reports whether err is a store constraint failure on name.
func IsConstraint(err error, name string) bool {
	e, ok := As(err)
	return ok && e.Kind == KindConstraint && e.Constraint == name
}

func columnOrConstraint(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return pgErr.ConstraintName
}
