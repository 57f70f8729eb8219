package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrInvariant indicates invariant rule violation.
	ErrInvariant = errors.New("aggregate invariant violation")
	// ErrConflict indicates optimistic/concurrency conflict.
	ErrConflict = errors.New("aggregate conflict")
	// ErrRetryable indicates transient retryable failure.
	ErrRetryable = errors.New("aggregate retryable")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// InvariantError tags an error as invariant violation.
func InvariantError(msg string) error {
	return errors.Join(ErrInvariant, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// RetryableError tags an error as retryable failure.
func RetryableError(msg string) error {
	return errors.Join(ErrRetryable, errors.New(strings.TrimSpace(msg)))
}

// failureCode is the aggregate code each barter failure surfaces as.
func failureCode(kind barter.Kind) domainagg.ErrorCode {
	switch kind {
	case barter.KindUnknownActor, barter.KindUnknownItemType:
		return domainagg.CodeNotFound
	case barter.KindIneligibleParty:
		return domainagg.CodePreconditionFailed
	case barter.KindConcurrentModification, barter.KindDuplicateRebel:
		return domainagg.CodeConflict
	default:
		return domainagg.CodeValidation
	}
}

// taggedMessage drops the sentinel line errors.Join put in front of msg.
func taggedMessage(err, sentinel error) string {
	return strings.TrimSpace(strings.TrimPrefix(err.Error(), sentinel.Error()))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// Barter failures keep their message and stay reachable via errors.As.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	if f, ok := barter.AsFailure(err); ok {
		return domainagg.NewError(failureCode(f.Kind), op, f.Error(), err)
	}
	switch {
	case errors.Is(err, ErrValidation):
		return domainagg.NewError(domainagg.CodeValidation, op, taggedMessage(err, ErrValidation), err)
	case errors.Is(err, ErrInvariant):
		return domainagg.NewError(domainagg.CodeInvariantViolation, op, taggedMessage(err, ErrInvariant), err)
	case errors.Is(err, ErrConflict):
		return domainagg.NewError(domainagg.CodeConflict, op, taggedMessage(err, ErrConflict), err)
	case errors.Is(err, ErrRetryable):
		return domainagg.NewError(domainagg.CodeRetryable, op, taggedMessage(err, ErrRetryable), err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.Wrap(domainagg.CodeConflict, op, err) // unique_violation
		case "23503":
			return domainagg.Wrap(domainagg.CodePreconditionFailed, op, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return domainagg.Wrap(domainagg.CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "unique constraint failed"):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "sqlite_busy"),
		strings.Contains(msg, "temporar"):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	default:
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
}
