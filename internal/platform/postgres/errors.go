package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/katigar/wordbank-api/internal/store"
)

// PostgreSQL error class 08 covers connection exceptions.
const pgConnectionExceptionClass = "08"

// mapError classifies a database error for callers. Connection-level
// failures and timeouts become store.ErrUnavailable so the caller knows a
// retry is reasonable; everything else passes through wrapped with the
// operation name for context.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionExceptionClass {
		return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
	}

	if pgconn.Timeout(err) {
		return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
