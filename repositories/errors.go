package repositories

import (
	"context"
	"errors"
	"fmt"
)

// Error taxonomy surfaced to callers. NotFound/InvalidDelta are terminal;
// Conflict and Unavailable are retryable by the caller. This layer never
// retries internally: a hidden retry without the idempotency token could
// double-apply a delta.
var (
	ErrFranchiseNotFound  = errors.New("franchise not found")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrNoProductsInBranch = errors.New("no products found in branch")
	ErrInvalidDelta       = errors.New("stock must be greater than or equal to 0")
	ErrPrefixRequired     = errors.New("search prefix is required")
	ErrConflict           = errors.New("idempotency token already used by a conflicting request")
	ErrUnavailable        = errors.New("storage temporarily unavailable")
)

// wrapStorage classifies unexpected storage failures. Context expiry and
// cancellation are transient from the caller's point of view and map to
// ErrUnavailable; anything else passes through for the handler's 500 path.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
