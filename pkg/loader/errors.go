package loader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("row not found")
	ErrBatchFailed = errors.New("batched query failed")
)

// NotFoundError is the per-key result of an id the backing store did not return.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s row not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// BatchError fails every key of a batch whose backing-store query failed.
type BatchError struct {
	Entity string
	IDs    []string
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batched query for %s [%s] failed: %v", e.Entity, strings.Join(e.IDs, ", "), e.Err)
}

func (e *BatchError) Is(target error) bool {
	return target == ErrBatchFailed
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
