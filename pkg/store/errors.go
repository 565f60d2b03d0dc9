package store

import "errors"

var (
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
	ErrEmptyIds           = errors.New("at least one id is required")
)
