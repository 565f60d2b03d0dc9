package resolver

import (
	"errors"
)

var (
	ErrInvalidPagination = errors.New("first and skip must not be negative")
	ErrInvalidId         = errors.New("invalid id")
)
