package handler

import (
	"errors"
)

var (
	ErrLoaderFactoryNotFound = errors.New("loader factory not found")
)
