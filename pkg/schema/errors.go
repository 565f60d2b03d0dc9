package schema

import "errors"

var (
	ErrIdFieldRequired       = errors.New("entity requires a scalar id field")
	ErrUnknownType           = errors.New("unknown type")
	ErrUnsupportedDefinition = errors.New("unsupported definition")
	ErrDuplicateType         = errors.New("type is already defined")
	ErrQueryNameConflict     = errors.New("query name is already used by another entity")
)
