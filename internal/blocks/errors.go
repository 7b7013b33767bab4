package blocks

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("blocks: repository required")
	ErrPageRequired       = errors.New("blocks: page id required")
	ErrUnknownType        = errors.New("blocks: unknown block type")
	ErrBlockNotFound      = errors.New("blocks: block not found")
)

// ContentValidationError reports a content payload rejected by the block
// type's schema.
type ContentValidationError struct {
	Type  Type
	Cause error
}

func (e *ContentValidationError) Error() string {
	if e == nil {
		return "blocks: invalid content"
	}
	return fmt.Sprintf("blocks: invalid %s content: %v", e.Type, e.Cause)
}

func (e *ContentValidationError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned when a block cannot be located by the store.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
