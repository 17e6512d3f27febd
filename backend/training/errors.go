package training

import (
	"errors"
	"fmt"
)

// NotFoundError reports an absent course, lesson, quiz or certificate. No
// partial result accompanies it.
type NotFoundError struct {
	Resource string
	Key      string
}

func NotFound(resource string, key any) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: fmt.Sprint(key)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// StorageError wraps a store adapter failure. Nothing is retried internally;
// the caller must re-issue the action.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RenderError wraps a document renderer failure during certificate issuance.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render certificate artifact: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
