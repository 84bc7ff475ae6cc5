package service

import (
	"fmt"
)

// StoreError wraps any failure reported by the entry store. The message is
// meant to be shown to the user as is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s entry: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
