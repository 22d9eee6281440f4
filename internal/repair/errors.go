// Package repair rewrites the spoken line of invalid hook candidates, once each.
package repair

import "fmt"

// Error represents a failed repair of one candidate
type Error struct {
	Index   int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repair error (candidate %d): %s: %v", e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("repair error (candidate %d): %s", e.Index, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
