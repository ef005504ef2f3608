package results

import (
	"errors"
	"fmt"
)

// FetchError is a failed survey or response retrieval. Message holds the
// backend's own error text when the payload carried one.
type FetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts the text shown to the user for a load failure.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.Message != "" {
			return fe.Message
		}
		if fe.Err != nil {
			return fe.Err.Error()
		}
	}
	return err.Error()
}
