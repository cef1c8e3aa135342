package client

import "fmt"

// NetworkError is a failed remote call. FieldErrors carries any structured
// field-level validation the server returned so the UI can surface it inline.
type NetworkError struct {
	Op          string
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
}
