package usecase

import (
	"errors"
	"fmt"
)

// ValidationError blocks submission and is surfaced inline; it is never sent
// to the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// ErrRedirectToSearch means the draft lacks the data a wizard step needs; the
// client is sent back to the vehicle search page instead of failing.
var ErrRedirectToSearch = errors.New("draft incomplete, redirect to vehicle search")

// ErrSubmissionInFlight guards against re-entrant booking submission.
var ErrSubmissionInFlight = errors.New("a submission is already in progress for this draft")
