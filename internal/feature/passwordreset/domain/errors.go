// Package domain defines domain-level errors for the passwordreset feature.
package domain

import "errors"

var (
	// ErrAccountNotFound is returned when no eligible account matches the
	// supplied email. The same error covers both an unknown address and a
	// non-citizen account so callers cannot enumerate accounts.
	ErrAccountNotFound = errors.New("we can't find a user with that email address")

	// ErrTicketNotFound is returned for an unknown, mismatched or expired
	// ticket. Expired and invalid are deliberately indistinguishable.
	ErrTicketNotFound = errors.New("this token is invalid or has expired")
)
