package usecase

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs
	ErrSessionNotFound = errors.New("booking session not found")

	// ErrNoLegsSelected is returned when an operation needs at least one
	// valid offer leg and none is selected
	ErrNoLegsSelected = errors.New("no valid offer legs selected")

	// ErrUnknownPassenger is returned for a paxId outside the roster
	ErrUnknownPassenger = errors.New("unknown passenger")

	// ErrIncompleteDetails blocks submission locally; incomplete passenger
	// or contact forms are never sent to the backend
	ErrIncompleteDetails = errors.New("passenger or contact details incomplete")
)
