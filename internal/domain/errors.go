package domain

import "errors"

// Sentinel errors shared across services. Controllers translate these to
// HTTP status codes; services wrap unexpected errors with context instead.
var (
	ErrNotFound              = errors.New("not found")
	ErrNotAccessible         = errors.New("not accessible")
	ErrConflict              = errors.New("concurrent update conflict")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicateRegistration = errors.New("registration already exists for this user and event")
	ErrInvalidTransition     = errors.New("invalid registration status transition")
	ErrInvoicingConflict     = errors.New("order is already attached to an unpaid invoice")
	ErrNoSenderEnabled       = errors.New("no sender enabled for organization")
	ErrOrgNotSpecified       = errors.New("organization not specified")
)
