package repository

import "errors"

// Store level failures. Handlers translate these into resource specific
// replies; ErrWrongCollection is a programmer error and always maps to an
// internal fault, never to a client error.
var (
	ErrNotFound        = errors.New("document not found")
	ErrAlreadyExists   = errors.New("document already exists")
	ErrInvalidID       = errors.New("invalid document id")
	ErrNotModified     = errors.New("document not modified")
	ErrWrongCollection = errors.New("wrong collection")
)
