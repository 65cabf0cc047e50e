package services

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/storefront/app/repositories"
)

// Messages shown to users. Controllers render these verbatim.
const (
	MsgMissingFields    = "Please enter all fields"
	MsgPasswordMismatch = "Passwords do not match"
	MsgEmailTaken       = "Email already registered"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("services: email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("services: invalid credentials")
	// ErrNotFound is returned when the addressed order or product does not exist.
	ErrNotFound = repositories.ErrNotFound
	// ErrProductInUse is returned when deleting a product that live orders reference.
	ErrProductInUse = repositories.ErrInUse
)

// ValidationError carries user-facing messages for a rejected input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func invalid(msgs ...string) error {
	return &ValidationError{Messages: msgs}
}
