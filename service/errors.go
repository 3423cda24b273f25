package service

import (
	"errors"
	"fmt"
)

var (
	ErrSocietyNameTaken   = errors.New("society with this name already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAVendor is returned when vendor assignment targets a user
	// without the VENDOR role.
	ErrNotAVendor = errors.New("assigned user does not have the vendor role")
)

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// RejectedByValidationError is returned when the media validator
// delivers a negative verdict under the hard-reject policy. Nothing
// is persisted; Reasoning carries the validator's explanation.
type RejectedByValidationError struct {
	Reasoning string
}

func (e *RejectedByValidationError) Error() string {
	return fmt.Sprintf("complaint rejected by media validation: %s", e.Reasoning)
}
