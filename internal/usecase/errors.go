package usecase

import (
	"errors"
	"fmt"

	"student-housing/internal/gateway"
	"student-housing/pkg/utils"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAttemptInProgress  = errors.New("payment attempt still processing")
	ErrAttemptClosed      = errors.New("payment attempt already closed, retry with a new idempotency key")
	ErrAlreadySettled     = errors.New("booking already settled")
	ErrBulkRejected       = errors.New("bulk request rejected")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrDistrictExists     = errors.New("district already exists")
	ErrDistrictInUse      = errors.New("district still has rooms")

	// Raised by the payment gateway.
	ErrMissingField       = gateway.ErrMissingField
	ErrInvalidPhoneNumber = gateway.ErrInvalidPhoneNumber
	ErrUnsupportedMethod  = gateway.ErrUnsupportedMethod
	ErrGatewayDeclined    = gateway.ErrDeclined
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func fieldError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
