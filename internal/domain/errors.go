package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthorizedTransition = errors.New("user is not authorized to change the approval status of this project")
	ErrInvalidSupervisor      = errors.New("designated supervisor does not hold the SUPERVISOR or ADMIN role")
	ErrMissingSupervisor      = errors.New("supervisor is required for non-admin users")
	ErrForbidden              = errors.New("insufficient permissions for this operation")
	ErrValidation             = errors.New("validation failed")
)
