package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound   = "USR001"
	ErrCodeAlreadyInvited = "USR002"
	ErrCodeNotInvited     = "USR003"
	ErrCodeUnauthorized   = "USR004"
	ErrCodeLastAdmin      = "USR005"
)

// Errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyInvited = errors.New("email already invited")
	ErrNotInvited     = errors.New("email is not on the invite list")
	ErrUnauthorized   = errors.New("unauthorized to perform this action")
	ErrLastAdmin      = errors.New("cannot remove the last admin")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewAlreadyInvitedError(email string) *UserError {
	return &UserError{
		Code:    ErrCodeAlreadyInvited,
		Message: fmt.Sprintf("%s has already been invited", email),
		Err:     ErrAlreadyInvited,
	}
}

func NewNotInvitedError() *UserError {
	return &UserError{
		Code:    ErrCodeNotInvited,
		Message: "This email is not on the invite list. Ask a member to invite you.",
		Err:     ErrNotInvited,
	}
}

func NewUnauthorizedError(message string) *UserError {
	return &UserError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func NewLastAdminError() *UserError {
	return &UserError{
		Code:    ErrCodeLastAdmin,
		Message: "Cannot remove the last remaining admin",
		Err:     ErrLastAdmin,
	}
}
