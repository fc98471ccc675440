package model

import (
	"errors"
	"fmt"

	"friendshavestuff-backend/internal/domains/request/availability"
)

// Error codes
const (
	ErrCodeRequestNotFound = "REQ001"
	ErrCodeOwnItem         = "REQ002"
	ErrCodeUnavailable     = "REQ003"
	ErrCodeConflict        = "REQ004"
	ErrCodeUnauthorized    = "REQ005"
	ErrCodeItemNotFound    = "REQ006"
)

// Errors
var (
	ErrRequestNotFound = errors.New("borrow request not found")
	ErrOwnItem         = errors.New("cannot borrow your own item")
	ErrUnavailable     = errors.New("item is not available for the requested dates")
	ErrConflict        = errors.New("request is no longer in a state that allows this transition")
	ErrUnauthorized    = errors.New("unauthorized to perform this action")
	ErrItemNotFound    = errors.New("item not found")
)

// RequestError custom error type
type RequestError struct {
	Code    string
	Message string
	Err     error

	// Set for availability rejections.
	Reason availability.Rejection
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func NewRequestNotFoundError() *RequestError {
	return &RequestError{
		Code:    ErrCodeRequestNotFound,
		Message: "Borrow request not found",
		Err:     ErrRequestNotFound,
	}
}

func NewOwnItemError() *RequestError {
	return &RequestError{
		Code:    ErrCodeOwnItem,
		Message: "You cannot borrow your own item",
		Err:     ErrOwnItem,
	}
}

func NewUnavailableError(reason availability.Rejection) *RequestError {
	messages := map[availability.Rejection]string{
		availability.RejectInvalidRange:    "End date must not be before start date",
		availability.RejectOverlapBooking:  "These dates overlap an approved booking",
		availability.RejectOverlapBlackout: "These dates include a day the owner marked unavailable",
	}
	return &RequestError{
		Code:    ErrCodeUnavailable,
		Message: messages[reason],
		Err:     ErrUnavailable,
		Reason:  reason,
	}
}

func NewConflictError(message string) *RequestError {
	return &RequestError{
		Code:    ErrCodeConflict,
		Message: message,
		Err:     ErrConflict,
	}
}

func NewUnauthorizedError(message string) *RequestError {
	return &RequestError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func NewItemNotFoundError() *RequestError {
	return &RequestError{
		Code:    ErrCodeItemNotFound,
		Message: "Item not found",
		Err:     ErrItemNotFound,
	}
}
