package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeItemNotFound  = "ITM001"
	ErrCodeUnauthorized  = "ITM002"
	ErrCodeInvalidImage  = "ITM003"
	ErrCodeTooManyImages = "ITM004"
)

// Errors
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrUnauthorized  = errors.New("unauthorized to perform this action")
	ErrInvalidImage  = errors.New("invalid image")
	ErrTooManyImages = errors.New("too many images")
)

// MaxImagesPerItem caps the photo gallery.
const MaxImagesPerItem = 6

// ItemError custom error type
type ItemError struct {
	Code    string
	Message string
	Err     error
}

func (e *ItemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func NewItemNotFoundError() *ItemError {
	return &ItemError{
		Code:    ErrCodeItemNotFound,
		Message: "Item not found",
		Err:     ErrItemNotFound,
	}
}

func NewUnauthorizedError(message string) *ItemError {
	return &ItemError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func NewInvalidImageError(reason error) *ItemError {
	return &ItemError{
		Code:    ErrCodeInvalidImage,
		Message: fmt.Sprintf("Invalid image: %v", reason),
		Err:     ErrInvalidImage,
	}
}

func NewTooManyImagesError() *ItemError {
	return &ItemError{
		Code:    ErrCodeTooManyImages,
		Message: fmt.Sprintf("An item can have at most %d images", MaxImagesPerItem),
		Err:     ErrTooManyImages,
	}
}
