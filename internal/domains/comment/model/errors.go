package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeCommentNotFound = "CMT001"
	ErrCodeUnauthorized    = "CMT002"
	ErrCodeInvalidParent   = "CMT003"
	ErrCodeItemNotFound    = "CMT004"
)

// Errors
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrUnauthorized    = errors.New("unauthorized to perform this action")
	ErrInvalidParent   = errors.New("invalid parent comment")
	ErrItemNotFound    = errors.New("item not found")
)

// CommentError custom error type
type CommentError struct {
	Code    string
	Message string
	Err     error
}

func (e *CommentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CommentError) Unwrap() error {
	return e.Err
}

func NewCommentNotFoundError() *CommentError {
	return &CommentError{
		Code:    ErrCodeCommentNotFound,
		Message: "Comment not found",
		Err:     ErrCommentNotFound,
	}
}

func NewUnauthorizedError(message string) *CommentError {
	return &CommentError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func NewInvalidParentError(message string) *CommentError {
	return &CommentError{
		Code:    ErrCodeInvalidParent,
		Message: message,
		Err:     ErrInvalidParent,
	}
}

func NewItemNotFoundError() *CommentError {
	return &CommentError{
		Code:    ErrCodeItemNotFound,
		Message: "Item not found",
		Err:     ErrItemNotFound,
	}
}
