package models

import (
	"errors"
)

var (
	ErrReviewNotFound  = errors.New("models: review not found")
	ErrAlreadyReviewed = errors.New("models: user already reviewed")

	ErrAuthRequired = errors.New("models: authentication required")
	ErrInvalidToken = errors.New("models: invalid token")
	ErrTokenExpired = errors.New("models: token expired")
	ErrUserInactive = errors.New("models: user not found or inactive")
)

// FieldError is a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated rule, not just the first one.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return "models: validation failed"
}
