package serverutils

import (
	"errors"
	"fmt"
)

// Error categories surfaced to clients. Index sync failures are never
// surfaced; they stay inside the sync consumer.
const (
	ErrCategoryNotFound            = "NOT_FOUND"
	ErrCategoryValidation          = "VALIDATION"
	ErrCategoryUnsupportedDocument = "UNSUPPORTED_DOCUMENT"
	ErrCategoryGeneration          = "GENERATION"
)

// AppError carries a stable category and a human-readable detail string.
// Internal causes are kept for logs via Unwrap and never serialized.
type AppError struct {
	Category string
	Status   int
	Message  string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Category: ErrCategoryNotFound, Status: 404, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Category: ErrCategoryValidation, Status: 400, Message: message}
}

func NewUnsupportedDocumentError(message string, cause error) *AppError {
	return &AppError{Category: ErrCategoryUnsupportedDocument, Status: 400, Message: message, Err: cause}
}

func NewGenerationError(message string, cause error) *AppError {
	return &AppError{Category: ErrCategoryGeneration, Status: 502, Message: message, Err: cause}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Category == ErrCategoryNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Category == ErrCategoryValidation
}
