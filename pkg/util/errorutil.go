package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for every recoverable failure the core can report.
const (
	CodeNotANumber         = "NOT_A_NUMBER"
	CodeWrongAnswer        = "WRONG_ANSWER"
	CodeTooShort           = "TOO_SHORT"
	CodeCooldownActive     = "COOLDOWN_ACTIVE"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeOutsideWorkHours   = "OUTSIDE_WORK_HOURS"
	CodeOperatorNotFound   = "OPERATOR_NOT_FOUND"
	CodeOperatorExists     = "OPERATOR_EXISTS"
	CodeCannotRemoveAdmin  = "CANNOT_REMOVE_ADMIN"
	CodeCannotRemoveLastOp = "CANNOT_REMOVE_LAST_OPERATOR"
	CodeTemplateNotFound   = "TEMPLATE_NOT_FOUND"
	CodeDeliveryFailed     = "DELIVERY_FAILED"
	CodeClaimRequired      = "CLAIM_REQUIRED"
	CodeQueueEmpty         = "QUEUE_EMPTY"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewNotANumber(raw string) error {
	return NewDomainError(CodeNotANumber, "answer is not a number", http.StatusBadRequest, map[string]any{"input": raw})
}

func NewWrongAnswer(question string) error {
	return NewDomainError(CodeWrongAnswer, "wrong challenge answer", http.StatusBadRequest, map[string]any{"question": question})
}

func NewTooShort(minLen int) error {
	return NewDomainError(CodeTooShort, "message too short", http.StatusBadRequest, map[string]any{"min_length": minLen})
}

func NewCooldownActive(remainingSeconds int64) error {
	return NewDomainError(CodeCooldownActive, "cooldown active", http.StatusTooManyRequests, map[string]any{"remaining_seconds": remainingSeconds})
}

func NewOutOfRange(key string, min, max int) error {
	return NewDomainError(CodeOutOfRange, fmt.Sprintf("%s out of range", key), http.StatusBadRequest, map[string]any{"key": key, "min": min, "max": max})
}

func NewOutsideWorkHours(start, end int) error {
	return NewDomainError(CodeOutsideWorkHours, "outside work hours", http.StatusServiceUnavailable, map[string]any{"start": start, "end": end})
}

func NewOperatorNotFound(operatorID int64) error {
	return NewDomainError(CodeOperatorNotFound, "operator not found", http.StatusNotFound, map[string]any{"operator_id": operatorID})
}

func NewOperatorExists(operatorID int64) error {
	return NewDomainError(CodeOperatorExists, "operator already registered", http.StatusConflict, map[string]any{"operator_id": operatorID})
}

func NewCannotRemoveAdmin() error {
	return NewDomainError(CodeCannotRemoveAdmin, "cannot remove the admin", http.StatusConflict, nil)
}

func NewCannotRemoveLastOperator() error {
	return NewDomainError(CodeCannotRemoveLastOp, "cannot remove the last operator", http.StatusConflict, nil)
}

func NewTemplateNotFound(key string) error {
	return NewDomainError(CodeTemplateNotFound, "template not found", http.StatusNotFound, map[string]any{"key": key})
}

func NewDeliveryFailed(recipientID int64, err error) error {
	return &DomainError{
		Code:       CodeDeliveryFailed,
		Message:    "delivery failed",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"recipient_id": recipientID},
		Err:        err,
	}
}

func NewClaimRequired() error {
	return NewDomainError(CodeClaimRequired, "no active claim, take a message from the queue first", http.StatusConflict, nil)
}

func NewQueueEmpty() error {
	return NewDomainError(CodeQueueEmpty, "no eligible message in the queue", http.StatusNotFound, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// RemainingSeconds extracts the cooldown remainder from a COOLDOWN_ACTIVE error.
func RemainingSeconds(err error) int64 {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != CodeCooldownActive {
		return 0
	}
	if v, ok := domainErr.Details["remaining_seconds"].(int64); ok {
		return v
	}
	return 0
}
