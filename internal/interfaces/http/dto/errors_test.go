package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"already exists maps to 409", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict maps to 409", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"invalid state maps to 422", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"invalid input maps to 400", ErrCodeInvalidInput, http.StatusBadRequest},
		{"transaction failed maps to 500", ErrCodeTransactionFailed, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeConcurrencyConflict, NormalizeErrorCode("CONCURRENCY_CONFLICT"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_EMAIL"))
	assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("EMPTY_CATALOG"))
	assert.Equal(t, "ERR_CUSTOM", NormalizeErrorCode("ERR_CUSTOM"))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Account not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Account not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
		{Field: "quantity", Message: "Must be greater than 0"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
}
