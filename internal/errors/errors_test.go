package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_PARAMETER", "start is not a date")
	assert.Equal(t, "start is not a date", err.Error())
}

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		appErr     *AppError
		wantStatus int
		wantCode   string
	}{
		{name: "validation", appErr: NewAppValidationError("bad"), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "not found", appErr: NewNotFoundError("roster file"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "missing column", appErr: NewMissingColumnError("headcount", "Station"), wantStatus: http.StatusUnprocessableEntity, wantCode: "MISSING_COLUMN"},
		{name: "parsing", appErr: NewParsingError("bad csv", fmt.Errorf("quote")), wantStatus: http.StatusUnprocessableEntity, wantCode: "PARSING_FAILED"},
		{name: "config", appErr: NewConfigError("bad config", nil), wantStatus: http.StatusInternalServerError, wantCode: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromAppError(tt.appErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, tt.appErr.Message, apiErr.Message)
		})
	}
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("end", "end must not be before start")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "end", detail.Field)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, ErrRateLimitExceeded)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Error.ErrorCode)
}
