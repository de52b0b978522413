package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		apiKey         string
		requestHeader  string
		expectedStatus int
	}{
		{
			name:           "valid API key",
			apiKey:         "test-key",
			requestHeader:  "test-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing API key header",
			apiKey:         "test-key",
			requestHeader:  "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid API key",
			apiKey:         "test-key",
			requestHeader:  "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "prefix of the API key",
			apiKey:         "test-key",
			requestHeader:  "test",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := apiKeyMiddleware(tt.apiKey)(testHandler)

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.requestHeader != "" {
				req.Header.Set("X-API-Key", tt.requestHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	sendSuccess(w, map[string]string{"message": "test"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
	}{
		{"bad request error", "Invalid request", http.StatusBadRequest},
		{"unauthorized error", "Not authorized", http.StatusUnauthorized},
		{"internal server error", "Server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			sendError(w, tt.message, tt.statusCode)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		outcome codec.Outcome
		status  int
	}{
		{codec.OutcomeOK, http.StatusOK},
		{codec.OutcomeMalformed, http.StatusBadRequest},
		{codec.OutcomeUnknown, http.StatusUnprocessableEntity},
		{codec.OutcomeUnsupported, http.StatusNotImplemented},
		{codec.OutcomeError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.status, statusForOutcome(tt.outcome))
		})
	}
}

func TestSendDecodeError(t *testing.T) {
	id := guid.MustParse("7914e5f9-c892-11d0-8bb6-080009ee4e41")

	tests := []struct {
		name    string
		err     error
		status  int
		outcome codec.Outcome
		offset  *int
		field   string
		classID string
	}{
		{
			name:    "malformed",
			err:     &codec.MalformedError{Offset: 42, Field: "width", Reason: "short", Cause: codec.ErrBufferExhausted},
			status:  http.StatusBadRequest,
			outcome: codec.OutcomeMalformed,
			offset:  intPtr(42),
			field:   "width",
		},
		{
			name:    "wrapped unsupported",
			err:     fmt.Errorf("entry: %w", &codec.UnsupportedError{ID: id, Name: "Line", Offset: 18}),
			status:  http.StatusNotImplemented,
			outcome: codec.OutcomeUnsupported,
			offset:  intPtr(18),
			classID: id.String(),
		},
		{
			name:    "unknown",
			err:     &codec.UnknownIDError{ID: id, Offset: 0},
			status:  http.StatusUnprocessableEntity,
			outcome: codec.OutcomeUnknown,
			offset:  intPtr(0),
			classID: id.String(),
		},
		{
			name:    "plain error",
			err:     fmt.Errorf("disk on fire"),
			status:  http.StatusInternalServerError,
			outcome: codec.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			sendDecodeError(w, tt.err)
			assert.Equal(t, tt.status, w.Code)

			var resp struct {
				Success bool          `json:"success"`
				Error   string        `json:"error"`
				Data    DecodeFailure `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.err.Error(), resp.Error)
			assert.Equal(t, tt.outcome, resp.Data.Outcome)
			assert.Equal(t, tt.offset, resp.Data.Offset)
			assert.Equal(t, tt.field, resp.Data.Field)
			assert.Equal(t, tt.classID, resp.Data.ClassID)
		})
	}
}

func intPtr(v int) *int {
	return &v
}
