package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ssargent/stylegraph/pkg/codec"
)

// apiKeyMiddleware validates the X-API-Key header
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// sendError sends an error JSON response
func sendError(w http.ResponseWriter, message string, statusCode int) {
	sendErrorData(w, message, nil, statusCode)
}

func sendErrorData(w http.ResponseWriter, message string, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Data:    data,
		Error:   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// statusForOutcome maps a decode outcome to an HTTP status
func statusForOutcome(o codec.Outcome) int {
	switch o {
	case codec.OutcomeOK:
		return http.StatusOK
	case codec.OutcomeMalformed:
		return http.StatusBadRequest
	case codec.OutcomeUnknown:
		return http.StatusUnprocessableEntity
	case codec.OutcomeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// sendDecodeError reports a failed decode with its outcome and location
func sendDecodeError(w http.ResponseWriter, err error) {
	outcome := codec.Classify(err)
	failure := DecodeFailure{Outcome: outcome}

	var me *codec.MalformedError
	var ue *codec.UnsupportedError
	var ke *codec.UnknownIDError
	switch {
	case errors.As(err, &ue):
		failure.Offset = &ue.Offset
		failure.ClassID = ue.ID.String()
	case errors.As(err, &ke):
		failure.Offset = &ke.Offset
		failure.ClassID = ke.ID.String()
	case errors.As(err, &me):
		failure.Offset = &me.Offset
		failure.Field = me.Field
	}

	sendErrorData(w, err.Error(), failure, statusForOutcome(outcome))
}
