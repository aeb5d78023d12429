package rest

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeBadGateway    = "bad_gateway"
	ErrCodeInternalError = "internal_error"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the {data, error} body of every JSON response. Exactly one of the two is set.
type Envelope struct {
	Data  any            `json:"data"`
	Error *ErrorResponse `json:"error"`
}

func WriteData(w http.ResponseWriter, statusCode int, data any) {
	write(w, statusCode, Envelope{Data: data})
}

func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	write(w, statusCode, Envelope{Error: &ErrorResponse{Code: code, Message: message}})
}

func write(w http.ResponseWriter, statusCode int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
