package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/freelance-matcher/internal/embedding"
	"github.com/jonathan/freelance-matcher/internal/intake"
	"github.com/jonathan/freelance-matcher/internal/llm"
	"github.com/jonathan/freelance-matcher/internal/matching"
	"github.com/jonathan/freelance-matcher/internal/session"
)

// ValidationError indicates a malformed or invalid request payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// HTTPStatus maps domain errors to HTTP status codes. Unknown errors map to
// 500 so internals never leak into status semantics.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	var sessionNotFound *session.ErrSessionNotFound
	var jobNotFound *matching.ErrJobNotFound
	var entityNotFound *embedding.ErrNotFound
	var noEmbedding *matching.ErrNoEmbedding
	var notConfirmable *intake.ErrNotConfirmable
	var emptyText *embedding.ErrEmptySourceText
	var upstream *llm.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &sessionNotFound),
		errors.As(err, &jobNotFound),
		errors.As(err, &entityNotFound):
		return http.StatusNotFound
	case errors.As(err, &noEmbedding),
		errors.As(err, &notConfirmable):
		return http.StatusConflict
	case errors.As(err, &emptyText):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the error as a JSON response with the mapped status.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[server] internal error: %v", err)
		message = "internal server error"
	}
	s.errorResponse(w, status, message)
}
