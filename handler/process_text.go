package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"lockin/backend"
	"lockin/manager"
	"lockin/prompt"
)

const (
	msgTextRequired   = "Text is required"
	msgInvalidBody    = "Invalid request body"
	msgBodyTooLarge   = "Request body too large"
	msgConfigError    = "Server configuration error. Please check API key."
	msgSomethingWrong = "Something went wrong. Please try again!"
)

// Generator produces text for a fully rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProcessTextHandler relays the caller's text, wrapped in the instruction
// template, to the generation API and returns the generated text.
type ProcessTextHandler struct {
	Generator        Generator
	Template         prompt.Template
	APIKeyConfigured bool
	MaxBodyBytes     int64
	Monitor          *manager.TrafficMonitor
}

func NewProcessTextHandler(gen Generator, tmpl prompt.Template, apiKeyConfigured bool, maxBodyBytes int64, monitor *manager.TrafficMonitor) *ProcessTextHandler {
	return &ProcessTextHandler{
		Generator:        gen,
		Template:         tmpl,
		APIKeyConfigured: apiKeyConfigured,
		MaxBodyBytes:     maxBodyBytes,
		Monitor:          monitor,
	}
}

// ServeHTTP implements the http.Handler interface for ProcessTextHandler.
func (h *ProcessTextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	done := h.Monitor.Begin()
	// Stays internal_error if serve panics.
	outcome := manager.OutcomeInternalError
	defer func() { done(outcome) }()

	outcome = h.serve(w, r)
}

func (h *ProcessTextHandler) serve(w http.ResponseWriter, r *http.Request) manager.Outcome {
	text, status, msg := h.decode(w, r)
	if status != 0 {
		log.Debugf("Rejected relay request from %s: %s", r.RemoteAddr, msg)
		writeJSON(w, status, ErrorResponse{Error: msg})
		return manager.OutcomeClientError
	}

	if !h.APIKeyConfigured {
		logAndReturnError(w, msgConfigError, http.StatusInternalServerError, "GEMINI_API_KEY environment variable is not set")
		return manager.OutcomeConfigError
	}

	result, err := h.Generator.Generate(r.Context(), h.Template.Render(text))
	if err != nil {
		return h.handleGenerateError(w, err)
	}

	writeJSON(w, http.StatusOK, ProcessTextResponse{Result: result})
	return manager.OutcomeOK
}

// decode reads the request body. A non-zero status means the request must be
// rejected with msg.
func (h *ProcessTextHandler) decode(w http.ResponseWriter, r *http.Request) (string, int, string) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	var payload ProcessTextRequest
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty body, same as a body without text.
			return "", http.StatusBadRequest, msgTextRequired
		}
		return "", decodeErrorStatus(err), decodeErrorMessage(err)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return "", decodeErrorStatus(err), decodeErrorMessage(err)
	}
	if payload.Text == nil || *payload.Text == "" {
		return "", http.StatusBadRequest, msgTextRequired
	}
	return *payload.Text, 0, ""
}

func decodeErrorStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func decodeErrorMessage(err error) string {
	if decodeErrorStatus(err) == http.StatusRequestEntityTooLarge {
		return msgBodyTooLarge
	}
	return msgInvalidBody
}

func (h *ProcessTextHandler) handleGenerateError(w http.ResponseWriter, err error) manager.Outcome {
	var statusErr *backend.StatusError
	switch {
	case errors.As(err, &statusErr):
		logAndReturnError(w, fmt.Sprintf("API Error: %s", statusErr.Status), statusErr.StatusCode,
			fmt.Sprintf("Gemini API error: %d %s", statusErr.StatusCode, statusErr.Body))
		return manager.OutcomeUpstreamError
	case errors.Is(err, backend.ErrMalformedResponse):
		logAndReturnError(w, msgSomethingWrong, http.StatusInternalServerError,
			fmt.Sprintf("Unexpected generation response shape: %v", err))
		return manager.OutcomeInternalError
	default:
		logAndReturnError(w, msgSomethingWrong, http.StatusInternalServerError,
			fmt.Sprintf("Server error: %v", err))
		return manager.OutcomeInternalError
	}
}
