package handler

import "net/http"

const healthMessage = "LockIn List server is running!"

// HealthHandler reports liveness and whether the API key is configured.
type HealthHandler struct {
	APIKeyConfigured bool
}

// NewHealthHandler creates a HealthHandler reporting the given key state.
func NewHealthHandler(apiKeyConfigured bool) *HealthHandler {
	return &HealthHandler{APIKeyConfigured: apiKeyConfigured}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   healthMessage,
		HasAPIKey: h.APIKeyConfigured,
	})
}
