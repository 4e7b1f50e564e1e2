package handler

// ProcessTextRequest is the expected JSON body of the relay endpoint.
// Text is a pointer so that null and absent are both caught.
type ProcessTextRequest struct {
	Text *string `json:"text"`
}

type ProcessTextResponse struct {
	Result string `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	HasAPIKey bool   `json:"hasApiKey"`
}
