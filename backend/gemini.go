package backend

import (
	"encoding/json"
	"fmt"
)

// GenerationConfig holds the sampling parameters sent as generationConfig.
type GenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentPart struct {
	Text string `json:"text"`
}

type generateContentMessage struct {
	Parts []generateContentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents         []generateContentMessage `json:"contents"`
	GenerationConfig GenerationConfig         `json:"generationConfig"`
}

// Response side uses pointers so that absent fields can be told apart from
// empty ones.

type candidatePart struct {
	Text *string `json:"text"`
}

type candidateContent struct {
	Parts []candidatePart `json:"parts"`
}

type candidate struct {
	Content *candidateContent `json:"content"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// ExtractText pulls candidates[0].content.parts[0].text out of a
// generateContent response body. Any deviation from that shape yields an
// error wrapping ErrMalformedResponse.
func ExtractText(body []byte) (string, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: candidate has no content", ErrMalformedResponse)
	}
	if len(content.Parts) == 0 {
		return "", fmt.Errorf("%w: candidate content has no parts", ErrMalformedResponse)
	}
	if content.Parts[0].Text == nil {
		return "", fmt.Errorf("%w: first part has no text", ErrMalformedResponse)
	}
	return *content.Parts[0].Text, nil
}
