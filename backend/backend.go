package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	generation GenerationConfig
	httpClient *http.Client
}

// NewBackendClient creates a Client for the given API root and model.
func NewBackendClient(baseURL, model, apiKey string, generation GenerationConfig, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		generation: generation,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate sends prompt to the generation API and returns the first
// candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateContentRequest{
		Contents: []generateContentMessage{{
			Parts: []generateContentPart{{Text: prompt}},
		}},
		GenerationConfig: c.generation,
	})
	if err != nil {
		return "", fmt.Errorf("encoding generation request: %w", err)
	}

	resp, err := c.forward(ctx, payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return ExtractText(body)
}

func (c *Client) endpoint() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, url.PathEscape(c.model), q.Encode())
}

// forward posts the JSON payload. Transport errors are unwrapped from
// *url.Error so the API key in the query string never ends up in logs.
func (c *Client) forward(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("calling generation API: %w", err)
	}
	return resp, nil
}
