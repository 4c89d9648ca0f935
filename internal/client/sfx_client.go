package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spotforge/api/internal/config"
)

// SFXClient generates short sound effects from text prompts. Same wire
// conventions as the music provider, but with a tighter prompt limit.
type SFXClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	promptLimit int
}

// GenerateSFXRequest represents the request for sound effect generation
type GenerateSFXRequest struct {
	Prompt          string  `json:"prompt"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// SFXResult represents a completed sound effect generation
type SFXResult struct {
	ID       string  `json:"id"`
	AudioURL string  `json:"audio_url"`
	Duration float64 `json:"duration"`
	Status   string  `json:"status"`
}

// NewSFXClient creates a new sound effects client
func NewSFXClient(cfg *config.SFXConfig) *SFXClient {
	return &SFXClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		promptLimit: cfg.PromptLimit,
	}
}

// PromptLimit returns the provider's prompt character cap
func (c *SFXClient) PromptLimit() int {
	return c.promptLimit
}

// GenerateSFX requests one sound effect and waits for the result. SFX
// renders are short, so the provider answers synchronously.
func (c *SFXClient) GenerateSFX(ctx context.Context, req *GenerateSFXRequest) (*SFXResult, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sfx/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("[SFX API] → POST %s", httpReq.URL.String())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("[SFX API] ✗ request failed: %v", err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Printf("[SFX API] ← %d POST %s", resp.StatusCode, httpReq.URL.String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sfx API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result SFXResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// IsConfigured returns true if the client has valid configuration
func (c *SFXClient) IsConfigured() bool {
	return c.apiKey != ""
}
