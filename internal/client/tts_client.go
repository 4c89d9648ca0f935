package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spotforge/api/internal/config"
)

// SpeechSynthesizer defines the interface for voiceover rendering
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error)
	HealthCheck(ctx context.Context) error
}

// TTSClient implements SpeechSynthesizer for the speech sidecar service
type TTSClient struct {
	httpClient *http.Client
	baseURL    string
}

// SynthesizeRequest represents the request for voiceover synthesis
type SynthesizeRequest struct {
	Text      string `json:"text"`
	Tone      string `json:"tone,omitempty"`
	Pace      string `json:"pace,omitempty"`
	OutputKey string `json:"output_key"`
}

// SentenceTiming reports where one sentence landed in the rendered audio
type SentenceTiming struct {
	Index        int     `json:"index"`
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// SynthesizeResponse represents the rendered voiceover plus its timings.
// The duration feeds the bar math, the per-sentence timings feed the
// SFX cue placement.
type SynthesizeResponse struct {
	AudioURL        string           `json:"audio_url"`
	DurationSeconds float64          `json:"duration_seconds"`
	Sentences       []SentenceTiming `json:"sentences,omitempty"`
}

// NewTTSClient creates a new speech synthesis client
func NewTTSClient(cfg *config.TTSConfig) *TTSClient {
	return &TTSClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.ServiceURL,
	}
}

// Synthesize renders the voiceover and returns the audio URL with timings
func (c *TTSClient) Synthesize(ctx context.Context, req *SynthesizeRequest) (*SynthesizeResponse, error) {
	var result SynthesizeResponse
	if err := c.post(ctx, "/synthesize", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthCheck checks if the speech service is available
func (c *TTSClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech service unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

// post sends a POST request with JSON body and parses the response
func (c *TTSClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("speech service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// IsConfigured returns true if the client has valid configuration
func (c *TTSClient) IsConfigured() bool {
	return c.baseURL != ""
}
