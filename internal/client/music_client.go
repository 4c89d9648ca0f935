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
	"github.com/spotforge/api/internal/model"
)

// MusicGenerator defines the interface for music generation operations
type MusicGenerator interface {
	GenerateMusic(ctx context.Context, req *GenerateMusicRequest) (*GenerateMusicResponse, error)
	GetMusicStatus(ctx context.Context, taskID string) (*MusicResult, error)
}

// MusicClient implements MusicGenerator against the music provider's
// custom-mode API.
type MusicClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// GenerateMusicRequest is the provider's generation request. In custom
// mode the title and composition text drive the track; in simple mode
// only the prompt is sent.
type GenerateMusicRequest struct {
	CustomMode       bool   `json:"customMode"`
	Title            string `json:"title,omitempty"`
	CompositionText  string `json:"compositionText,omitempty"`
	Prompt           string `json:"prompt,omitempty"`
	MakeInstrumental bool   `json:"make_instrumental,omitempty"`
}

// GenerateMusicResponse represents the response from music generation
type GenerateMusicResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// MusicResult represents a completed music generation result
type MusicResult struct {
	ID       string  `json:"id"`
	AudioURL string  `json:"audio_url"`
	Duration float64 `json:"duration"`
	Status   string  `json:"status"`
	Title    string  `json:"title,omitempty"`
}

// NewMusicClient creates a new music provider client
func NewMusicClient(cfg *config.MusicConfig) *MusicClient {
	return &MusicClient{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// RequestFromPrompt maps a composed prompt onto the provider's wire
// shape. Ad beds are always instrumental.
func RequestFromPrompt(p model.ComposedPrompt) *GenerateMusicRequest {
	return &GenerateMusicRequest{
		CustomMode:       p.CustomMode,
		Title:            p.Title,
		CompositionText:  p.CompositionText,
		Prompt:           p.Prompt,
		MakeInstrumental: true,
	}
}

// GenerateMusic initiates music generation
func (c *MusicClient) GenerateMusic(ctx context.Context, req *GenerateMusicRequest) (*GenerateMusicResponse, error) {
	var result GenerateMusicResponse
	if err := c.post(ctx, "/v1/music/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMusicStatus retrieves the status of a music generation task
func (c *MusicClient) GetMusicStatus(ctx context.Context, taskID string) (*MusicResult, error) {
	endpoint := fmt.Sprintf("/v1/music/status/%s", taskID)
	var result MusicResult
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// post sends a POST request with JSON body
func (c *MusicClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

// get sends a GET request and parses JSON response
func (c *MusicClient) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

// doRequest executes an HTTP request and parses the response
func (c *MusicClient) doRequest(req *http.Request, result interface{}) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("[Music API] → %s %s", req.Method, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Music API] ✗ %s %s — request failed: %v", req.Method, req.URL.String(), err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[Music API] ✗ %s %s — failed to read response: %v", req.Method, req.URL.String(), err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Printf("[Music API] ← %d %s %s — %s", resp.StatusCode, req.Method, req.URL.String(), string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("music API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		log.Printf("[Music API] ✗ unmarshal error for %s %s: %v (body: %s)", req.Method, req.URL.String(), err, string(respBody))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// IsConfigured returns true if the client has valid configuration
func (c *MusicClient) IsConfigured() bool {
	return c.apiKey != ""
}

// PollMusicStatus polls for music generation completion
func (c *MusicClient) PollMusicStatus(ctx context.Context, taskID string, interval time.Duration, maxWait time.Duration) (*MusicResult, error) {
	deadline := time.Now().Add(maxWait)
	attempt := 0

	for time.Now().Before(deadline) {
		attempt++
		result, err := c.GetMusicStatus(ctx, taskID)
		if err != nil {
			log.Printf("[Music API] Poll music #%d (task=%s) — error: %v", attempt, taskID, err)
			return nil, err
		}

		log.Printf("[Music API] Poll music #%d (task=%s) — status: %s", attempt, taskID, result.Status)

		switch result.Status {
		case "completed", "success":
			return result, nil
		case "failed", "error":
			return nil, fmt.Errorf("music generation failed: %s", result.Status)
		}

		select {
		case <-ctx.Done():
			log.Printf("[Music API] Poll music (task=%s) — context cancelled", taskID)
			return nil, ctx.Err()
		case <-time.After(interval):
			continue
		}
	}

	return nil, fmt.Errorf("music generation timed out after %v", maxWait)
}
