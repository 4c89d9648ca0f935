package model

import (
	"encoding/json"
	"time"
)

// Job represents a background job in the system. Payload and Result are
// raw JSON so they survive the round trip through the Redis job record.
type Job struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Status      JobStatus       `json:"status"`
	Progress    int             `json:"progress"`
	CurrentStep string          `json:"currentStep,omitempty"`
	Error       *string         `json:"error,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	RetryCount  int             `json:"retryCount"`
}

// Job types
const (
	JobTypeSpot = "spot"
)

// SpotJobPayload contains the data for a spot production job
type SpotJobPayload struct {
	ProjectID string    `json:"projectId"`
	Brief     SpotBrief `json:"brief"`
}
