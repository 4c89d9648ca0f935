package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
)

// validRawOutput is what a well-behaved drafting model returns: the plan
// object wrapped in a fence plus a little prose.
const validRawOutput = "Here is the production plan:\n```json\n" + `{
	"script": "Summer is here. Visit Crestline Motors this weekend and drive home happy.",
	"context": {
		"adCategory": "automotive",
		"tone": "friendly",
		"emotion": "excitement",
		"pace": "upbeat",
		"durationSeconds": 30
	},
	"music": {
		"prompt": "bright summer pop with handclaps",
		"targetBPM": 118,
		"genre": "pop",
		"mood": "energetic",
		"composerDirection": "keep the energy rising until the tag line"
	},
	"fades": {"fadeInSeconds": 0.05, "fadeOutSeconds": 0.4, "curve": "exponential"},
	"volume": {"voiceVolume": 1.0, "musicVolume": 0.8}
}` + "\n```\nLet me know if you need changes."

func composeBody(t *testing.T, rawOutput string, voiceSeconds float64) string {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"rawOutput":    rawOutput,
		"voiceSeconds": voiceSeconds,
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return string(body)
}

func TestComposePlan(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/compose/plan", composeBody(t, validRawOutput, 26))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["usedFallback"] == true {
		t.Error("valid raw output should not fall back")
	}

	production, ok := body["production"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected production object, got %v", body["production"])
	}
	if production["script"] == "" {
		t.Error("expected non-empty script")
	}

	timing, ok := body["timing"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected timing object, got %v", body["timing"])
	}
	tempo, _ := timing["tempo"].(float64)
	if tempo < 113 || tempo > 123 {
		t.Errorf("tempo = %v; want within ±5 of the requested 118", tempo)
	}
	if bars, _ := timing["totalBars"].(float64); bars < 1 {
		t.Errorf("totalBars = %v; want at least 1", bars)
	}

	prompt, ok := body["prompt"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected prompt object, got %v", body["prompt"])
	}
	if prompt["customMode"] != true {
		t.Error("structured plan should compose in custom mode")
	}
}

func TestComposePlanFallsBackOnProse(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/compose/plan",
		composeBody(t, "Sorry, I could not produce a plan for that request.", 0))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["usedFallback"] != true {
		t.Error("unparseable output should trigger the fallback plan")
	}
	if body["parseError"] == "" {
		t.Error("fallback response should carry the parse error")
	}

	production, ok := body["production"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected production object, got %v", body["production"])
	}
	music, ok := production["music"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected music object, got %v", production["music"])
	}
	if music["prompt"] == "" {
		t.Error("fallback plan must carry a music prompt")
	}
}

func TestComposePlanValidation(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/compose/plan", `{"rawOutput":""}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSpotStartValidation(t *testing.T) {
	ta := setupApp(t)

	// Duration above the allowed maximum
	body := `{
		"projectId": "5a0175c5-31db-4f9a-b175-4575e8705eb8",
		"brief": {
			"productName": "Crestline Motors",
			"keyMessage": "Summer sale this weekend",
			"adCategory": "automotive",
			"tone": "friendly",
			"durationSeconds": 600
		}
	}`

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/spots/start", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSpotStatusNotFound(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/spots/status/does-not-exist", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusNotFound)
}
