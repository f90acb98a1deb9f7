package ai

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"skillfit/internal/config"
)

func breakerConfig(enabled bool) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestIndependentCircuitBreakersPerOperation(t *testing.T) {
	extractCB := NewAICircuitBreaker("Extract", breakerConfig(true), nil)
	gapCB := NewAICircuitBreaker("GapQuestion", breakerConfig(true), nil)

	if extractCB == gapCB {
		t.Error("operations should get independent circuit breaker instances")
	}

	tests := []struct {
		name     string
		cb       *AICircuitBreaker
		wantName string
	}{
		{"extract", extractCB, "AI-Extract"},
		{"gap question", gapCB, "AI-GapQuestion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := tt.cb.GetStats()

			if name, _ := stats["name"].(string); name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if state, _ := stats["state"].(string); state != "closed" {
				t.Errorf("initial state = %q, want closed", state)
			}
			if enabled, _ := stats["enabled"].(bool); !enabled {
				t.Error("circuit breaker should report enabled")
			}
			if !tt.cb.IsHealthy() {
				t.Error("circuit breaker should be healthy initially")
			}
		})
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cb := NewAICircuitBreaker("Disabled", breakerConfig(false), nil)
	if cb != nil {
		t.Fatal("circuit breaker should be nil when disabled")
	}

	// nil breakers pass calls through untouched
	wantErr := errors.New("downstream failure")
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Execute() error = %v, want passthrough of %v", err, wantErr)
	}

	if !cb.IsHealthy() {
		t.Error("disabled breaker should count as healthy")
	}
	if enabled, _ := cb.GetStats()["enabled"].(bool); enabled {
		t.Error("disabled breaker stats should report enabled=false")
	}
}

func TestModelCircuitBreakerDisabled(t *testing.T) {
	cb := NewModelCircuitBreaker("Disabled", breakerConfig(false), nil)
	if cb != nil {
		t.Fatal("model circuit breaker should be nil when disabled")
	}
	if !cb.IsModelHealthy() {
		t.Error("disabled model breaker should count as healthy")
	}
}
