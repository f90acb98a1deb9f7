package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"skillfit/internal/ai"
)

// healthCheckTimeout bounds the outbound model availability probe so a
// hung provider cannot stall the health endpoint.
const healthCheckTimeout = 10 * time.Second

// healthHandler reports service health, including AI model
// availability, store connectivity and certificate watcher state
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, "Method not allowed", "Only GET is supported", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]any{
		"status":    "healthy",
		"service":   "skillfit",
		"version":   s.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	checks := map[string]any{}
	degraded := false

	if s.AppConfig.AI.Enabled {
		aiCheck := map[string]any{"enabled": true}
		extractConfig := s.AppConfig.GetExtractConfig()
		aiService, err := ai.NewService(&extractConfig, "extract", s.Logger)
		if err != nil {
			aiCheck["status"] = "unhealthy"
			aiCheck["error"] = err.Error()
			degraded = true
		} else {
			checkCtx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			modelInfo := aiService.Provider.GetModelInfo(checkCtx)
			cancel()

			aiCheck["model"] = modelInfo.Name
			if statsProvider, ok := aiService.Provider.(interface{ GetCircuitBreakerStats() map[string]any }); ok {
				aiCheck["circuit_breaker"] = statsProvider.GetCircuitBreakerStats()
			}
			if modelInfo.Available {
				aiCheck["status"] = "healthy"
			} else {
				aiCheck["status"] = "unhealthy"
				aiCheck["error"] = modelInfo.Error
				degraded = true
			}
		}
		checks["ai"] = aiCheck
	} else {
		checks["ai"] = map[string]any{"enabled": false, "status": "disabled"}
	}

	if s.Store != nil {
		storeCheck := map[string]any{"enabled": true}
		pingCtx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := s.Store.Ping(pingCtx)
		cancel()
		if err != nil {
			storeCheck["status"] = "unhealthy"
			storeCheck["error"] = err.Error()
			degraded = true
		} else {
			storeCheck["status"] = "healthy"
		}
		checks["store"] = storeCheck
	} else {
		checks["store"] = map[string]any{"enabled": false, "status": "disabled"}
	}

	if s.certWatcher != nil {
		checks["cert_watcher"] = map[string]any{
			"running":       s.certWatcher.IsRunning(),
			"watched_files": s.certWatcher.GetWatchedFiles(),
		}
	}

	health["checks"] = checks
	statusCode := http.StatusOK
	if degraded {
		health["status"] = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.Logger.LogError(err, "failed to encode health response")
	}
}

// statsHandler exposes runtime statistics for operators
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, "Method not allowed", "Only GET is supported", http.StatusMethodNotAllowed)
		return
	}

	stats := map[string]any{
		"service":   "skillfit",
		"version":   s.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if s.RateLimiter != nil {
		stats["rate_limiter"] = s.RateLimiter.GetStats()
	} else {
		stats["rate_limiter"] = map[string]any{"enabled": false}
	}

	stats["config"] = map[string]any{
		"ai_enabled":       s.AppConfig.AI.Enabled,
		"store_enabled":    s.Store != nil,
		"tls_mode":         s.TLSConfig.Mode,
		"auth_enabled":     len(s.APIKeys) > 0,
		"max_request_size": s.MaxRequestSize,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		s.Logger.LogError(err, "failed to encode stats response")
	}
}

// parseJSONRequest decodes a JSON request body into dst, enforcing the
// Content-Type header and translating size limit errors
func parseJSONRequest(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("unsupported content type %q, expected application/json", contentType)
		}
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body exceeds the %d byte limit", maxBytesErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// writeErrorResponse writes a structured JSON error response
func writeErrorResponse(w http.ResponseWriter, errorMsg, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorMsg,
		Message: strings.TrimSpace(message),
	})
}
