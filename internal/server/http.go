package server

import (
	"time"

	"skillfit/internal/config"
	skillfitErrors "skillfit/internal/errors"
	"skillfit/internal/store"
	"skillfit/internal/types"
)

// ParseJobRequest is the request body for the job parse endpoint
type ParseJobRequest struct {
	RawText  string `json:"rawText"`
	Assisted *bool  `json:"assisted,omitempty"` // defaults to true
	UserID   string `json:"userId,omitempty"`   // persist the job when a store is configured
}

// ParseJobResponse carries the parsed job and, when persisted, its id
type ParseJobResponse struct {
	JobID string                     `json:"jobId,omitempty"`
	Job   types.ParsedJobDescription `json:"job"`
}

// CoverageRequest is the request body for the coverage endpoint. The
// profile and job may be inlined or referenced by id when a store is
// configured.
type CoverageRequest struct {
	UserID  string                      `json:"userId,omitempty"`
	Profile *types.CareerData           `json:"profile,omitempty"`
	JobID   string                      `json:"jobId,omitempty"`
	Job     *types.ParsedJobDescription `json:"job,omitempty"`
}

// GapQuestionsRequest is the request body for the gap questions endpoint
type GapQuestionsRequest struct {
	UserID   string                      `json:"userId,omitempty"`
	Profile  *types.CareerData           `json:"profile,omitempty"`
	JobID    string                      `json:"jobId,omitempty"`
	Job      *types.ParsedJobDescription `json:"job,omitempty"`
	Assisted *bool                       `json:"assisted,omitempty"` // defaults to true
}

// GapResponsesRequest is the request body for the gap responses endpoint
type GapResponsesRequest struct {
	UserID    string                      `json:"userId,omitempty"`
	Profile   *types.CareerData           `json:"profile,omitempty"`
	Responses []types.GapQuestionResponse `json:"responses"`
	JobID     string                      `json:"jobId,omitempty"`
	Job       *types.ParsedJobDescription `json:"job,omitempty"`
}

// GapResponsesResponse carries the updated profile and, when a job was
// supplied, the recomputed coverage
type GapResponsesResponse struct {
	Profile  types.CareerData   `json:"profile"`
	Coverage *types.CoverageMap `json:"coverage,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate hot-reload
	certStore   *certStore
	certWatcher *CertWatcher

	// Persistence (nil when the store is disabled)
	Store *store.Store

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *skillfitErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *skillfitErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
