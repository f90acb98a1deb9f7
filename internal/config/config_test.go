package config

import (
	"strings"
	"testing"
	"time"
)

func baseConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			APIKey:      "test-key",
			MaxRetries:  3,
			Temperature: 0.2,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port"},
		{"bad default format", func(c *Config) { c.App.DefaultFormat = "xml" }, "invalid default format"},
		{"ai enabled without key", func(c *Config) {
			c.AI.Enabled = true
			c.AI.APIKey = ""
		}, "AI API key"},
		{"store enabled without dsn", func(c *Config) { c.Store.Enabled = true }, "store DSN"},
		{"bad tls mode", func(c *Config) { c.Server.TLS.Mode = "sometimes" }, "invalid TLS mode"},
		{"server tls without cert", func(c *Config) { c.Server.TLS.Mode = "server" }, "certificate and key"},
		{"mutual tls without ca", func(c *Config) {
			c.Server.TLS = TLSConfig{Mode: "mutual", CertFile: "c.pem", KeyFile: "k.pem"}
		}, "CA certificate"},
		{"duplicate cert sources", func(c *Config) {
			c.Server.TLS = TLSConfig{Mode: "server", CertFile: "c.pem", CertContent: "pem", KeyFile: "k.pem"}
		}, "both certFile and certContent"},
		{"bad min version", func(c *Config) {
			c.Server.TLS = TLSConfig{Mode: "server", CertFile: "c.pem", KeyFile: "k.pem", MinVersion: "1.0"}
		}, "minVersion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestOperationConfigFallbacks(t *testing.T) {
	cfg := baseConfig()

	extract := cfg.GetExtractConfig()
	if extract.Provider != "gemini" || extract.Model != "gemini-2.0-flash" {
		t.Errorf("extract config missing global fallbacks: %+v", extract)
	}
	if extract.APIKey != "test-key" {
		t.Errorf("extract APIKey = %q, want fallback to global", extract.APIKey)
	}
	if extract.Timeout == nil || *extract.Timeout != 60*time.Second {
		t.Error("extract timeout not defaulted from global")
	}

	// explicit operation values win over globals
	opTimeout := 10 * time.Second
	cfg.AI.GapQuestion = OperationAIConfig{
		Model:   "gemini-1.5-pro",
		APIKey:  "op-key",
		Timeout: &opTimeout,
	}
	gap := cfg.GetGapQuestionConfig()
	if gap.Model != "gemini-1.5-pro" || gap.APIKey != "op-key" || *gap.Timeout != opTimeout {
		t.Errorf("gap question config overrides not preserved: %+v", gap)
	}
}
