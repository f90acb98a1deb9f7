package cli

import (
	"fmt"

	"skillfit/internal/config"
	"skillfit/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for coverage matching and gap analysis",
	Long: `Start an HTTP server that provides REST API endpoints for job parsing,
coverage matching, and gap analysis.

Available endpoints:
- POST /v1/jobs/parse: Parse a job description into structured requirements
- GET /v1/jobs: List persisted job ids for a user
- POST /v1/coverage: Score a career profile against a parsed job
- POST /v1/gap-questions: Generate questions for uncovered requirements
- POST /v1/gap-responses: Fold question answers back into a profile
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Apply flag overrides on top of the loaded configuration
	overrideString := func(target *string, flagName string) {
		if value, err := cmd.Flags().GetString(flagName); err == nil && value != "" {
			*target = value
		}
	}
	overrideString(&cfg.Server.Port, "port")
	overrideString(&cfg.Server.Host, "host")
	overrideString(&cfg.Server.TLS.Mode, "tls-mode")
	overrideString(&cfg.Server.TLS.CertFile, "cert-file")
	overrideString(&cfg.Server.TLS.KeyFile, "key-file")
	overrideString(&cfg.Server.TLS.CAFile, "ca-file")

	// Resolve Vault-held secrets before the server snapshots the config
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		return fmt.Errorf("failed to apply vault secrets: %w", err)
	}

	// Validate TLS configuration after applying overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, logger).Start()
}
