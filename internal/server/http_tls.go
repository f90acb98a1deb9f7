package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"skillfit/internal/observability"
)

// certExpiry returns the NotAfter of the leaf certificate, or the zero
// time when the chain cannot be parsed
func certExpiry(cert tls.Certificate) time.Time {
	if len(cert.Certificate) == 0 {
		return time.Time{}
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return time.Time{}
	}
	return leaf.NotAfter
}

// certStore holds the active server certificate behind a mutex so the
// file watcher can swap it without restarting listeners.
type certStore struct {
	mu   sync.RWMutex
	cert tls.Certificate
}

func (cs *certStore) get() *tls.Certificate {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return &cs.cert
}

func (cs *certStore) set(cert tls.Certificate) {
	cs.mu.Lock()
	cs.cert = cert
	cs.mu.Unlock()
}

// loadCertificate loads the keypair from inline PEM content when
// present, otherwise from the configured files
func (s *Server) loadCertificate() (tls.Certificate, error) {
	if s.TLSConfig.CertContent != "" && s.TLSConfig.KeyContent != "" {
		cert, err := tls.X509KeyPair([]byte(s.TLSConfig.CertContent), []byte(s.TLSConfig.KeyContent))
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to parse TLS certificate content: %w", err)
		}
		return cert, nil
	}

	cert, err := tls.LoadX509KeyPair(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return cert, nil
}

// configureTLS builds the tls.Config for the configured mode and wires
// up certificate hot-reload for file-based certificates. Returns nil
// when TLS is disabled.
func (s *Server) configureTLS(om *observability.ObservabilityManager) (*tls.Config, error) {
	switch s.TLSConfig.Mode {
	case "", "disabled":
		return nil, nil
	case "server", "mutual":
	default:
		return nil, fmt.Errorf("unsupported TLS mode: %s", s.TLSConfig.Mode)
	}

	cert, err := s.loadCertificate()
	if err != nil {
		return nil, err
	}
	s.certStore = &certStore{cert: cert}
	om.GetMetrics().RecordCertExpiry(context.Background(), certExpiry(cert), om)

	tlsConfig := &tls.Config{
		MinVersion: s.getMinTLSVersion(),
		GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
			return s.certStore.get(), nil
		},
	}

	if s.TLSConfig.Mode == "mutual" {
		caPool, err := s.loadClientCAPool()
		if err != nil {
			return nil, err
		}
		tlsConfig.ClientCAs = caPool
		tlsConfig.ClientAuth = s.getClientAuthPolicy()
	}

	if err := s.setupCertWatcher(om); err != nil {
		return nil, err
	}

	return tlsConfig, nil
}

// loadClientCAPool builds the CA pool used to verify client
// certificates in mutual mode
func (s *Server) loadClientCAPool() (*x509.CertPool, error) {
	var caPEM []byte
	if s.TLSConfig.CAContent != "" {
		caPEM = []byte(s.TLSConfig.CAContent)
	} else if s.TLSConfig.CAFile != "" {
		data, err := os.ReadFile(s.TLSConfig.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		caPEM = data
	} else {
		return nil, fmt.Errorf("mutual TLS requires a CA certificate")
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}
	return caPool, nil
}

func (s *Server) getMinTLSVersion() uint16 {
	switch s.TLSConfig.MinVersion {
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}

func (s *Server) getClientAuthPolicy() tls.ClientAuthType {
	switch s.TLSConfig.ClientAuthPolicy {
	case "request":
		return tls.RequestClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	case "require":
		return tls.RequireAndVerifyClientCert
	default:
		return tls.RequireAndVerifyClientCert
	}
}

// setupCertWatcher starts the file watcher that reloads the keypair on
// change. Inline certificate content has no files to watch.
func (s *Server) setupCertWatcher(om *observability.ObservabilityManager) error {
	if !s.TLSConfig.Watch.Enabled {
		return nil
	}
	if s.TLSConfig.CertFile == "" || s.TLSConfig.KeyFile == "" {
		s.Logger.Debug("certificate watch enabled but certificates are inline, skipping watcher")
		return nil
	}

	reload := func() {
		ctx := context.Background()
		cert, err := s.loadCertificate()
		if err != nil {
			s.Logger.LogError(err, "certificate reload failed, keeping previous certificate")
			om.GetMetrics().RecordCertReload(ctx, false, om)
			return
		}
		s.certStore.set(cert)
		s.Logger.Info("TLS certificate reloaded",
			"cert_file", s.TLSConfig.CertFile)
		om.GetMetrics().RecordCertReload(ctx, true, om)
		om.GetMetrics().RecordCertExpiry(ctx, certExpiry(cert), om)
	}

	watcher, err := NewCertWatcher(
		s.TLSConfig.CertFile,
		s.TLSConfig.KeyFile,
		s.TLSConfig.CAFile,
		s.TLSConfig.Watch.DebounceDelay,
		reload,
		s.Logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start certificate watcher: %w", err)
	}

	s.certWatcher = watcher
	return nil
}
