package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

var ErrInvalidCA = errors.New("failed to parse CA certificate")

// TLSFiles are the PEM file paths of a mutual TLS client setup.
type TLSFiles struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

func (f TLSFiles) Enabled() bool {
	return f.CAFile != "" || f.CertFile != "" || f.KeyFile != ""
}

// LoadClientTLS returns a client [*tls.Config] trusting CAFile and presenting
// the CertFile/KeyFile pair. It returns nil when no file is set.
func LoadClientTLS(f TLSFiles) (*tls.Config, error) {
	const op = "adapter.LoadClientTLS"

	if !f.Enabled() {
		return nil, nil
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if f.CAFile != "" {
		caCert, err := os.ReadFile(f.CAFile)
		if err != nil {
			return nil, fmt.Errorf("%s: read CA certificate: %w", op, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCA)
		}
		cfg.RootCAs = pool
	}

	if f.CertFile != "" || f.KeyFile != "" {
		clientCert, err := tls.LoadX509KeyPair(f.CertFile, f.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cfg.Certificates = []tls.Certificate{clientCert}
	}

	return cfg, nil
}
