package betfair

import (
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// LoadCertificate reads a client certificate and key from PEM files, the
// format produced when generating bot credentials with openssl.
func LoadCertificate(certFile, keyFile string) (*tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("betfair: load certificate pair: %w", err)
	}
	return &cert, nil
}

// LoadCertificateP12 reads a PKCS#12 bundle, the format the exchange's
// developer portal issues directly, and converts it to a TLS certificate.
func LoadCertificateP12(path, password string) (*tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("betfair: read p12 bundle: %w", err)
	}
	return CertificateFromP12(data, password)
}

// CertificateFromP12 converts raw PKCS#12 bytes to a TLS certificate.
func CertificateFromP12(data []byte, password string) (*tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return nil, fmt.Errorf("betfair: decode p12 bundle: %w", err)
	}

	var certPEM, keyPEM []byte
	for _, block := range blocks {
		encoded := pem.EncodeToMemory(block)
		switch block.Type {
		case "CERTIFICATE":
			certPEM = append(certPEM, encoded...)
		case "PRIVATE KEY":
			keyPEM = append(keyPEM, encoded...)
		}
	}
	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return nil, fmt.Errorf("betfair: p12 bundle missing certificate or key")
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("betfair: build key pair from p12: %w", err)
	}
	return &cert, nil
}
