// Package betfair implements the transport and session layer for the Betfair
// Exchange API. It speaks the JSON-RPC dialect the exchange exposes at
// SportsAPING/AccountAPING endpoints and the form-encoded identity endpoints
// used for login, keep-alive and logout.
//
// The typed operation surfaces live in the betting and account subpackages;
// both drive the executor implemented here.
package betfair

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Endpoints holds the exchange URLs one client talks to. Zero fields fall
// back to the international production endpoints; jurisdictions with their
// own identity domains (.es, .it) override them here.
type Endpoints struct {
	Betting      string
	Account      string
	Identity     string
	IdentityCert string
}

const (
	defaultBettingURL      = "https://api.betfair.com/exchange/betting/json-rpc/v1"
	defaultAccountURL      = "https://api.betfair.com/exchange/account/json-rpc/v1"
	defaultIdentityURL     = "https://identitysso.betfair.com/api/"
	defaultIdentityCertURL = "https://identitysso-cert.betfair.com/api/"
)

// Recorder observes completed RPC calls. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordCall(method string, elapsed time.Duration, err error)
}

// ClientConfig configures a Client. AppKey is the only required field.
type ClientConfig struct {
	// AppKey is the application key sent as X-Application on every request.
	AppKey string

	// SessionToken seeds the client with an existing session. Leave empty
	// when logging in through CertLogin or InteractiveLogin.
	SessionToken string

	// Certificate is the client TLS certificate used by the cert login
	// endpoint. Required for CertLogin, ignored otherwise.
	Certificate *tls.Certificate

	// Endpoints overrides individual exchange URLs. Zero fields keep the
	// production defaults.
	Endpoints Endpoints

	// Timeout bounds each HTTP round trip. Defaults to 30s.
	Timeout time.Duration

	// RequestsPerSecond/Burst throttle outgoing calls. Zero disables
	// client-side throttling.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient replaces the built-in client. When set, Certificate and
	// Timeout are not applied; the caller owns the transport.
	HTTPClient *http.Client

	// Recorder receives per-call observations. Optional.
	Recorder Recorder
}

// Client is a Betfair Exchange API client. It carries the application key,
// the session token and the HTTP transport, and implements the executor
// contract the betting and account packages consume.
//
// A Client is safe for concurrent use. The session token is shared state:
// KeepAlive and re-login update it for all in-flight users.
type Client struct {
	appKey    string
	endpoints Endpoints

	httpClient *http.Client
	limiter    *rate.Limiter
	recorder   Recorder

	mu           sync.RWMutex
	sessionToken string
}

// NewClient builds a Client from cfg.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.AppKey == "" {
		return nil, fmt.Errorf("betfair: app key is required")
	}

	ep := cfg.Endpoints
	if ep.Betting == "" {
		ep.Betting = defaultBettingURL
	}
	if ep.Account == "" {
		ep.Account = defaultAccountURL
	}
	if ep.Identity == "" {
		ep.Identity = defaultIdentityURL
	}
	if ep.IdentityCert == "" {
		ep.IdentityCert = defaultIdentityCertURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.Certificate != nil {
			transport.TLSClientConfig = &tls.Config{
				Certificates: []tls.Certificate{*cfg.Certificate},
				MinVersion:   tls.VersionTLS12,
			}
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		appKey:       cfg.AppKey,
		endpoints:    ep,
		httpClient:   httpClient,
		limiter:      limiter,
		recorder:     cfg.Recorder,
		sessionToken: cfg.SessionToken,
	}, nil
}

// SessionToken returns the current session token, or "" before login.
func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

// SetSessionToken replaces the session token, e.g. one restored from disk.
func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	c.sessionToken = token
	c.mu.Unlock()
}

// AppKey returns the application key the client authenticates with.
func (c *Client) AppKey() string {
	return c.appKey
}
