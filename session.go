package betfair

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Identity endpoint responses. The cert login endpoint answers with a
// different shape than the interactive login / keep-alive / logout family.
type certLoginResponse struct {
	SessionToken string `json:"sessionToken"`
	LoginStatus  string `json:"loginStatus"`
}

type identityResponse struct {
	Token   string `json:"token"`
	Product string `json:"product"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

const statusSuccess = "SUCCESS"

// CertLogin authenticates with the certificate login endpoint and stores the
// returned session token on the client. The client must have been built with
// a TLS certificate; the exchange rejects cert logins without one.
func (c *Client) CertLogin(ctx context.Context, username, password string) error {
	body, err := c.identityPost(ctx, c.endpoints.IdentityCert+"certlogin", "certLogin", username, password)
	if err != nil {
		return fmt.Errorf("cert login: %w", err)
	}

	var resp certLoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("cert login: decode response: %w", err)
	}
	if resp.LoginStatus != statusSuccess {
		return &LoginError{Op: "cert login", Status: resp.LoginStatus}
	}

	c.SetSessionToken(resp.SessionToken)
	return nil
}

// InteractiveLogin authenticates with username and password only. Accounts
// with two-factor authentication or bot restrictions must use CertLogin.
func (c *Client) InteractiveLogin(ctx context.Context, username, password string) error {
	body, err := c.identityPost(ctx, c.endpoints.Identity+"login", "login", username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var resp identityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("login: decode response: %w", err)
	}
	if resp.Status != statusSuccess {
		status := resp.Status
		if resp.Error != "" {
			status = resp.Error
		}
		return &LoginError{Op: "login", Status: status}
	}

	c.SetSessionToken(resp.Token)
	return nil
}

// KeepAlive extends the current session's lifetime. Sessions idle out after
// a jurisdiction-dependent period (4h international, 20m Italy); callers
// keeping a client alive long-term should invoke this on a timer well inside
// that window.
func (c *Client) KeepAlive(ctx context.Context) error {
	resp, err := c.sessionPost(ctx, "keepAlive")
	if err != nil {
		return err
	}
	c.SetSessionToken(resp.Token)
	return nil
}

// Logout terminates the session and clears the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.sessionPost(ctx, "logout"); err != nil {
		return err
	}
	c.SetSessionToken("")
	return nil
}

// identityPost sends a form-encoded credential request to an identity
// endpoint and returns the response body.
func (c *Client) identityPost(ctx context.Context, endpoint, op, username, password string) ([]byte, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Application", c.appKey)

	return c.doIdentity(req, op)
}

// sessionPost drives the keep-alive/logout family, which authenticates with
// the session token instead of credentials.
func (c *Client) sessionPost(ctx context.Context, op string) (*identityResponse, error) {
	token := c.SessionToken()
	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSession)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Identity+op, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Application", c.appKey)
	req.Header.Set("X-Authentication", token)

	body, err := c.doIdentity(req, op)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp identityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if resp.Status != statusSuccess {
		status := resp.Status
		if resp.Error != "" {
			status = resp.Error
		}
		return nil, &LoginError{Op: op, Status: status}
	}
	return &resp, nil
}

func (c *Client) doIdentity(req *http.Request, op string) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.recorder != nil {
		c.recorder.RecordCall(op, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %w", resp.StatusCode, ErrLoginFailed)
	}
	return body, nil
}
