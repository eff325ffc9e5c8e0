package applicantsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small HTTP client for the applicant service. The zero value
// is not usable; construct it with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// BearerToken, when set, is sent on administrative requests.
	BearerToken string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SubmitApplication registers a new judge application.
func (c *Client) SubmitApplication(ctx context.Context, req SubmitApplicationRequest) (Application, error) {
	var out Application
	err := c.do(ctx, http.MethodPost, "/v1/applications", req, &out, false)
	return out, err
}

// VerifyEmail consumes a verification token from the emailed link.
func (c *Client) VerifyEmail(ctx context.Context, email, token string) (Application, error) {
	var out Application
	err := c.do(ctx, http.MethodPost, "/v1/applications/verify", VerifyEmailRequest{Email: email, Token: token}, &out, false)
	return out, err
}

// VerificationStatus polls the self-service verification state for email.
func (c *Client) VerificationStatus(ctx context.Context, email string) (VerificationStatusResponse, error) {
	var out VerificationStatusResponse
	path := "/v1/applications/" + url.PathEscape(email) + "/verification"
	err := c.do(ctx, http.MethodGet, path, nil, &out, false)
	return out, err
}

// Approve approves an application. Requires a bearer token with the
// applications:review scope.
func (c *Client) Approve(ctx context.Context, applicationID, notes string) (ReviewResponse, error) {
	var out ReviewResponse
	path := "/v1/applications/" + url.PathEscape(applicationID) + "/approve"
	err := c.do(ctx, http.MethodPost, path, ReviewRequest{Notes: notes}, &out, true)
	return out, err
}

// Decline declines an application. Requires a bearer token with the
// applications:review scope.
func (c *Client) Decline(ctx context.Context, applicationID, notes string) (ReviewResponse, error) {
	var out ReviewResponse
	path := "/v1/applications/" + url.PathEscape(applicationID) + "/decline"
	err := c.do(ctx, http.MethodPost, path, ReviewRequest{Notes: notes}, &out, true)
	return out, err
}

// IssueSignupLink mints a single-use signup link for a verified
// application. Requires the applications:review scope.
func (c *Client) IssueSignupLink(ctx context.Context, email string) (SignupLinkResponse, error) {
	var out SignupLinkResponse
	err := c.do(ctx, http.MethodPost, "/v1/applications/signup-link", SignupLinkRequest{Email: email}, &out, true)
	return out, err
}

// CompleteSignup redeems a signup token, finishing the lifecycle.
func (c *Client) CompleteSignup(ctx context.Context, email, token string) (Application, error) {
	var out Application
	err := c.do(ctx, http.MethodPost, "/v1/applications/signup/complete", CompleteSignupRequest{Email: email, Token: token}, &out, false)
	return out, err
}

// History returns an application's audit trail. Requires the
// applications:read scope.
func (c *Client) History(ctx context.Context, email string) (HistoryResponse, error) {
	var out HistoryResponse
	path := "/v1/applications/" + url.PathEscape(email) + "/history"
	err := c.do(ctx, http.MethodGet, path, nil, &out, true)
	return out, err
}

// Livez calls the liveness probe.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out, false)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var reader *bytes.Buffer
	if body != nil {
		reader = body
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError}
		var body ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			apiErr.Code = body.Error
			apiErr.Description = body.ErrorDescription
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
