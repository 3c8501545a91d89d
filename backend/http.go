package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient implements [Client] over net/http.
type HTTPClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// HTTPOptions configures [NewHTTPClient]. Zero values fall back to the local
// development defaults the site uses.
type HTTPOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport overrides the underlying client, mainly for tests.
	Transport http.RoundTripper
}

// NewHTTPClient builds a backend client for the given base URL.
func NewHTTPClient(opts HTTPOptions) *HTTPClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "rgbim-go/1.0"
	}

	return &HTTPClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
		},
	}
}

// BaseURL returns the configured service root.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	AccessToken  string `json:"tokenAcesso"`
	RefreshToken string `json:"refreshToken"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (Credentials, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/user/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

func (c *HTTPClient) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/api/user/logout", accessToken, nil, nil)
}

type profileResponse struct {
	Status  int `json:"status"`
	Profile struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"nome"`
		Role  string `json:"funcao"`
	} `json:"mensagemSucesso"`
}

func (c *HTTPClient) Profile(ctx context.Context, accessToken string) (Profile, error) {
	var resp profileResponse
	err := c.do(ctx, http.MethodGet, "/api/user/profile", accessToken, nil, &resp)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:    resp.Profile.ID,
		Email: resp.Profile.Email,
		Name:  resp.Profile.Name,
		Role:  resp.Profile.Role,
	}, nil
}

type registerRequest struct {
	Name            string `json:"nome"`
	Email           string `json:"email"`
	Password        string `json:"senha"`
	PasswordConfirm string `json:"senhaConfirmacao"`
}

type statusMessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"mensagemSucesso"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password, passwordConfirm string) (string, error) {
	var resp statusMessageResponse
	req := registerRequest{Name: name, Email: email, Password: password, PasswordConfirm: passwordConfirm}
	if err := c.do(ctx, http.MethodPost, "/api/user/register", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type validateRequest struct {
	Email string `json:"email"`
	Code  string `json:"codigo"`
}

func (c *HTTPClient) ValidateCode(ctx context.Context, email, code string) error {
	var resp statusMessageResponse
	return c.do(ctx, http.MethodPost, "/api/user/validate", "", validateRequest{Email: email, Code: code}, &resp)
}

type checkoutResponse struct {
	Status int    `json:"status"`
	URL    string `json:"urlStripe"`
}

func (c *HTTPClient) StartSubscription(ctx context.Context, accessToken string) (string, error) {
	var resp checkoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/checkout/subscribe", accessToken, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) CancelSubscription(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodDelete, "/api/user/cancel-subscription", accessToken, nil, nil)
}

func (c *HTTPClient) PluginDownloadLinks(ctx context.Context, accessToken string) (map[string]string, error) {
	// The payload is a status field plus key->URL pairs; non-string values
	// (the status, missing files as null) are skipped.
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/plugin/download-links", accessToken, nil, &raw); err != nil {
		return nil, err
	}

	links := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil && s != "" {
			links[key] = s
		}
	}
	return links, nil
}

func (c *HTTPClient) DownloadProduct(ctx context.Context, accessToken, material, name string) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("material", material)
	if name != "" {
		query.Set("name", name)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/produto/file?"+query.Encode(), accessToken, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp.Body, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, accessToken string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return req, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, body, target any) error {
	req, err := c.newRequest(ctx, method, path, accessToken, body)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("backend: parse response: %w", err)
		}
	}
	return nil
}

// errorEnvelope matches the backend's failure body. "errors" wins over
// "mensagem"; either may be a bare string or structured JSON.
type errorEnvelope struct {
	Errors  json.RawMessage `json:"errors"`
	Message json.RawMessage `json:"mensagem"`
}

func decodeError(resp *http.Response) *Error {
	out := &Error{StatusCode: resp.StatusCode, Message: resp.Status}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(data) == 0 {
		return out
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return out
	}

	if msg := rawToString(envelope.Errors); msg != "" {
		out.Message = msg
	} else if msg := rawToString(envelope.Message); msg != "" {
		out.Message = msg
	}
	return out
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
