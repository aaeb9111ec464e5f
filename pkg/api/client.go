// Package api is the typed client for the ServicePro backend HTTP API.
//
// Every backend response is wrapped in a fixed JSON envelope
// {success, message, data, errors, meta}; the client unwraps the envelope,
// surfaces the server message verbatim on failure, and translates the
// backend's role and booking-status vocabulary into the client's at the
// boundary. There is no retry, no backoff, and no token refresh: every
// failure is terminal for that call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
	"github.com/servicepro/servicepro-client/pkg/logger"
	"github.com/servicepro/servicepro-client/pkg/metrics"
)

const defaultBaseURL = "http://localhost:5000/api"

var errBaseURLRequired = errors.New("api base url is required")

// TokenSource supplies the bearer token attached to authenticated requests.
// Returning "" sends the request without credentials.
type TokenSource func() string

// Client performs requests against the backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	log        *logger.Logger
	metrics    *metrics.ClientMetrics
	validate   *validator.Validate
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource wires the persisted-token lookup used for authenticated
// requests.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		if source != nil {
			c.tokens = source
		}
	}
}

// WithLogger attaches a structured logger for request-level debug output.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics attaches a request metrics recorder.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewClient builds the API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// envelope is the fixed response wrapper every backend route uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    json.RawMessage `json:"meta"`
}

const fallbackMessage = "Request failed"

// do performs one API call and decodes the envelope's data field into out.
// auth controls whether the bearer token is attached; operation labels the
// call for logging and metrics.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any, auth bool, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, query, body, auth, out)
	c.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		code := string(pkgerrors.As(err).Code())
		c.metrics.IncFailure(operation, code)
		if c.log != nil {
			c.log.Error(ctx, fmt.Sprintf("api %s failed", operation), err)
		}
		return err
	}
	c.metrics.IncSuccess(operation)
	if c.log != nil {
		c.log.Debug(ctx, fmt.Sprintf("api %s ok", operation))
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body any, auth bool, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if auth {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = fallbackMessage
		}
		apiErr := pkgerrors.New(codeForStatus(resp.StatusCode), message)
		if len(env.Errors) > 0 {
			apiErr = apiErr.WithDetails(json.RawMessage(env.Errors))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeTransport, fallbackMessage)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	return nil
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens()
}

// codeForStatus classifies failures by HTTP status; the envelope message is
// surfaced unchanged regardless of the code.
func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	default:
		return pkgerrors.CodeAPI
	}
}

// check validates a request struct locally; failures never reach the network.
func (c *Client) check(req any) error {
	err := c.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		message := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			message += " is required"
		} else {
			message += " is invalid"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}
