package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
	"github.com/jwalitptl/petcare-portal/pkg/token"
)

const (
	defaultTimeout = 15 * time.Second
	// A request that came back 401 is replayed at most once with a
	// refreshed token. The bound lives here, not on the request.
	maxAuthRetries = 1

	maxErrorBody = 1 << 20
)

// HTTPError represents a non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// errorEnvelope matches the backend's error payloads.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

// Config holds client construction options.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is injectable for tests.
	Transport http.RoundTripper
	Limiter   *rate.Limiter
	// OnAuthFailure runs when the refresh path is exhausted, the
	// client-side equivalent of forcing navigation to the login page.
	OnAuthFailure func()
}

// Client is the single HTTP client every entity store goes through.
// It attaches the bearer token at send time and recovers transparently
// from one expired-access-token failure per request.
type Client struct {
	http          *http.Client
	baseURL       string
	tokens        *token.Store
	limiter       *rate.Limiter
	onAuthFailure func()
	log           *logger.Logger
	metrics       *metrics.Metrics
}

func New(cfg Config, tokens *token.Store, log *logger.Logger, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		tokens:        tokens,
		limiter:       cfg.Limiter,
		onAuthFailure: cfg.OnAuthFailure,
		log:           log,
		metrics:       m,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		err := c.once(ctx, method, path, body, out)
		if err == nil {
			return nil
		}

		httpErr, ok := err.(*HTTPError)
		if !ok || httpErr.StatusCode != http.StatusUnauthorized {
			return c.classify(err)
		}
		if attempt >= maxAuthRetries {
			// Second 401 in a row, do not loop on refresh.
			return errors.Unauthorized(err)
		}
		if err := c.refresh(ctx); err != nil {
			return err
		}
	}
}

func (c *Client) once(ctx context.Context, method, path string, body []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	c.metrics.RequestsInFlight.Inc()
	resp, err := c.http.Do(req)
	c.metrics.RequestsInFlight.Dec()
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(method, routeLabel(path), "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.APIRequests.WithLabelValues(method, routeLabel(path), fmt.Sprintf("%d", resp.StatusCode)).Inc()
	c.metrics.APILatency.WithLabelValues(method, routeLabel(path)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Only error bodies are size-capped; success payloads can be
		// arbitrarily large (image data URIs).
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return fmt.Errorf("failed to read error response: %w", err)
		}
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// refresh exchanges the persisted refresh token for a new access token
// and stores it. On any failure both tokens are cleared and the auth
// failure hook fires.
func (c *Client) refresh(ctx context.Context) error {
	refreshToken, err := c.tokens.RefreshToken()
	if err != nil {
		// No refresh token: go straight to the login path without
		// attempting the exchange.
		return c.authFailed(err)
	}

	c.metrics.TokenRefreshes.Inc()
	c.log.Debug("access token rejected, attempting refresh")

	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.TokenRefreshFailures.Inc()
		return c.authFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.TokenRefreshFailures.Inc()
		return c.authFailed(fmt.Errorf("refresh rejected with status %d", resp.StatusCode))
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Token == "" {
		c.metrics.TokenRefreshFailures.Inc()
		return c.authFailed(fmt.Errorf("invalid refresh response"))
	}

	if err := c.tokens.SetAccessToken(out.Token); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	c.log.Debug("access token refreshed")
	return nil
}

func (c *Client) authFailed(cause error) error {
	c.log.Warn("token refresh failed, clearing credentials", "error", fmt.Sprint(cause))
	if err := c.tokens.Clear(); err != nil {
		c.log.Error(err, "failed to clear tokens")
	}
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
	return errors.Unauthorized(cause)
}

// classify maps raw failures into the portal error taxonomy.
func (c *Client) classify(err error) error {
	httpErr, ok := err.(*HTTPError)
	if !ok {
		return errors.Transport(err)
	}

	var env errorEnvelope
	msg := httpErr.Body
	if jsonErr := json.Unmarshal([]byte(httpErr.Body), &env); jsonErr == nil {
		if env.Error != "" {
			msg = env.Error
		} else if env.Message != "" {
			msg = env.Message
		}
	}

	if httpErr.StatusCode == http.StatusNotFound {
		return errors.NotFound("resource", httpErr)
	}
	return errors.Business(msg, httpErr)
}

// routeLabel keeps metric cardinality down by labelling with the
// collection segment only.
func routeLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
