package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jcel/gestion/pkg/domain"
)

// SessionSource provides the current session, or nil when anonymous.
type SessionSource interface {
	Get() (*domain.Session, error)
}

// RequestOptions configures a single call. The zero value is an
// authenticated GET.
type RequestOptions struct {
	Method string
	Body   any
	// Public skips the credential check and the Authorization header.
	Public bool
}

// Client is the ticketing backend API client.
type Client struct {
	baseURL    string
	sessions   SessionSource
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new API client. A zero timeout leaves the transport default.
func New(baseURL string, sessions SessionSource, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.Default(),
	}
}

// WithLogger replaces the logger used for failed requests.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

var tokenPattern = regexp.MustCompile(`(?i)token`)

func mentionsToken(message string) bool {
	return tokenPattern.MatchString(message)
}

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// Request issues a JSON request against the backend and returns the parsed
// body. Every failure is an *APIError except a session store that cannot be
// read, which is returned as-is.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var token string
	if !opts.Public {
		var sess *domain.Session
		if c.sessions != nil {
			s, err := c.sessions.Get()
			if err != nil {
				return nil, fmt.Errorf("read session: %w", err)
			}
			sess = s
		}
		if !sess.Authenticated() {
			return nil, errUnauthenticated()
		}
		token = sess.Token
	}

	var reqBody io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, errUnreachable(err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	data := parseBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Msg any `json:"msg"`
		}
		_ = json.Unmarshal(data, &envelope) //nolint:errcheck // shape is optional
		msg, _ := envelope.Msg.(string)
		apiErr := NewHTTPError(resp.StatusCode, msg)
		c.logger.Debug("request rejected", "method", method, "path", path,
			"status", resp.StatusCode, "auth_issue", apiErr.AuthIssue)
		return nil, apiErr
	}
	return data, nil
}

// parseBody reads a JSON body, yielding an empty object when it is missing
// or malformed.
func parseBody(r io.Reader) json.RawMessage {
	data, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil || !json.Valid(data) {
		return json.RawMessage("{}")
	}
	return json.RawMessage(data)
}

func (c *Client) do(ctx context.Context, method, path string, body any, public bool, out any) error {
	data, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body, Public: public})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, false, out)
}
