package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrAPIUnavailable reports that no daemon is reachable at the configured bind.
var ErrAPIUnavailable = errors.New("daemon API unavailable")

// Client talks to a running daemon.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// NewClient builds a client for bind ("host:port" or a full URL). An empty
// bind yields a nil client whose calls return ErrAPIUnavailable.
func NewClient(bind, token string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, nil
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, err
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base:  base,
		token: strings.TrimSpace(token),
		// Synchronous passes can run for a long time; callers bound them with ctx.
		http: &http.Client{},
	}, nil
}

// Status fetches the daemon status.
func (c *Client) Status(ctx context.Context) (DaemonStatus, error) {
	var payload DaemonStatus
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &payload)
	return payload, err
}

// Runs fetches the newest limit runs.
func (c *Client) Runs(ctx context.Context, limit int) ([]Run, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var payload RunListResponse
	if err := c.do(ctx, http.MethodGet, "/api/runs", values, &payload); err != nil {
		return nil, err
	}
	return payload.Runs, nil
}

// Scan starts a tagging pass and waits for it to finish.
func (c *Client) Scan(ctx context.Context, scope string, fullRefresh bool) (Run, error) {
	values := url.Values{"wait": {"1"}}
	if scope != "" {
		values.Set("scope", scope)
	}
	if fullRefresh {
		values.Set("full", "1")
	}
	var payload RunResponse
	err := c.do(ctx, http.MethodPost, "/api/scan", values, &payload)
	return payload.Run, err
}

// RemoveTags runs the remove-all pass and waits for it to finish.
func (c *Client) RemoveTags(ctx context.Context) (Run, error) {
	var payload RunResponse
	err := c.do(ctx, http.MethodPost, "/api/tags/remove", url.Values{"wait": {"1"}}, &payload)
	return payload.Run, err
}

// NonMedia adds (or, with remove, strips) the non-media tag and waits.
func (c *Client) NonMedia(ctx context.Context, remove bool) (Run, error) {
	method := http.MethodPost
	if remove {
		method = http.MethodDelete
	}
	var payload RunResponse
	err := c.do(ctx, method, "/api/non-media", url.Values{"wait": {"1"}}, &payload)
	return payload.Run, err
}

func (c *Client) do(ctx context.Context, method, path string, values url.Values, out any) error {
	if c == nil {
		return ErrAPIUnavailable
	}
	endpoint := c.base.ResolveReference(&url.URL{Path: path, RawQuery: values.Encode()})
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
		}
		return &StatusError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// StatusError is a non-2xx daemon reply.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.Code, e.Message)
}

// IsAPIUnavailable reports whether err means no daemon answered.
func IsAPIUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.Is(err, ErrAPIUnavailable) || errors.As(err, &opErr)
}

// Probe reports whether a daemon answers at the client's address within timeout.
func (c *Client) Probe(ctx context.Context, timeout time.Duration) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err := c.Status(ctx)
	return err == nil
}
