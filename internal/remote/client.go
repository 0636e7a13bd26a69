package remote

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/logging"
)

// API is the remote surface consumed by the sync engine.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	FetchMeta(ctx context.Context) (Meta, error)
	FetchSection(ctx context.Context, endpoint string) (Snapshot, error)
	PatchSection(ctx context.Context, endpoint string, payload map[string]any) (Snapshot, error)
	ListProfiles(ctx context.Context) ([]string, error)
	LoadProfile(ctx context.Context, name string) error
	SaveNewProfile(ctx context.Context, name string) (string, error)
	SaveWorking(ctx context.Context) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the remote process's /api/v1 HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	apiPrefix        = "/api/v1"
	defaultAPIBase   = "127.0.0.1:8765"
	defaultUserAgent = "switchboard/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 4 << 20
)

// NewClient builds a Client for the given host:port or URL. A zero timeout
// uses the default of five seconds.
func NewClient(apiBase string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchMeta retrieves the remote version and poll cadence.
func (c *Client) FetchMeta(ctx context.Context) (Meta, error) {
	var payload Meta
	if err := c.do(ctx, http.MethodGet, "/meta", nil, &payload); err != nil {
		return Meta{}, err
	}
	return payload, nil
}

// FetchSection retrieves the current snapshot of one section. A successful
// response with an empty or unparsable body yields a nil snapshot.
func (c *Client) FetchSection(ctx context.Context, endpoint string) (Snapshot, error) {
	var payload Snapshot
	if err := c.do(ctx, http.MethodGet, statePath(endpoint), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PatchSection sends a partial update and returns the full resulting snapshot.
func (c *Client) PatchSection(ctx context.Context, endpoint string, payload map[string]any) (Snapshot, error) {
	var snap Snapshot
	if err := c.do(ctx, http.MethodPatch, statePath(endpoint), payload, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// ListProfiles retrieves the names of saved profiles. A payload whose configs
// field is not an array yields an empty list.
func (c *Client) ListProfiles(ctx context.Context) ([]string, error) {
	var payload profileListResponse
	if err := c.do(ctx, http.MethodGet, "/configs", nil, &payload); err != nil {
		return nil, err
	}
	items, ok := payload.Configs.([]any)
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// LoadProfile makes the named profile the active remote state.
func (c *Client) LoadProfile(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/configs/load", profileRequest{Name: name}, nil)
}

// SaveNewProfile stores the current remote state under a new name and
// returns the name confirmed by the remote.
func (c *Client) SaveNewProfile(ctx context.Context, name string) (string, error) {
	var payload saveNewResponse
	if err := c.do(ctx, http.MethodPost, "/configs/save-new", profileRequest{Name: name}, &payload); err != nil {
		return "", err
	}
	return payload.Name, nil
}

// SaveWorking persists the live remote state under its current identity.
func (c *Client) SaveWorking(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/actions/save-config", struct{}{}, nil)
}

func statePath(endpoint string) string {
	return "/state/" + url.PathEscape(strings.TrimSpace(endpoint))
}

func (c *Client) do(ctx context.Context, method, path string, body any, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: apiPrefix + path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debug("request failed",
			zap.String("method", method),
			zap.String("path", rel.Path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	logging.Debug("request completed",
		zap.String("method", method),
		zap.String("path", rel.Path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, rel.Path, resp.StatusCode, requestID, raw)
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(dest); err != nil {
		// A garbled success body carries no data to apply.
		logging.Warn("discarding unparsable response body",
			zap.String("path", rel.Path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
