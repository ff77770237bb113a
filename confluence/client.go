package confluence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var (
	// ErrAuth is returned when the server rejects the session cookie.
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound is returned when a page id no longer resolves.
	ErrNotFound = errors.New("page not found")
)

// Config holds the two inputs every request needs: where the Confluence
// instance lives and the JSESSIONID cookie value that authenticates us.
type Config struct {
	BaseURL string
	Cookie  string
}

// Client issues authenticated GET requests against the Confluence REST API.
// The session cookie lives in the client's cookie jar, so every request
// carries it automatically.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	// BatchPause, when set, is called between paginated listing requests.
	BatchPause func()
}

func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", cfg.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	jar.SetCookies(base, []*http.Cookie{{Name: "JSESSIONID", Value: cfg.Cookie}})

	return &Client{
		baseURL: base,
		http:    &http.Client{Jar: jar},
	}, nil
}

// CheckAuth verifies the session cookie with a cheap authenticated call.
// A failure here means no page can be retrieved, so callers should abort.
func (c *Client) CheckAuth(ctx context.Context) error {
	if _, err := c.get(ctx, "/rest/api/user/current", nil); err != nil {
		return err
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", path, ErrAuth)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body for %s: %w", path, err)
	}
	return body, nil
}
