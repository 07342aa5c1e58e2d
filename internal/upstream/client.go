package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/metar-relay/internal/common"
	"github.com/i474232898/metar-relay/internal/station"
)

const (
	// DefaultBaseURL is the aviationweather.gov API root.
	DefaultBaseURL = "https://aviationweather.gov"

	// DefaultUserAgent identifies this service to the upstream provider.
	DefaultUserAgent = "metar-relay/1.0"

	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 8 * time.Second
)

// Sentinel errors for fetch outcomes. Callers classify with errors.Is, so
// wrap these rather than replacing them.
var (
	// ErrFetchFailed covers transport failures, timeouts, and non-2xx
	// upstream responses.
	ErrFetchFailed = errors.New("upstream fetch failed")

	// ErrNoReport means the upstream answered but has no current METAR
	// for the station.
	ErrNoReport = errors.New("no report available")

	// ErrUnusableContent means the upstream answered with something that
	// is not report data, typically an HTML error page.
	ErrUnusableContent = errors.New("unusable upstream response")
)

// Client talks to the aviationweather.gov data API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a Client. baseURL and userAgent fall back to the
// aviationweather.gov defaults when empty.
func NewClient(httpClient *http.Client, baseURL, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// RawMETAR fetches the newest raw METAR for one station. It makes a single
// attempt; callers that want retries wrap the client in a ResilientFetcher.
func (c *Client) RawMETAR(ctx context.Context, id station.ID) (string, error) {
	values := url.Values{}
	values.Set("ids", id.String())
	values.Set("format", "raw")
	values.Set("hours", "2")
	values.Set("taf", "false")

	body, err := c.getText(ctx, fmt.Sprintf("%s/api/data/metar?%s", c.baseURL, values.Encode()))
	if err != nil {
		return "", err
	}

	return extractReport(body, id)
}

// getText performs one GET and returns the response body as text.
func (c *Client) getText(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return string(body), nil
}

// extractReport pulls the first report line out of a raw response body.
func extractReport(body string, id station.ID) (string, error) {
	if looksLikeMarkup(body) {
		return "", fmt.Errorf("%w: got markup for %s", ErrUnusableContent, id)
	}

	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrNoReport, id)
}

// looksLikeMarkup detects HTML error pages served in place of data.
func looksLikeMarkup(body string) bool {
	return common.HasAny(strings.ToLower(body), "<html", "<!doctype", "<head", "<body")
}
