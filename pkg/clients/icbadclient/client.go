// Package icbadclient scrapes the club's Interclubs teams and results from the
// federation's Interclubs site.
package icbadclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout applies when the configured timeout is zero
const DefaultTimeout = 30 * time.Second

// Client fetches pages of the Interclubs site
type Client struct {
	baseURL    string
	instance   string
	clubName   string
	httpClient *http.Client
}

// NewClient creates a client for the given club instance.
// httpClient may be nil, in which case a client with the given timeout is used.
func NewClient(baseURL, instance, clubName string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		instance:   instance,
		clubName:   clubName,
		httpClient: httpClient,
	}
}

// ClubName returns the name the club's teams are matched against
func (c *Client) ClubName() string {
	return c.clubName
}

func (c *Client) fetch(ctx context.Context, path string) (*goquery.Document, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return doc, nil
}
