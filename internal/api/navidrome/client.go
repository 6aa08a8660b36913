// Package navidrome asks a Navidrome (Subsonic API) server to index the library after
// it has been reorganized.
package navidrome

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	subsonic "github.com/delucks/go-subsonic"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// NewNavidromeClient creates a new navidrome client. A nil httpClient uses http.DefaultClient.
func NewNavidromeClient(serverURL, username, password string, httpClient *http.Client) *NavidromeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NavidromeClient{
		URL:        strings.TrimRight(serverURL, "/"),
		Username:   username,
		Password:   password,
		HTTPClient: httpClient,
	}
}

// Enabled reports whether URL and credentials are all set
func (n *NavidromeClient) Enabled() bool {
	return n.URL != "" && n.Username != "" && n.Password != ""
}

// Validate checks the configured URL without contacting the server
func (n *NavidromeClient) Validate() error {
	if !n.Enabled() {
		return fmt.Errorf("navidrome url, username and password are required")
	}
	u, err := url.Parse(n.URL)
	if err != nil {
		return fmt.Errorf("invalid navidrome url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid navidrome url %q: scheme must be http or https", n.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid navidrome url %q: missing host", n.URL)
	}
	return nil
}

// Authenticate authenticates the client with the navidrome api
func (n *NavidromeClient) Authenticate() error {
	if n.authenticated {
		return nil
	}
	if err := n.Validate(); err != nil {
		return err
	}
	n.Client = subsonic.Client{
		Client:     n.HTTPClient,
		BaseUrl:    n.URL,
		User:       n.Username,
		ClientName: clientName,
	}
	if err := n.Client.Authenticate(n.Password); err != nil {
		return fmt.Errorf("navidrome authentication failed: %w", err)
	}
	n.Salt = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	n.Token = getSaltedPassword(n.Password, n.Salt)
	n.authenticated = true
	return nil
}

// TriggerScan starts a library scan on the server
func (n *NavidromeClient) TriggerScan(ctx context.Context) error {
	if err := n.Authenticate(); err != nil {
		return err
	}
	if _, err := n.call(ctx, "startScan"); err != nil {
		return fmt.Errorf("failed to start scan: %w", err)
	}
	return nil
}

// ScanStatus returns the current scan state
func (n *NavidromeClient) ScanStatus(ctx context.Context) (*ScanStatus, error) {
	if err := n.Authenticate(); err != nil {
		return nil, err
	}
	status, err := n.call(ctx, "getScanStatus")
	if err != nil {
		return nil, fmt.Errorf("failed to get scan status: %w", err)
	}
	if status == nil {
		return nil, fmt.Errorf("failed to get scan status: response has no scanStatus")
	}
	return status, nil
}

// WaitForScan polls the scan status at the pace allowed by limiter until the server
// reports it is idle, and returns the number of indexed files.
func (n *NavidromeClient) WaitForScan(ctx context.Context, limiter *rate.Limiter) (int64, error) {
	for {
		if err := limiter.Wait(ctx); err != nil {
			return 0, err
		}
		status, err := n.ScanStatus(ctx)
		if err != nil {
			return 0, err
		}
		if !status.Scanning {
			return status.Count, nil
		}
	}
}

// call performs a token-authenticated JSON request against a /rest endpoint
func (n *NavidromeClient) call(ctx context.Context, endpoint string) (*ScanStatus, error) {
	params := url.Values{}
	params.Set("u", n.Username)
	params.Set("t", n.Token)
	params.Set("s", n.Salt)
	params.Set("v", apiVersion)
	params.Set("c", clientName)
	params.Set("f", "json")
	reqURL := fmt.Sprintf("%s/rest/%s.view?%s", n.URL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed scanResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.SubsonicResponse.Status != "ok" {
		if e := parsed.SubsonicResponse.Error; e != nil {
			return nil, fmt.Errorf("server error %d: %s", e.Code, e.Message)
		}
		return nil, fmt.Errorf("server status %q", parsed.SubsonicResponse.Status)
	}
	return parsed.SubsonicResponse.ScanStatus, nil
}

// getSaltedPassword returns the salted password for navidrome
func getSaltedPassword(password string, salt string) string {
	hasher := md5.New()
	hasher.Write([]byte(password + salt))
	return hex.EncodeToString(hasher.Sum(nil))
}
