package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL matches the bridge service's default listen address.
const DefaultBaseURL = "http://127.0.0.1:8001/bridge"

// Endpoint paths under the configured base URL.
const (
	capturePath = "/capture_tap"
	stopPath    = "/final_screenshot"
)

// defaultTimeout bounds one round-trip. The bridge itself waits for the
// device action plus the post-action delay, so this is generous.
const defaultTimeout = 30 * time.Second

// Client posts action requests to the bridge service. A nil HTTPClient uses
// a default with a 30s timeout.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL ("" uses DefaultBaseURL).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

// Send performs exactly one capture_tap POST. The outcome is three-way:
// Success when the bridge reports ok, Failure when it answers anything else,
// NetworkError when the request never completes. No retry is attempted.
func (c *Client) Send(ctx context.Context, req *ActionRequest) Outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: fmt.Sprintf("encode request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+capturePath, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: err.Error()}
	}

	var parsed Response
	decodeErr := json.Unmarshal(data, &parsed)

	// A non-2xx status is a failure even if the body claims ok.
	if !successStatus(resp.StatusCode) || decodeErr != nil || !parsed.OK {
		return Outcome{Kind: KindFailure, Reason: failureReason(resp.StatusCode, parsed.Error)}
	}
	return Outcome{
		Kind:          KindSuccess,
		ElemID:        parsed.ElemID,
		Center:        parsed.Center,
		CaptureTiming: parsed.CaptureTiming,
	}
}

// Stop performs the independent zero-body final_screenshot POST.
func (c *Client) Stop(ctx context.Context) Outcome {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+stopPath, nil)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: err.Error()}
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Reason: err.Error()}
	}

	var parsed StopResponse
	decodeErr := json.Unmarshal(data, &parsed)

	if !successStatus(resp.StatusCode) || decodeErr != nil || !parsed.OK {
		return Outcome{Kind: KindFailure, Reason: failureReason(resp.StatusCode, parsed.Error)}
	}
	return Outcome{
		Kind:   KindSuccess,
		ElemID: parsed.ElemID,
		File:   parsed.File,
	}
}

func successStatus(code int) bool {
	return code >= 200 && code < 300
}

// failureReason prefers the bridge's own error message; falls back to the
// HTTP status when the body carried none.
func failureReason(status int, errMsg string) string {
	if errMsg != "" {
		return errMsg
	}
	return fmt.Sprintf("bridge returned HTTP %d", status)
}
