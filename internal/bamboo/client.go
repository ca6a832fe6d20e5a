// Package bamboo implements the remote HR provider client: a thin HTTP layer
// over the BambooHR-style directory and time-off endpoints that decodes wire
// JSON into the engine's domain types.
package bamboo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"teamcap/internal/capacity"
)

// DefaultTimeout bounds every provider request.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for non-2xx provider responses. The call is aborted;
// no body is interpreted.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d for %s", e.Code, e.URL)
}

// Config holds the settings needed to reach the provider.
type Config struct {
	// APIKey is the provider credential. It is passed through as HTTP basic
	// auth; managing or refreshing it is the caller's concern.
	APIKey string

	// Domain is the company subdomain on the provider.
	Domain string

	// BaseURL overrides the gateway URL derived from Domain. Used in tests.
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the remote provider. All calls are synchronous and bounded
// by the configured timeout.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a provider client from the given config.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://api.bamboohr.com/api/gateway.php/%s/v1", cfg.Domain)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	// The provider expects basic auth with the API key as user and any
	// password.
	token := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":x"))

	return &Client{
		baseURL:    baseURL,
		authHeader: "Basic " + token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// get performs a GET against path with the given query params and decodes the
// JSON response body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", u, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reaching provider at %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", u, err)
	}
	return nil
}

func rangeParams(start, end time.Time) url.Values {
	return url.Values{
		"start": []string{start.Format(capacity.DateLayout)},
		"end":   []string{end.Format(capacity.DateLayout)},
	}
}

// Directory fetches the full employee directory.
func (c *Client) Directory(ctx context.Context) ([]capacity.Employee, error) {
	var body directoryResponse
	if err := c.get(ctx, "/employees/directory", nil, &body); err != nil {
		return nil, err
	}

	employees := make([]capacity.Employee, 0, len(body.Employees))
	for _, emp := range body.Employees {
		if emp.ID == 0 {
			// No usable id; the record cannot be keyed anywhere downstream.
			continue
		}
		employees = append(employees, capacity.Employee{
			ID:          int64(emp.ID),
			FirstName:   emp.FirstName,
			LastName:    emp.LastName,
			DisplayName: emp.DisplayName,
			JobTitle:    emp.JobTitle,
			MobilePhone: emp.MobilePhone,
			PhotoURL:    emp.PhotoURL,
		})
	}
	return employees, nil
}

// TimeOffRequests fetches the time-off requests overlapping [start, end].
// Requires an API key with time-off access; without it the provider responds
// with a 403 which surfaces as a StatusError.
func (c *Client) TimeOffRequests(ctx context.Context, start, end time.Time) ([]capacity.TimeOffRequest, error) {
	var body []timeOffRequest
	if err := c.get(ctx, "/time_off/requests", rangeParams(start, end), &body); err != nil {
		return nil, err
	}

	requests := make([]capacity.TimeOffRequest, 0, len(body))
	for _, req := range body {
		startDate, err1 := capacity.ParseDate(req.Start)
		endDate, err2 := capacity.ParseDate(req.End)
		if err1 != nil || err2 != nil {
			// Unusable interval; skip the record rather than fail the batch.
			continue
		}
		requests = append(requests, capacity.TimeOffRequest{
			EmployeeID: int64(req.EmployeeID),
			Status:     req.Status.ID,
			Type:       req.Type,
			Start:      startDate,
			End:        endDate,
		})
	}
	return requests, nil
}

// WhosOut fetches the out-of-office feed for [start, end]. The feed needs no
// elevated access and includes company-wide holiday entries.
func (c *Client) WhosOut(ctx context.Context, start, end time.Time) ([]capacity.OutOfOffice, error) {
	var body []whosOutEntry
	if err := c.get(ctx, "/time_off/whos_out/", rangeParams(start, end), &body); err != nil {
		return nil, err
	}

	records := make([]capacity.OutOfOffice, 0, len(body))
	for _, entry := range body {
		startDate, err1 := capacity.ParseDate(entry.Start)
		endDate, err2 := capacity.ParseDate(entry.End)
		if err1 != nil || err2 != nil {
			continue
		}
		records = append(records, capacity.OutOfOffice{
			EmployeeID: int64(entry.EmployeeID),
			Type:       entry.Type,
			Start:      startDate,
			End:        endDate,
		})
	}
	return records, nil
}

// Compile-time check that Client implements capacity.Provider.
var _ capacity.Provider = (*Client)(nil)
