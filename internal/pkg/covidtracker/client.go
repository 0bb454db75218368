package covidtracker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/envirobot/envirobot/internal/pkg/constants"
)

const defaultBaseURL = "https://api.covid19tracker.ca"

// Report is one daily record from the statistics source. Counters are
// pointers because the upstream omits fields on some days; normalization
// fills them with zero.
type Report struct {
	Date            string `json:"date"`
	TotalCases      *int64 `json:"total_cases"`
	TotalFatalities *int64 `json:"total_fatalities"`
	TotalRecoveries *int64 `json:"total_recoveries"`
}

type reportsResponse struct {
	Province string   `json:"province"`
	Data     []Report `json:"data"`
}

// Client fetches time-ordered daily report series. An empty series for a
// valid code is not an error.
type Client interface {
	ProvinceReports(ctx context.Context, code string) ([]Report, error)
	NationalReports(ctx context.Context) ([]Report, error)
}

// Option configures the client.
type Option func(*httpClient)

func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given per-request timeout.
func NewClient(timeout time.Duration, opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ProvinceReports(ctx context.Context, code string) ([]Report, error) {
	return c.reports(ctx, fmt.Sprintf("%s/reports/province/%s", c.baseURL, strings.ToLower(code)))
}

func (c *httpClient) NationalReports(ctx context.Context) ([]Report, error) {
	return c.reports(ctx, c.baseURL+"/reports")
}

func (c *httpClient) reports(ctx context.Context, url string) ([]Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("covidtracker: create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("covidtracker: get %s: %w: %v", url, constants.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("covidtracker: read body: %w: %v", constants.ErrSourceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("covidtracker: get %s: %w: status %d", url, constants.ErrSourceUnavailable, resp.StatusCode)
	}

	var parsed reportsResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("covidtracker: decode reports: %w: %v", constants.ErrUpstreamMalformed, err)
	}

	return parsed.Data, nil
}
