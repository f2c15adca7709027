// Package nowcapital is the HTTP client for the NowCapital calculation
// service. All financial modeling happens on the far side of this client;
// nothing here computes a dollar amount.
package nowcapital

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

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
	"github.com/nowcapital/retirement-mcp/planner/payload"
)

const maxResponseSizeBytes = 4 << 20

// Per-endpoint call budgets. The point estimate is quick; the detailed plan
// and submissions get a little more room.
const (
	maxSpendTimeout   = 10 * time.Second
	yearlyPlanTimeout = 15 * time.Second
	submitTimeout     = 15 * time.Second
	pollTimeout       = 10 * time.Second
)

type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL"`
	Timeout    time.Duration `split_words:"true" default:"15s"`
}

// Option customizes a Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client issues single-shot authenticated calls. A missing base URL is not a
// construction error: it surfaces as ErrMissingBaseURL on the first call so
// the tool layer can report it as a structured result.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// MaxSpendResult is the point-estimate response.
type MaxSpendResult struct {
	MaxSpendMonthly float64 `json:"max_spend_monthly"`
}

// YearlyPlanResult adds the per-person year-by-year tables.
type YearlyPlanResult struct {
	MaxSpendMonthly   float64           `json:"max_spend_monthly"`
	Person1YearlyData []json.RawMessage `json:"person1_yearly_data"`
	Person2YearlyData []json.RawMessage `json:"person2_yearly_data"`
}

func (c *Client) CalculateMaxSpend(ctx context.Context, apiKey string, doc *payload.Document) (MaxSpendResult, error) {
	ctx, cancel := context.WithTimeout(ctx, maxSpendTimeout)
	defer cancel()

	var out MaxSpendResult
	if err := c.postJSON(ctx, "/calculate-max-spend", apiKey, doc, &out); err != nil {
		return MaxSpendResult{}, err
	}
	return out, nil
}

func (c *Client) CalculateMaxSpendWithYearlyData(ctx context.Context, apiKey string, doc *payload.Document) (YearlyPlanResult, error) {
	ctx, cancel := context.WithTimeout(ctx, yearlyPlanTimeout)
	defer cancel()

	var out YearlyPlanResult
	if err := c.postJSON(ctx, "/calculate-max-spend-with-yearly-data", apiKey, doc, &out); err != nil {
		return YearlyPlanResult{}, err
	}
	return out, nil
}

// SubmitMonteCarlo starts a risk simulation and returns the opaque job
// identifier the status and result endpoints are keyed by.
func (c *Client) SubmitMonteCarlo(ctx context.Context, apiKey string, doc *payload.MonteCarloDocument) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	var out struct {
		TaskID string `json:"task_id"`
	}
	if err := c.postJSON(ctx, "/monte-carlo", apiKey, doc, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.TaskID) == "" {
		return "", fmt.Errorf("%w: submission returned no task_id", contractx.ErrBackend)
	}
	return out.TaskID, nil
}

func (c *Client) SimulationStatus(ctx context.Context, apiKey, jobID string) (contractx.SimulationStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	raw, err := c.do(ctx, http.MethodGet, "/simulations/status/"+url.PathEscape(jobID), apiKey, nil)
	if err != nil {
		return contractx.SimulationStatus{}, err
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return contractx.SimulationStatus{}, fmt.Errorf("%w: decode response: %v", contractx.ErrBackend, err)
	}
	return contractx.SimulationStatus{Status: out.Status, Raw: raw}, nil
}

// SimulationResult fetches the result body for a job. The body may be final
// data or an intermediate orchestrator marker; both come back in Raw with
// the marker fields lifted out for the caller to inspect.
func (c *Client) SimulationResult(ctx context.Context, apiKey, jobID string) (contractx.SimulationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	raw, err := c.do(ctx, http.MethodGet, "/simulations/result/"+url.PathEscape(jobID), apiKey, nil)
	if err != nil {
		return contractx.SimulationResult{}, err
	}

	var marker struct {
		Status   string `json:"status"`
		ResultID string `json:"result_id"`
	}
	// Non-object result bodies are legal; the marker probe just comes up empty.
	_ = json.Unmarshal(raw, &marker)

	return contractx.SimulationResult{
		Status:   marker.Status,
		ResultID: marker.ResultID,
		Raw:      raw,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path, apiKey string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, path, apiKey, encoded)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", contractx.ErrBackend, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, apiKey string, body []byte) ([]byte, error) {
	if c.baseURL == "" {
		return nil, contractx.ErrMissingBaseURL
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, contractx.ErrMissingAPIKey
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", contractx.ErrBackend, err)
	}

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status=%d", contractx.ErrAccessDenied, resp.StatusCode)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status=%d body=%s", contractx.ErrBackend, resp.StatusCode, string(raw))
	}

	return raw, nil
}
