package sensorapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
)

const periodicLayout = "2006-01-02 15:04:05"

// Client implements airquality.Source for the sensor network REST API.
type Client struct {
	name     string
	apiKey   string
	baseURL  string
	location *time.Location
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	logger   *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	APIKey   string
	Location *time.Location // station-local time zone; UTC when nil
	Backoff  *BackoffConfig
	Logger   *slog.Logger
}

// NewClient creates a sensor API client with retries and a circuit breaker.
func NewClient(client *http.Client, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	backoff := BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
	if opts.Backoff != nil {
		backoff = *opts.Backoff
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sensorapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		name:     "sensorapi",
		apiKey:   opts.APIKey,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		location: loc,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: cb,
		logger:  logger,
	}
}

// Name identifies the source in logs.
func (c *Client) Name() string {
	return c.name
}

// Fetch returns the readings of station for window.
func (c *Client) Fetch(ctx context.Context, station string, window airquality.Window) ([]airquality.Reading, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("sensor api base url is not configured")
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	u, err := c.endpoint(station, window)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", station, window.Kind, err)
	}
	defer resp.Body.Close()

	readings, err := decodeResponse(resp.Body, station, c.location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", station, window.Kind, err)
	}

	c.logger.Debug("sensor api fetch",
		"station", station,
		"window", window.Key(),
		"rows", len(readings),
		"elapsed", time.Since(start),
	)
	return readings, nil
}

// Latest returns the most recent reading of every station in the network.
// An upstream "no data" answer is an empty snapshot rather than an error.
func (c *Client) Latest(ctx context.Context) ([]airquality.Reading, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("sensor api base url is not configured")
	}

	start := time.Now()
	resp, err := c.get(ctx, c.baseURL+"/latest_hour")
	if err != nil {
		return nil, fmt.Errorf("fetch latest hour: %w", err)
	}
	defer resp.Body.Close()

	readings, err := decodeSnapshot(resp.Body, c.location)
	if err != nil {
		return nil, fmt.Errorf("fetch latest hour: %w", err)
	}

	c.logger.Debug("sensor api latest", "stations", len(readings), "elapsed", time.Since(start))
	return readings, nil
}

// Alerts returns the network alerts of the last two days, or of r when it
// is an explicit range.
func (c *Client) Alerts(ctx context.Context, r airquality.AlertRange) ([]airquality.Alert, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("sensor api base url is not configured")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	u := c.baseURL + "/alerts/last_two_days"
	if !r.Recent() {
		values := url.Values{}
		values.Set("start_datetime", r.Start.In(c.location).Format(periodicLayout))
		values.Set("end_datetime", r.End.In(c.location).Format(periodicLayout))
		u = c.baseURL + "/alerts/range?" + values.Encode()
	}

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	defer resp.Body.Close()

	alerts, err := decodeAlerts(resp.Body, c.location)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	return alerts, nil
}

// get issues an authenticated GET through the retry and breaker stack.
func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}
	return doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
}

func (c *Client) endpoint(station string, window airquality.Window) (string, error) {
	path := c.baseURL + "/" + string(window.Kind) + "/" + url.PathEscape(station)
	if window.Kind != airquality.WindowPeriodic {
		return path, nil
	}

	values := url.Values{}
	values.Set("start_datetime", window.Start.In(c.location).Truncate(time.Minute).Format(periodicLayout))
	values.Set("end_datetime", window.End.In(c.location).Truncate(time.Minute).Format(periodicLayout))
	values.Set("interval", strconv.Itoa(window.Interval))
	return path + "?" + values.Encode(), nil
}
