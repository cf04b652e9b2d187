package boxoffice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"summerpool/internal/logging"
	"summerpool/internal/services"
)

// DefaultUserAgent mimics a desktop browser. The charts reject bare clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Client loads both charts. Each location is either an http(s) URL or a
// path to a saved HTML snapshot.
type Client struct {
	grossLocation       string
	distributorLocation string
	userAgent           string
	httpClient          *http.Client
	logger              *slog.Logger
	stats               ParseStats
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with chart requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for fetch and parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a chart client.
func New(grossLocation, distributorLocation string, opts ...Option) (*Client, error) {
	grossLocation = strings.TrimSpace(grossLocation)
	if grossLocation == "" {
		return nil, services.Wrap(services.ErrConfiguration, "source", "init", "gross chart location required", nil)
	}
	distributorLocation = strings.TrimSpace(distributorLocation)
	if distributorLocation == "" {
		return nil, services.Wrap(services.ErrConfiguration, "source", "init", "distributor chart location required", nil)
	}
	client := &Client{
		grossLocation:       grossLocation,
		distributorLocation: distributorLocation,
		userAgent:           DefaultUserAgent,
		httpClient:          &http.Client{Timeout: 30 * time.Second},
		logger:              logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchMovieGrossRows loads and parses the cumulative domestic chart.
func (c *Client) FetchMovieGrossRows(ctx context.Context) ([]GrossRow, error) {
	body, err := c.open(ctx, c.grossLocation)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "source", "gross chart", "fetch failed", err)
	}
	defer body.Close()

	rows, stats, err := ParseGrossTable(body)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "source", "gross chart", "parse failed", err)
	}
	c.stats.Add(stats)
	c.logger.Info("gross chart parsed",
		logging.String("location", c.grossLocation),
		logging.Int("rows", len(rows)),
		logging.Int("skipped", stats.Skipped),
		logging.Int("bad_amounts", stats.BadAmounts),
	)
	return rows, nil
}

// FetchMovieDistributorRows loads and parses the yearly chart.
func (c *Client) FetchMovieDistributorRows(ctx context.Context) ([]MovieRecord, error) {
	body, err := c.open(ctx, c.distributorLocation)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "source", "distributor chart", "fetch failed", err)
	}
	defer body.Close()

	records, stats, err := ParseDistributorTable(body)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "source", "distributor chart", "parse failed", err)
	}
	c.stats.Add(stats)
	c.logger.Info("distributor chart parsed",
		logging.String("location", c.distributorLocation),
		logging.Int("rows", len(records)),
		logging.Int("skipped", stats.Skipped),
		logging.Int("bad_dates", stats.BadDates),
		logging.Int("bad_amounts", stats.BadAmounts),
	)
	return records, nil
}

// Stats returns the parse counters accumulated across fetches.
func (c *Client) Stats() ParseStats {
	return c.stats
}

func (c *Client) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !isRemote(location) {
		file, err := os.Open(strings.TrimPrefix(location, "file://"))
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("chart request returned %d (latency=%v)", resp.StatusCode, latency)
	}
	c.logger.Debug("chart fetched",
		logging.String("url", location),
		logging.Duration("latency", latency),
	)
	return resp.Body, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
