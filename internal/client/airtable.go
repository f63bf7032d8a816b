package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtside/standings-sync/internal/metrics"
	"github.com/courtside/standings-sync/internal/models"
)

// Client is the tabular data service API client
type Client struct {
	baseURL    string
	baseID     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new tabular data service client
func NewClient(baseURL, baseID, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		baseID:  baseID,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// listResponse is one page of table records plus the continuation token
// for the next page, absent on the final page.
type listResponse struct {
	Records []models.Record `json:"records"`
	Offset  string          `json:"offset"`
}

// List fetches the complete ordered record sequence for a table, following
// server-provided continuation offsets until none remain. Pagination is
// strictly sequential: each offset is only known once the previous page has
// resolved. Any failure aborts; there is no retry.
func (c *Client) List(ctx context.Context, table string) ([]models.Record, error) {
	var records []models.Record
	offset := ""

	for page := 1; ; page++ {
		resp, err := c.listPage(ctx, table, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list table %q: %w", table, err)
		}

		records = append(records, resp.Records...)
		log.Debug().
			Str("table", table).
			Int("page", page).
			Int("records", len(resp.Records)).
			Msg("Page fetched")

		if resp.Offset == "" {
			break
		}
		offset = resp.Offset
	}

	metrics.RecordFetch(table, len(records))
	return records, nil
}

// listPage performs a single GET against the table endpoint
func (c *Client) listPage(ctx context.Context, table, offset string) (*listResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	if offset != "" {
		q := req.URL.Query()
		q.Set("offset", offset)
		req.URL.RawQuery = q.Encode()
	}

	log.Debug().
		Str("url", endpoint).
		Str("table", table).
		Msg("Making API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(table, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPICall(table, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.RecordAPICall(table, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal records: %w", err)
	}

	return &parsed, nil
}
