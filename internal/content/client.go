// Package content is a small client for the CMS content API.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PratikDhanave/sponsorship-service/internal/config"
	"github.com/PratikDhanave/sponsorship-service/internal/models"
)

const defaultTimeout = 30 * time.Second

// Batch is one fetched page of person records.
type Batch struct {
	// Present is false when the response had no collection field at all.
	Present bool
	Records []models.PersonRecord
	// Requested is the page size that was asked for.
	Requested int
	// Total is the collection size reported by the API, or -1 if not reported.
	Total int
}

// Truncated reports whether more records may exist beyond this batch.
func (b Batch) Truncated() bool {
	if b.Total >= 0 {
		return b.Total > len(b.Records)
	}
	return b.Requested > 0 && len(b.Records) == b.Requested
}

// Client fetches collections from the content API.
type Client struct {
	baseURL    string
	collection string
	token      string
	http       *http.Client
}

// NewClient creates a content API client from config.
func NewClient(cfg config.ContentConfig, httpClient *http.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		collection: strings.Trim(cfg.Collection, "/"),
		token:      cfg.Token,
		http:       httpClient,
	}, nil
}

// CollectionURL returns the URL used to fetch one page of pageSize records.
func (c *Client) CollectionURL(pageSize int) string {
	q := url.Values{}
	q.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	return c.baseURL + "/api/" + c.collection + "?" + q.Encode()
}

// FetchPersons issues a single GET for up to pageSize records.
// Every failure is returned as *FetchError.
func (c *Client) FetchPersons(ctx context.Context, pageSize int) (Batch, error) {
	target := c.CollectionURL(pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Batch{}, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Batch{}, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Batch{}, &FetchError{
			URL:    target,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var envelope models.CollectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Batch{}, &FetchError{URL: target, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	batch := Batch{Requested: pageSize, Total: -1}
	if envelope.Meta != nil && envelope.Meta.Pagination != nil {
		batch.Total = envelope.Meta.Pagination.Total
	}
	if envelope.Data == nil {
		return batch, nil
	}

	batch.Present = true
	batch.Records = make([]models.PersonRecord, 0, len(*envelope.Data))
	for i, item := range *envelope.Data {
		rec, err := item.Record()
		if err != nil {
			return Batch{}, &FetchError{URL: target, Status: resp.StatusCode, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch, nil
}

// FetchError reports a failure to reach the content API or to read its response.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
