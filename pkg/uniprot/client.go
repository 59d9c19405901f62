package uniprot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yumyai/protprofile/logger"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://rest.uniprot.org/uniprotkb"
	DefaultDelay   = 500 * time.Millisecond
	DefaultTimeout = 30 * time.Second
)

// FetchError is returned for a non-2xx response.
type FetchError struct {
	Accession  string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("uniprot %s: status %d: %s", e.Accession, e.StatusCode, e.Body)
}

// Client fetches Swiss-Prot entries one at a time.
type Client struct {
	BaseURL string
	Delay   time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout, delay time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if delay < 0 {
		delay = 0
	}
	return &Client{
		BaseURL: baseURL,
		Delay:   delay,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and parses the flat-file entry for one accession.
func (c *Client) Fetch(ctx context.Context, accession string) (*Record, error) {
	accession = strings.TrimSpace(accession)
	if accession == "" {
		return nil, fmt.Errorf("empty accession")
	}
	fullURL := strings.TrimRight(c.BaseURL, "/") + "/" + url.PathEscape(accession) + ".txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", accession, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", accession, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Accession: accession, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	records, err := ParseSwissProt(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", accession, err)
	}
	if len(records) != 1 {
		return nil, fmt.Errorf("parse %s: expected one entry, got %d", accession, len(records))
	}
	rec := records[0]
	if rec.Accession == "" {
		rec.Accession = accession
	}
	return rec, nil
}

// FetchAll fetches the accessions in order, waiting Delay between requests.
// visit sees each record or its error; a per-record error does not stop the
// loop. Only context cancellation does.
func (c *Client) FetchAll(ctx context.Context, accessions []string, visit func(i int, accession string, rec *Record, err error)) error {
	for i, acc := range accessions {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("Fetching protein", zap.Int("n", i+1), zap.Int("total", len(accessions)), zap.String("accession", acc))

		rec, err := c.Fetch(ctx, acc)
		visit(i, acc, rec, err)

		if i < len(accessions)-1 && c.Delay > 0 {
			t := time.NewTimer(c.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	return nil
}
