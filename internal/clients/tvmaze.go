package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cinetech/internal/domain"
)

// Wire types for the TVMaze search endpoint. The schema is fixed and
// unversioned; nullable fields map to pointers.
type searchResult struct {
	Show show `json:"show"`
}

type show struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Premiered string   `json:"premiered"`
	Runtime   *int     `json:"runtime"`
	Rating    rating   `json:"rating"`
	Image     *image   `json:"image"`
}

type rating struct {
	Average *float64 `json:"average"`
}

type image struct {
	Medium string `json:"medium"`
}

type tvmazeClient struct {
	baseURL string
	client  *http.Client
}

func NewTVMazeClient(baseURL string, timeout time.Duration) domain.ShowSearcher {
	return &tvmazeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *tvmazeClient) Search(ctx context.Context, query string) ([]domain.ShowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/search/shows?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return convertResults(results), nil
}

func convertResults(results []searchResult) []domain.ShowRecord {
	records := make([]domain.ShowRecord, 0, len(results))
	for _, result := range results {
		record := domain.ShowRecord{
			Name:      result.Show.Name,
			Genres:    result.Show.Genres,
			Premiered: result.Show.Premiered,
			Runtime:   result.Show.Runtime,
			Rating:    result.Show.Rating.Average,
		}
		if result.Show.Image != nil {
			record.Poster = result.Show.Image.Medium
		}
		records = append(records, record)
	}
	return records
}
