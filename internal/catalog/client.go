package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Detail is the server-sourced product record, fetched fresh per checkout
// session and never persisted client-side.
type Detail struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Price     int    `json:"price"`
	Thumbnail string `json:"thumbnail"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: &http.Client{}}
}

// FetchDetail resolves one slug. The payload sits under data.data.
func (c *Client) FetchDetail(ctx context.Context, slug string) (*Detail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/cosmetic/"+slug, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cosmetic %s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cosmetic %s: unexpected status %d", slug, resp.StatusCode)
	}

	var body struct {
		Data struct {
			Data Detail `json:"data"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fetch cosmetic %s: decode: %w", slug, err)
	}
	return &body.Data.Data, nil
}

// FetchDetails fans out one request per distinct slug and joins on all of
// them. Any single failure fails the whole fetch; no partial results are
// retained. On success the details are keyed by product id.
func (c *Client) FetchDetails(ctx context.Context, slugs []string) (map[int]Detail, error) {
	seen := make(map[string]bool, len(slugs))
	distinct := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if !seen[s] {
			seen[s] = true
			distinct = append(distinct, s)
		}
	}

	var mu sync.Mutex
	byID := make(map[int]Detail, len(distinct))

	g, ctx := errgroup.WithContext(ctx)
	for _, slug := range distinct {
		slug := slug
		g.Go(func() error {
			d, err := c.FetchDetail(ctx, slug)
			if err != nil {
				return err
			}
			mu.Lock()
			byID[d.ID] = *d
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return byID, nil
}
