package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rfeldman/wedsite/internal/models"
)

// APIError is a non-2xx response from the registry API, carrying the
// server's human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry api: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the registry API and keeps an optimistic item cache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
	now     func() time.Time
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
// httpClient may be nil, in which case a client with a 10s timeout is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		now:     time.Now,
	}
}

// Items returns the registry collection, from cache when valid, otherwise
// after a refetch.
func (c *Client) Items(ctx context.Context) ([]models.RegistryItem, error) {
	if items, valid := c.cache.Items(); valid {
		return items, nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches the full collection from the server and replaces the cache.
func (c *Client) Refresh(ctx context.Context) ([]models.RegistryItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/registry/items", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching registry items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var items []models.RegistryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding registry items: %w", err)
	}
	c.cache.Set(items)
	return items, nil
}

// Contribute sends a contribution for itemID. The cached item is updated
// optimistically before the request goes out; if the request fails the
// snapshot is restored so callers never keep seeing a contribution the
// server refused. Either way the cache is reconciled against server truth
// before returning.
func (c *Client) Contribute(ctx context.Context, itemID, name string, amount float64) error {
	snapshot := c.cache.Snapshot()
	c.cache.ApplyContribution(itemID, name, amount, c.now())

	err := c.postContribution(ctx, itemID, name, amount)
	if err != nil {
		c.cache.Restore(snapshot)
	}

	// The optimistic value is provisional even on success: the server's
	// transaction decides timestamps and the final total.
	if _, refreshErr := c.Refresh(ctx); refreshErr != nil {
		c.cache.Invalidate()
	}
	return err
}

func (c *Client) postContribution(ctx context.Context, itemID, name string, amount float64) error {
	body, err := json.Marshal(map[string]any{
		"itemId": itemID,
		"name":   name,
		"amount": amount,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/registry/contribute", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending contribution: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// DeleteItem removes an item. There is no optimistic removal: the cache is
// only invalidated once the server confirms the delete, and a failed delete
// leaves the cache untouched so the error can be surfaced next to intact data.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/registry/items/"+itemID, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	c.cache.Invalidate()
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}
