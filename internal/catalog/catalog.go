package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rental-booking/internal/data/entity"

	"go.uber.org/zap"
)

// Catalog is the read-only view of the remote add-on list.
type Catalog interface {
	ListAddons(ctx context.Context) ([]entity.Addon, error)
}

type listAddonsResponse struct {
	Data []entity.Addon `json:"data"`
}

// HTTPCatalog fetches add-ons from the booking platform and caches the list
// briefly: pricing recomputes on every draft mutation and the catalog changes
// rarely.
type HTTPCatalog struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger

	mu        sync.Mutex
	cached    []entity.Addon
	fetchedAt time.Time
	ttl       time.Duration
}

func NewHTTPCatalog(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPCatalog {
	return &HTTPCatalog{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "addon-catalog")),
		ttl:     5 * time.Minute,
	}
}

func (c *HTTPCatalog) ListAddons(ctx context.Context) ([]entity.Addon, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		addons := c.cached
		c.mu.Unlock()
		return addons, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/addons", nil)
	if err != nil {
		return nil, fmt.Errorf("build addons request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch addons: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch addons: unexpected status %d", resp.StatusCode)
	}

	var payload listAddonsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode addons: %w", err)
	}

	c.mu.Lock()
	c.cached = payload.Data
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.log.Debug("Addon catalog refreshed", zap.Int("count", len(payload.Data)))
	return payload.Data, nil
}
