package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/petdohod/workshop-api/internal/domain"
)

const (
	workshopListKey = "workshops:active"
	workshopListTTL = 60 * time.Second
)

// WorkshopCache keeps the public workshop listing in Redis for a short TTL.
// The landing page hammers this endpoint; the data changes only on admin
// writes, which invalidate the key.
type WorkshopCache struct {
	client *Client
}

// NewWorkshopCache creates a new workshop listing cache
func NewWorkshopCache(client *Client) *WorkshopCache {
	return &WorkshopCache{client: client}
}

// Get retrieves the cached listing. A miss returns (nil, nil).
func (c *WorkshopCache) Get(ctx context.Context) ([]domain.WorkshopListing, error) {
	data, err := c.client.rdb.Get(ctx, workshopListKey).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var listings []domain.WorkshopListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached workshops: %w", err)
	}

	return listings, nil
}

// Set caches the listing.
func (c *WorkshopCache) Set(ctx context.Context, listings []domain.WorkshopListing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to marshal workshops: %w", err)
	}

	return c.client.rdb.Set(ctx, workshopListKey, data, workshopListTTL).Err()
}

// Invalidate drops the cached listing after an admin write.
func (c *WorkshopCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, workshopListKey).Err()
}
