package jira

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// CachedAPI wraps the jira api with a caching layer for saved filter
// lookups. Filter definitions are stable, so caching them saves one api
// round-trip per metric per cycle. All other calls pass through.
type CachedAPI struct {
	api         API
	filterCache *lru.Cache
	ttl         time.Duration
}

var _ API = &CachedAPI{}

// NewCachedAPI creates new CachedAPI instance.
func NewCachedAPI(api API, size int, ttl time.Duration) (*CachedAPI, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	filterCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for filters: %w", err)
	}

	return &CachedAPI{
		api:         api,
		filterCache: filterCache,
		ttl:         ttl,
	}, nil
}

// FilterJQL returns the JQL query of a saved filter, cached.
func (c *CachedAPI) FilterJQL(ctx context.Context, filterID int) (string, error) {
	val, ok := c.filterCache.Get(filterID)
	if ok {
		entry := val.(filterCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.jql, nil
		}
	}

	jql, err := c.api.FilterJQL(ctx, filterID)
	if err != nil {
		return jql, err
	}

	c.filterCache.Add(filterID, filterCacheEntry{
		created: time.Now(),
		jql:     jql,
	})

	return jql, nil
}

// SearchTotal returns the number of issues matching given jql.
func (c *CachedAPI) SearchTotal(ctx context.Context, jql string) (int, error) {
	return c.api.SearchTotal(ctx, jql)
}

// SearchFieldSum sums a numeric issue field over all issues matching given jql.
func (c *CachedAPI) SearchFieldSum(ctx context.Context, jql string, fieldID string) (float64, error) {
	return c.api.SearchFieldSum(ctx, jql, fieldID)
}

// ClosedSprints returns all closed sprints of a board.
func (c *CachedAPI) ClosedSprints(ctx context.Context, boardID int64) ([]Sprint, error) {
	return c.api.ClosedSprints(ctx, boardID)
}

// SprintCompletedEstimate returns the completed estimate sum from the sprint report.
func (c *CachedAPI) SprintCompletedEstimate(ctx context.Context, boardID int64, sprintID int64) (float64, error) {
	return c.api.SprintCompletedEstimate(ctx, boardID, sprintID)
}

type filterCacheEntry struct {
	created time.Time
	jql     string
}
