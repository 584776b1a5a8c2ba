package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luct/reporting-system/internal/api/metrics"
	"github.com/luct/reporting-system/internal/core/ports"
)

const summaryTTL = time.Minute

// SummaryCache stores the per-faculty ratings summary for a short TTL.
// The summary is a pure aggregation, so a stale entry is at most summaryTTL
// old and every miss recomputes from the store.
// Key format: ratings-summary:<faculty_id>
type SummaryCache struct {
	client *redis.Client
}

// NewSummaryCache creates a SummaryCache wrapping the given Redis client.
func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

// Get returns the cached summary for the faculty, or nil on a miss.
func (c *SummaryCache) Get(ctx context.Context, facultyID string) ([]ports.LecturerRatingSummary, error) {
	raw, err := c.client.Get(ctx, c.key(facultyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.SummaryCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("summary cache get: %w", err)
	}

	var items []ports.LecturerRatingSummary
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("summary cache decode: %w", err)
	}
	metrics.SummaryCacheTotal.WithLabelValues("hit").Inc()
	return items, nil
}

// Set stores the summary for the faculty (expires after summaryTTL).
func (c *SummaryCache) Set(ctx context.Context, facultyID string, items []ports.LecturerRatingSummary) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(facultyID), raw, summaryTTL).Err()
}

func (c *SummaryCache) key(facultyID string) string {
	return "ratings-summary:" + facultyID
}
