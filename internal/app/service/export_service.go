package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"collection-search-service/internal/domain"
)

const (
	scrollKeepAlive = 30 * time.Second
	scrollBatchSize = 10000
)

// StatsCacheKey is the cache key the latest stats snapshot is published
// under. Shared between the background refresher and the stats endpoint.
const StatsCacheKey = "stats:latest"

// ExportService handles bulk document export and collection statistics.
type ExportService struct {
	store  domain.DocumentStore
	logger *zap.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(store domain.DocumentStore, logger *zap.Logger) *ExportService {
	return &ExportService{store: store, logger: logger}
}

// IndexStats holds the document count for a single index.
type IndexStats struct {
	Index string `json:"index"`
	Count int    `json:"count"`
}

// ExportAll streams every document of an index through the store's cursor
// API and returns the complete set. The cursor is paged sequentially until
// the cumulative hit count reaches the reported total or a page comes back
// empty.
func (s *ExportService) ExportAll(ctx context.Context, index string) ([]domain.Document, error) {
	if !domain.IsValidIndex(index) {
		return nil, fmt.Errorf("cannot export index %q", index)
	}

	req := &domain.SearchRequest{
		Indices: []string{index},
		Query:   &domain.Clause{MatchAll: &domain.MatchAllQuery{}},
		Size:    scrollBatchSize,
	}

	resp, err := s.store.OpenScroll(ctx, req, scrollKeepAlive)
	if err != nil {
		return nil, fmt.Errorf("opening export cursor: %w", err)
	}

	results := make([]domain.Document, 0, resp.Hits.Total.Value)
	for {
		for _, hit := range resp.Hits.Hits {
			results = append(results, hit.Document())
		}
		if len(results) >= resp.Hits.Total.Value || len(resp.Hits.Hits) == 0 {
			break
		}

		resp, err = s.store.ContinueScroll(ctx, resp.ScrollID, scrollKeepAlive)
		if err != nil {
			return nil, fmt.Errorf("continuing export cursor: %w", err)
		}
	}

	s.logger.Info("export completed",
		zap.String("index", index),
		zap.Int("documents", len(results)),
	)
	return results, nil
}

// Stats returns per-index document counts.
func (s *ExportService) Stats(ctx context.Context) ([]IndexStats, error) {
	stats := make([]IndexStats, 0, len(domain.AllIndices))
	for _, index := range domain.AllIndices {
		req := &domain.SearchRequest{
			Indices: []string{index},
			Query:   &domain.Clause{MatchAll: &domain.MatchAllQuery{}},
			Size:    0,
		}
		resp, err := s.store.Search(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("counting index %s: %w", index, err)
		}
		stats = append(stats, IndexStats{Index: index, Count: resp.Hits.Total.Value})
	}
	return stats, nil
}
