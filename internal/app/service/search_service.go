// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"collection-search-service/internal/domain"
)

// SearchService handles the primary search path: sanitize, build, execute,
// shape, enrich.
type SearchService struct {
	store    domain.DocumentStore
	caps     *domain.Capabilities
	terms    *TermService
	cache    domain.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSearchService creates a new SearchService. cache may be nil to disable
// envelope caching.
func NewSearchService(
	store domain.DocumentStore,
	caps *domain.Capabilities,
	terms *TermService,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		store:    store,
		caps:     caps,
		terms:    terms,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Sanitize validates and normalizes raw query parameters for an index.
func (s *SearchService) Sanitize(index string, raw domain.RawParams) domain.SearchParams {
	return domain.SanitizeSearchParams(index, raw, s.caps)
}

// Search executes a search for sanitized params and returns the normalized
// envelope. A store failure propagates as an error; zero results is a valid
// empty envelope. Query-correction and filter-term enrichment are
// best-effort and never fail the search.
func (s *SearchService) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	cacheKey := searchCacheKey(params)
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	req := domain.BuildSearchRequest(params, s.caps)

	s.logger.Debug("searching",
		zap.String("index", params.Index),
		zap.String("query", params.Query),
		zap.Int("page", params.PageNumber),
		zap.Int("size", params.ResultsPerPage),
	)

	resp, err := s.store.Search(ctx, req)
	if err != nil {
		s.logger.Error("search failed", zap.String("index", params.Index), zap.Error(err))
		return nil, fmt.Errorf("executing search: %w", err)
	}

	result := shapeResponse(resp, params.ResultsPerPage)

	// Correction terms are only useful on an initial search, not on
	// paginated continuations.
	if len(params.Query) > domain.MinSearchQueryLength && params.PageNumber == 1 {
		if terms := s.terms.SuggestTerms(ctx, params.Query, domain.TermsPageSize); len(terms) > 0 {
			result.Terms = terms
		}
	}

	if term := s.filterTerm(ctx, params); term != nil {
		result.Filters = []domain.Term{*term}
	}

	s.storeResult(ctx, cacheKey, result)

	s.logger.Debug("search completed",
		zap.Int("count", result.Metadata.Count),
		zap.Int("hits", len(result.Data)),
	)

	return result, nil
}

// shapeResponse normalizes the raw store response into the envelope.
func shapeResponse(resp *domain.RawSearchResponse, pageSize int) *domain.SearchResult {
	result := &domain.SearchResult{
		Data:     make([]domain.Document, 0, len(resp.Hits.Hits)),
		Metadata: responseMetadata(resp, pageSize),
	}
	for _, hit := range resp.Hits.Hits {
		result.Data = append(result.Data, hit.Document())
	}

	// Fields with no bucket data stay absent; callers treat absence as
	// "no facet data", not as an empty facet.
	for field, agg := range resp.Aggregations {
		if len(agg.Buckets) == 0 {
			continue
		}
		if result.Options == nil {
			result.Options = domain.AggOptions{}
		}
		result.Options[field] = agg.Buckets
	}

	return result
}

func responseMetadata(resp *domain.RawSearchResponse, pageSize int) domain.SearchMetadata {
	count := resp.Hits.Total.Value
	pages := 0
	if count > 0 && pageSize > 0 {
		pages = int(math.Ceil(float64(count) / float64(pageSize)))
	}
	return domain.SearchMetadata{Count: count, Pages: pages}
}

// filterTerm resolves the canonical-name filter value to its full term
// record for display. Only the canonical creator-name filter is enriched.
func (s *SearchService) filterTerm(ctx context.Context, params domain.SearchParams) *domain.Term {
	const canonicalNameField = "primaryConstituent.canonicalName"

	for _, filter := range s.caps.FilterFields(params.Index) {
		if filter != canonicalNameField {
			continue
		}
		if value := params.AggFilters[filter]; value != "" {
			return s.terms.ResolveTerm(ctx, canonicalNameField, value)
		}
	}
	return nil
}

func (s *SearchService) cachedResult(ctx context.Context, key string) *domain.SearchResult {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("discarding malformed cached result", zap.Error(err))
		return nil
	}
	return &result
}

func (s *SearchService) storeResult(ctx context.Context, key string, result *domain.SearchResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Debug("caching search result failed", zap.Error(err))
	}
}

// searchCacheKey derives a stable cache key from the sanitized params.
// Sanitized params are fully populated, so identical searches produce
// identical keys.
func searchCacheKey(params domain.SearchParams) string {
	data, err := json.Marshal(params)
	if err != nil {
		return "search:" + params.Index + ":" + params.Query
	}
	return "search:" + string(data)
}
