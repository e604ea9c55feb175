package service

import (
	"context"

	"go.uber.org/zap"

	"collection-search-service/internal/domain"
)

// TermService resolves reconciled vocabulary terms for suggestion and
// correction. Terms are a non-critical enhancement: every store failure is
// logged and surfaced as an empty result, never propagated.
type TermService struct {
	store  domain.DocumentStore
	logger *zap.Logger
}

// NewTermService creates a new TermService.
func NewTermService(store domain.DocumentStore, logger *zap.Logger) *TermService {
	return &TermService{store: store, logger: logger}
}

// ResolveTerm looks up the canonical term record for an exact field+value
// match. Returns nil when there is no match or the lookup fails.
func (s *TermService) ResolveTerm(ctx context.Context, field, value string) *domain.Term {
	if field == "" || value == "" {
		return nil
	}

	resp, err := s.store.Search(ctx, domain.BuildTermLookup(field, value))
	if err != nil {
		s.logger.Warn("term lookup failed",
			zap.String("field", field),
			zap.String("value", value),
			zap.Error(err),
		)
		return nil
	}
	if len(resp.Hits.Hits) == 0 {
		return nil
	}

	term, err := domain.TermFromSource(resp.Hits.Hits[0].Source)
	if err != nil {
		s.logger.Warn("decoding term failed", zap.Error(err))
		return nil
	}
	return &term
}

// SuggestTerms returns fuzzy term matches for a query, for "did you mean"
// style correction. Failures degrade to an empty slice.
func (s *TermService) SuggestTerms(ctx context.Context, query string, size int) []domain.Term {
	if query == "" {
		return nil
	}

	resp, err := s.store.Search(ctx, domain.BuildTermsSearch(query, size))
	if err != nil {
		s.logger.Warn("terms search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return termsFromHits(resp.Hits.Hits, s.logger)
}

// Suggest returns search-as-you-type term suggestions for a prefix.
// Failures degrade to an empty slice.
func (s *TermService) Suggest(ctx context.Context, prefix string) []domain.Term {
	if prefix == "" {
		return nil
	}

	resp, err := s.store.Search(ctx, domain.BuildTermSuggest(prefix))
	if err != nil {
		s.logger.Warn("suggest failed", zap.String("prefix", prefix), zap.Error(err))
		return nil
	}
	return termsFromHits(resp.Hits.Hits, s.logger)
}

func termsFromHits(hits []domain.RawHit, logger *zap.Logger) []domain.Term {
	terms := make([]domain.Term, 0, len(hits))
	for _, hit := range hits {
		term, err := domain.TermFromSource(hit.Source)
		if err != nil {
			logger.Warn("skipping malformed term", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil
	}
	return terms
}
