package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"collection-search-service/internal/domain"
)

// DocumentService handles point lookups and similar-item recommendations.
type DocumentService struct {
	store  domain.DocumentStore
	logger *zap.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(store domain.DocumentStore, logger *zap.Logger) *DocumentService {
	return &DocumentService{store: store, logger: logger}
}

// GetWithSimilar retrieves a document by index and id, and for artworks
// also the similar items. A missing document surfaces domain.ErrNotFound;
// a similar-lookup failure degrades to an absent Similar list rather than
// failing the primary result.
func (s *DocumentService) GetWithSimilar(ctx context.Context, index, id string) (*domain.DocumentResult, error) {
	doc, err := s.store.Get(ctx, index, id)
	if err != nil {
		return nil, err
	}

	result := &domain.DocumentResult{Data: doc}
	if index == domain.IndexArt {
		similar, err := s.Similar(ctx, doc, true)
		if err != nil {
			s.logger.Warn("similar lookup failed",
				zap.String("id", id),
				zap.Error(err),
			)
		} else {
			result.Similar = similar
		}
	}
	return result, nil
}

// Similar returns items similar to the reference document, excluding the
// document itself. A reference without an id yields an empty result.
func (s *DocumentService) Similar(ctx context.Context, doc domain.Document, requirePhoto bool) ([]domain.Document, error) {
	req := domain.BuildSimilarRequest(doc, requirePhoto)
	if req == nil {
		return []domain.Document{}, nil
	}

	resp, err := s.store.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching similar items: %w", err)
	}

	similar := make([]domain.Document, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		similar = append(similar, hit.Document())
	}
	return similar, nil
}

// SimilarByID looks up an artwork and returns its similar items. An
// unknown id yields an empty result, not an error.
func (s *DocumentService) SimilarByID(ctx context.Context, id string, requirePhoto bool) ([]domain.Document, error) {
	if id == "" {
		return []domain.Document{}, nil
	}
	doc, err := s.store.Get(ctx, domain.IndexArt, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Document{}, nil
		}
		return nil, err
	}
	return s.Similar(ctx, doc, requirePhoto)
}
