package service

import (
	"context"
	"time"

	"collection-search-service/internal/domain"
)

// fakeStore is a scripted domain.DocumentStore. Responses are matched by
// target index; scroll pages are consumed in order.
type fakeStore struct {
	searchResponses map[string]*domain.RawSearchResponse
	searchErr       error
	searchRequests  []*domain.SearchRequest

	getDoc domain.Document
	getErr error

	scrollPages []*domain.RawSearchResponse
	scrollCalls int
}

func (f *fakeStore) Search(_ context.Context, req *domain.SearchRequest) (*domain.RawSearchResponse, error) {
	f.searchRequests = append(f.searchRequests, req)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if resp, ok := f.searchResponses[req.Indices[0]]; ok {
		return resp, nil
	}
	return &domain.RawSearchResponse{}, nil
}

func (f *fakeStore) Get(_ context.Context, _, _ string) (domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getDoc, nil
}

func (f *fakeStore) OpenScroll(_ context.Context, req *domain.SearchRequest, _ time.Duration) (*domain.RawSearchResponse, error) {
	f.searchRequests = append(f.searchRequests, req)
	return f.nextScrollPage()
}

func (f *fakeStore) ContinueScroll(_ context.Context, _ string, _ time.Duration) (*domain.RawSearchResponse, error) {
	return f.nextScrollPage()
}

func (f *fakeStore) nextScrollPage() (*domain.RawSearchResponse, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.scrollCalls >= len(f.scrollPages) {
		return &domain.RawSearchResponse{}, nil
	}
	page := f.scrollPages[f.scrollCalls]
	f.scrollCalls++
	return page, nil
}

// memoryCache is an in-process domain.Cache for tests.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	return m.entries[key], nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func artHit(id string, source map[string]any) domain.RawHit {
	return domain.RawHit{ID: id, Index: domain.IndexArt, Source: source}
}

func searchResponse(total int, hits ...domain.RawHit) *domain.RawSearchResponse {
	return &domain.RawSearchResponse{
		Hits: domain.RawHits{
			Total: domain.TotalHits{Value: total},
			Hits:  hits,
		},
	}
}
