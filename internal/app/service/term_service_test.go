package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collection-search-service/internal/domain"
)

func termsStore(hits ...domain.RawHit) *fakeStore {
	return &fakeStore{
		searchResponses: map[string]*domain.RawSearchResponse{
			domain.TermsIndex: searchResponse(len(hits), hits...),
		},
	}
}

func termHit(field, value string) domain.RawHit {
	return domain.RawHit{
		ID:     value,
		Index:  domain.TermsIndex,
		Source: map[string]any{"field": field, "value": value},
	}
}

func TestResolveTerm(t *testing.T) {
	store := termsStore(termHit("primaryConstituent.canonicalName", "Claude Monet"))
	svc := NewTermService(store, zap.NewNop())

	term := svc.ResolveTerm(context.Background(), "primaryConstituent.canonicalName", "Claude Monet")
	require.NotNil(t, term)
	assert.Equal(t, "Claude Monet", term.Value)

	req := store.searchRequests[0]
	assert.Equal(t, []string{domain.TermsIndex}, req.Indices)
	assert.Equal(t, 1, req.Size)
}

func TestResolveTerm_EmptyInputs(t *testing.T) {
	store := &fakeStore{}
	svc := NewTermService(store, zap.NewNop())

	assert.Nil(t, svc.ResolveTerm(context.Background(), "", "Monet"))
	assert.Nil(t, svc.ResolveTerm(context.Background(), "field", ""))
	assert.Empty(t, store.searchRequests)
}

func TestResolveTerm_SwallowsStoreError(t *testing.T) {
	store := &fakeStore{searchErr: domain.ErrStoreUnavailable}
	svc := NewTermService(store, zap.NewNop())

	assert.Nil(t, svc.ResolveTerm(context.Background(), "field", "value"))
}

func TestResolveTerm_NoMatch(t *testing.T) {
	svc := NewTermService(termsStore(), zap.NewNop())

	assert.Nil(t, svc.ResolveTerm(context.Background(), "field", "value"))
}

func TestSuggestTerms(t *testing.T) {
	store := termsStore(
		termHit("primaryConstituent.canonicalName", "Claude Monet"),
		termHit("primaryConstituent.canonicalName", "Édouard Manet"),
	)
	svc := NewTermService(store, zap.NewNop())

	terms := svc.SuggestTerms(context.Background(), "monet", domain.TermsPageSize)
	require.Len(t, terms, 2)
	assert.Equal(t, "Claude Monet", terms[0].Value)
}

func TestSuggestTerms_SkipsMalformedRecords(t *testing.T) {
	store := termsStore(
		termHit("field", "good"),
		domain.RawHit{ID: "bad", Index: domain.TermsIndex, Source: map[string]any{"alternates": 7}},
	)
	svc := NewTermService(store, zap.NewNop())

	terms := svc.SuggestTerms(context.Background(), "query", 12)
	require.Len(t, terms, 1)
	assert.Equal(t, "good", terms[0].Value)
}

func TestSuggestTerms_ErrorIsEmpty(t *testing.T) {
	store := &fakeStore{searchErr: domain.ErrStoreUnavailable}
	svc := NewTermService(store, zap.NewNop())

	assert.Nil(t, svc.SuggestTerms(context.Background(), "monet", 12))
}

func TestSuggest(t *testing.T) {
	store := termsStore(termHit("primaryConstituent.canonicalName", "Claude Monet"))
	svc := NewTermService(store, zap.NewNop())

	terms := svc.Suggest(context.Background(), "mon")
	require.Len(t, terms, 1)

	req := store.searchRequests[0]
	assert.Equal(t, domain.MaxSuggestions, req.Size)

	assert.Nil(t, svc.Suggest(context.Background(), ""))
}
