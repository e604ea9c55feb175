// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

// SuggestRequest represents the query parameters for term suggestions.
type SuggestRequest struct {
	Query string `query:"q" validate:"required,min=1,max=100"`
}

// SimilarRequest represents the query parameters for similar-item lookups.
type SimilarRequest struct {
	HasPhoto bool `query:"hasPhoto"`
}
