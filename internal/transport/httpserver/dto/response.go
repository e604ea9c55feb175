package dto

import (
	"time"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/domain"
)

// SuggestResponse wraps term suggestions with a count.
type SuggestResponse struct {
	Data     []domain.Term  `json:"data"`
	Metadata SuggestSummary `json:"metadata"`
}

// SuggestSummary holds suggestion metadata.
type SuggestSummary struct {
	Count int `json:"count"`
}

// FromTerms converts a term slice to a SuggestResponse. A nil slice becomes
// an empty data array, never null.
func FromTerms(terms []domain.Term) SuggestResponse {
	if terms == nil {
		terms = []domain.Term{}
	}
	return SuggestResponse{
		Data:     terms,
		Metadata: SuggestSummary{Count: len(terms)},
	}
}

// StatsResponse represents per-index document counts.
type StatsResponse struct {
	Indices   []service.IndexStats `json:"indices"`
	Total     int                  `json:"total"`
	Timestamp string               `json:"timestamp"`
}

// FromStats converts index stats to a StatsResponse.
func FromStats(stats []service.IndexStats, at time.Time) StatsResponse {
	resp := StatsResponse{
		Indices:   stats,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
	for _, s := range stats {
		resp.Total += s.Count
	}
	return resp
}

// ExportResponse represents a bulk export of one index.
type ExportResponse struct {
	Index string            `json:"index"`
	Count int               `json:"count"`
	Data  []domain.Document `json:"data"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
