package domain

import "encoding/json"

// RawSearchResponse is the document store's wire response, decoded as-is.
// ResultShaper in the service layer turns it into a SearchResult.
type RawSearchResponse struct {
	ScrollID     string                    `json:"_scroll_id,omitempty"`
	Hits         RawHits                   `json:"hits"`
	Aggregations map[string]RawAggregation `json:"aggregations,omitempty"`
}

// RawHits holds the matched documents and the total count.
type RawHits struct {
	Total TotalHits `json:"total"`
	Hits  []RawHit  `json:"hits"`
}

// RawHit is a single matched document before projection.
type RawHit struct {
	ID     string         `json:"_id"`
	Index  string         `json:"_index"`
	Source map[string]any `json:"_source"`
}

// Document flattens the hit into a projected Document: internal id and
// index name are always present, alongside every stored field.
func (h RawHit) Document() Document {
	doc := make(Document, len(h.Source)+2)
	for k, v := range h.Source {
		doc[k] = v
	}
	doc[DocFieldID] = h.ID
	doc[DocFieldIndex] = h.Index
	return doc
}

// RawAggregation holds the buckets of one aggregation.
type RawAggregation struct {
	Buckets []Bucket `json:"buckets"`
}

// TotalHits normalizes the store's total count, which arrives either as a
// bare integer or as a capped {"value": N, "relation": "gte"} structure.
type TotalHits struct {
	Value    int    `json:"value"`
	Relation string `json:"relation,omitempty"`
}

// UnmarshalJSON accepts both total-count encodings.
func (t *TotalHits) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		t.Value = n
		t.Relation = ""
		return nil
	}

	type totalHits TotalHits
	var obj totalHits
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = TotalHits(obj)
	return nil
}
