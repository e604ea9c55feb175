package domain

import (
	"encoding/json"
	"testing"
)

func TestTermsQueryMarshal(t *testing.T) {
	data, err := json.Marshal(TermsQuery{
		Field:  "classification",
		Values: []string{"Print"},
		Boost:  2,
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"boost":2,"classification":["Print"]}`
	if string(data) != expected {
		t.Errorf("marshal = %s, want %s", data, expected)
	}

	// Without a boost, only the field key appears.
	data, err = json.Marshal(TermsQuery{Field: "medium", Values: []string{"Oil"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"medium":["Oil"]}` {
		t.Errorf("marshal = %s", data)
	}
}

func TestSortClauseMarshal(t *testing.T) {
	tests := []struct {
		name     string
		clause   SortClause
		expected string
	}{
		{"score sort", ScoreSort(), `"_score"`},
		{"empty field is score", SortClause{}, `"_score"`},
		{"field sort", FieldSort("title", SortOrderAsc), `{"title":"asc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.clause)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.expected {
				t.Errorf("marshal = %s, want %s", data, tt.expected)
			}
		})
	}
}

func TestAddFilterTermSkipsZeroValues(t *testing.T) {
	req := &SearchRequest{}

	req.AddFilterTerm("classification", "")
	req.AddFilterTerm("onView", false)
	req.AddFilterTerm("departments", nil)

	if req.Query != nil {
		t.Error("zero values must not create filter clauses")
	}

	req.AddFilterTerm("classification", "Print")
	if len(req.Query.Bool.Filter) != 1 {
		t.Errorf("filter clauses = %d, want 1", len(req.Query.Bool.Filter))
	}
}

func TestSearchRequestMarshal(t *testing.T) {
	req := &SearchRequest{
		Indices:        []string{IndexArt},
		From:           0,
		Size:           24,
		TrackTotalHits: true,
	}
	req.AddMust(Clause{MatchAll: &MatchAllQuery{}})

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["Indices"]; ok {
		t.Error("indices must not appear in the request body")
	}
	if body["size"] != float64(24) {
		t.Errorf("size = %v", body["size"])
	}
	if body["track_total_hits"] != true {
		t.Error("track_total_hits missing")
	}

	query := body["query"].(map[string]any)["bool"].(map[string]any)
	if _, ok := query["must"]; !ok {
		t.Error("must clause missing")
	}
	if _, ok := query["should"]; ok {
		t.Error("empty clause lists must be omitted")
	}
}

func TestTotalHitsUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected int
	}{
		{"bare integer", `123`, 123},
		{"object form", `{"value":456,"relation":"eq"}`, 456},
		{"capped relation", `{"value":10000,"relation":"gte"}`, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total TotalHits
			if err := json.Unmarshal([]byte(tt.payload), &total); err != nil {
				t.Fatal(err)
			}
			if total.Value != tt.expected {
				t.Errorf("Value = %d, want %d", total.Value, tt.expected)
			}
		})
	}
}

func TestRawHitDocument(t *testing.T) {
	hit := RawHit{
		ID:     "doc-1",
		Index:  IndexArt,
		Source: map[string]any{"title": "Water Lilies"},
	}

	doc := hit.Document()
	if doc.ID() != "doc-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Index() != IndexArt {
		t.Errorf("Index() = %q", doc.Index())
	}
	if doc["title"] != "Water Lilies" {
		t.Errorf("title = %v", doc["title"])
	}
}
