package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func sanitized(t *testing.T, index string, raw RawParams) SearchParams {
	t.Helper()
	return SanitizeSearchParams(index, raw, DefaultCapabilities())
}

func TestBuildSearchRequest_EmptyQueryMatchesAll(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{})
	req := BuildSearchRequest(params, DefaultCapabilities())

	musts := req.Query.Bool.Must
	if len(musts) != 1 {
		t.Fatalf("must clauses = %d, want 1", len(musts))
	}
	if musts[0].MatchAll == nil {
		t.Error("expected a match_all clause for an empty query")
	}
}

func TestBuildSearchRequest_QueryUsesWeightedFields(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{"q": "vermeer"})
	req := BuildSearchRequest(params, DefaultCapabilities())

	mm := req.Query.Bool.Must[0].MultiMatch
	if mm == nil {
		t.Fatal("expected a multi_match clause")
	}
	if mm.Type != "cross_fields" || mm.Operator != "and" {
		t.Errorf("multi_match type/operator = %q/%q, want cross_fields/and", mm.Type, mm.Operator)
	}
	if mm.Fields[0] != "boostedKeywords^20" {
		t.Errorf("first field = %q, want boostedKeywords^20", mm.Fields[0])
	}

	// Art searches a wider field list than the other indices.
	newsReq := BuildSearchRequest(sanitized(t, IndexNews, RawParams{"q": "vermeer"}), DefaultCapabilities())
	if len(mm.Fields) <= len(newsReq.Query.Bool.Must[0].MultiMatch.Fields) {
		t.Error("art match fields should be a superset of the default list")
	}
}

func TestBuildSearchRequest_Pagination(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{"p": "3", "size": "48"})
	req := BuildSearchRequest(params, DefaultCapabilities())

	if req.From != 96 {
		t.Errorf("From = %d, want 96", req.From)
	}
	if req.Size != 48 {
		t.Errorf("Size = %d, want 48", req.Size)
	}
	if !req.TrackTotalHits {
		t.Error("TrackTotalHits should always be set")
	}
}

func TestBuildSearchRequest_IndicesBoostOnlyForAll(t *testing.T) {
	all := BuildSearchRequest(sanitized(t, "all", RawParams{}), DefaultCapabilities())
	if len(all.IndicesBoost) != 3 {
		t.Fatalf("indices boost entries = %d, want 3", len(all.IndicesBoost))
	}
	if all.IndicesBoost[0][IndexNews] != 1.5 {
		t.Errorf("news boost = %v, want 1.5", all.IndicesBoost[0][IndexNews])
	}

	art := BuildSearchRequest(sanitized(t, IndexArt, RawParams{}), DefaultCapabilities())
	if art.IndicesBoost != nil {
		t.Error("single-index search should not carry indices boost")
	}
}

func TestBuildSearchRequest_DateRangeUnion(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{"startYear": "1600", "endYear": "1700"})
	req := BuildSearchRequest(params, DefaultCapabilities())

	filters := req.Query.Bool.Filter
	var startRange, endRange *RangeQuery
	for i := range filters {
		if r, ok := filters[i].Range["startYear"]; ok {
			startRange = &r
		}
		if r, ok := filters[i].Range["endYear"]; ok {
			endRange = &r
		}
	}
	if startRange == nil || endRange == nil {
		t.Fatal("expected range filters on both startYear and endYear")
	}
	// Either bound falling inside the window counts as a match, so both
	// fields are constrained to the full window.
	if *startRange.GTE != 1600 || *startRange.LTE != 1700 {
		t.Errorf("startYear range = [%d,%d], want [1600,1700]", *startRange.GTE, *startRange.LTE)
	}
	if *endRange.GTE != 1600 || *endRange.LTE != 1700 {
		t.Errorf("endYear range = [%d,%d], want [1600,1700]", *endRange.GTE, *endRange.LTE)
	}
}

func TestBuildSearchRequest_OpenEndedDateRange(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{"startYear": "1800"})
	req := BuildSearchRequest(params, DefaultCapabilities())

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.Contains(body, `"startYear":{"gte":1800}`) {
		t.Errorf("missing open-ended startYear range in %s", body)
	}
	if strings.Contains(body, `"lte"`) {
		t.Errorf("unexpected upper bound in %s", body)
	}
}

func TestBuildSearchRequest_BooleanFilters(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{
		"hasPhoto":       "true",
		"onView":         "true",
		"isUnrestricted": "true",
	})
	req := BuildSearchRequest(params, DefaultCapabilities())

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, want := range []string{
		`"exists":{"field":"image.url"}`,
		`"term":{"onView":true}`,
		`"term":{"copyrightRestricted":true}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s:\n%s", want, body)
		}
	}
}

func TestBuildSearchRequest_Aggregations(t *testing.T) {
	caps := DefaultCapabilities()
	req := BuildSearchRequest(sanitized(t, IndexArt, RawParams{}), caps)

	if len(req.Aggs) != len(caps.AggFields(IndexArt)) {
		t.Fatalf("agg count = %d, want %d", len(req.Aggs), len(caps.AggFields(IndexArt)))
	}
	agg, ok := req.Aggs["classification"]
	if !ok || agg.Terms == nil {
		t.Fatal("expected a classification terms aggregation")
	}
	if agg.Terms.Size != SearchAggSize {
		t.Errorf("agg size = %d, want %d", agg.Terms.Size, SearchAggSize)
	}
}

func TestBuildSearchRequest_DefaultSort(t *testing.T) {
	art := BuildSearchRequest(sanitized(t, IndexArt, RawParams{}), DefaultCapabilities())
	if len(art.Sort) != 2 || art.Sort[0].Field != "sortPriority" || art.Sort[1].Field != "startYear" {
		t.Errorf("art default sort = %v", art.Sort)
	}

	news := BuildSearchRequest(sanitized(t, IndexNews, RawParams{}), DefaultCapabilities())
	if len(news.Sort) != 3 || news.Sort[2].Field != "date" {
		t.Errorf("news default sort = %v", news.Sort)
	}
}

func TestBuildSearchRequest_ExplicitSort(t *testing.T) {
	params := sanitized(t, IndexArt, RawParams{"sf": "title", "so": "asc"})
	req := BuildSearchRequest(params, DefaultCapabilities())

	if len(req.Sort) != 1 || req.Sort[0].Field != "title" || req.Sort[0].Order != SortOrderAsc {
		t.Errorf("sort = %v, want single title asc", req.Sort)
	}

	data, err := json.Marshal(req.Sort)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"title":"asc"}]` {
		t.Errorf("sort JSON = %s", data)
	}
}

func TestBuildSearchRequest_FilterTermOrdering(t *testing.T) {
	// aggFilters apply as exact term filters.
	params := sanitized(t, IndexArt, RawParams{"medium": "Oil on canvas"})
	req := BuildSearchRequest(params, DefaultCapabilities())

	found := false
	for _, f := range req.Query.Bool.Filter {
		if f.Term != nil && f.Term["medium"] == "Oil on canvas" {
			found = true
		}
	}
	if !found {
		t.Error("expected a medium term filter")
	}
}
