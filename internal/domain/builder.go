package domain

// SearchAggSize caps each terms aggregation at 20 buckets.
const SearchAggSize = 20

// Full-text match fields with their relative weights. Boosted keywords
// outrank canonical names, which outrank titles, which outrank the generic
// description and search text. The art index gets a wider list covering
// accession numbers, constituents, exhibitions and medium.
var artMatchFields = []string{
	"boostedKeywords^20",
	"primaryConstituent.canonicalName.search^6",
	"title.search^4",
	"keywords^4",
	"description",
	"searchText",
	"accessionNumber",
	"constituents.name.search",
	"exhibitions.search",
	"medium.search",
}

var defaultMatchFields = []string{
	"boostedKeywords^20",
	"primaryConstituent.canonicalName.search^4",
	"title.search^2",
	"keywords^2",
	"description",
	"searchText",
}

// crossIndexBoost ranks time-sensitive content above static catalog items
// when searching across all indices.
var crossIndexBoost = []map[string]float64{
	{IndexNews: 1.5},
	{IndexEvents: 1.5},
	{IndexArt: 1},
}

// BuildSearchRequest assembles the structured query for sanitized params.
// The request always carries at least one must clause, a deterministic sort
// and exact pagination offsets, so pagination is stable for any input.
// This function performs no I/O and cannot fail; malformed params have
// already been neutralized by SanitizeSearchParams.
func BuildSearchRequest(params SearchParams, caps *Capabilities) *SearchRequest {
	req := &SearchRequest{
		Indices:        StoreIndices(params),
		From:           (params.PageNumber - 1) * params.ResultsPerPage,
		Size:           params.ResultsPerPage,
		TrackTotalHits: true,
	}

	if params.Query != "" {
		req.AddMust(Clause{MultiMatch: &MultiMatchQuery{
			Query:    params.Query,
			Type:     "cross_fields",
			Operator: "and",
			Fields:   matchFields(params.Index),
		}})
	} else {
		// The query must never be clause-less.
		req.AddMust(Clause{MatchAll: &MatchAllQuery{}})
	}

	if params.Index == DefaultIndex {
		req.IndicesBoost = crossIndexBoost
	}

	addDateRange(req, params)
	addFilterTerms(req, params, caps)
	addAggs(req, params.Index, caps)
	applySort(req, params)

	// Color similarity is itself the ranking signal, so it overrides
	// whatever sort was chosen above.
	if params.Index == IndexArt && params.HexColor != "" {
		AddColorScore(req, params.HexColor)
	}

	return req
}

func matchFields(index string) []string {
	if index == IndexArt {
		return artMatchFields
	}
	return defaultMatchFields
}

// addDateRange filters by year range. With both bounds present, a document
// matches when its startYear OR its endYear falls inside the window: ranges
// that partially overlap the query window still match.
func addDateRange(req *SearchRequest, params SearchParams) {
	switch {
	case params.StartYear != nil && params.EndYear != nil:
		req.AddFilter(Clause{Range: map[string]RangeQuery{
			"startYear": {GTE: params.StartYear, LTE: params.EndYear},
		}})
		req.AddFilter(Clause{Range: map[string]RangeQuery{
			"endYear": {GTE: params.StartYear, LTE: params.EndYear},
		}})
	case params.StartYear != nil:
		req.AddFilter(Clause{Range: map[string]RangeQuery{
			"startYear": {GTE: params.StartYear},
		}})
	case params.EndYear != nil:
		req.AddFilter(Clause{Range: map[string]RangeQuery{
			"endYear": {LTE: params.EndYear},
		}})
	}
}

// addFilterTerms walks the index's declared filter fields in order. The
// three boolean pseudo-filters get specialized handling; everything else is
// an exact term filter fed from aggFilters.
func addFilterTerms(req *SearchRequest, params SearchParams, caps *Capabilities) {
	for _, field := range caps.FilterFields(params.Index) {
		switch field {
		case FilterOnView:
			if params.OnView {
				req.AddFilterTerm("onView", true)
			}
		case FilterHasPhoto:
			if params.HasPhoto {
				req.AddFilterExists("image.url")
			}
		case FilterUnrestricted:
			if params.IsUnrestricted {
				req.AddFilterTerm("copyrightRestricted", true)
			}
		default:
			if v := params.AggFilters[field]; v != "" {
				req.AddFilterTerm(field, v)
			}
		}
	}
}

func addAggs(req *SearchRequest, index string, caps *Capabilities) {
	fields := caps.AggFields(index)
	if len(fields) == 0 {
		return
	}
	aggs := make(map[string]Aggregation, len(fields))
	for _, field := range fields {
		aggs[field] = Aggregation{Terms: &TermsAggregation{
			Field: field,
			Size:  SearchAggSize,
		}}
	}
	req.Aggs = aggs
}

// applySort uses the caller's explicit sort when present, otherwise an
// index-specific default multi-key sort so that ordering is always total
// and pagination stays stable.
func applySort(req *SearchRequest, params SearchParams) {
	if params.SortField != "" && params.SortOrder != "" {
		req.Sort = []SortClause{FieldSort(params.SortField, params.SortOrder)}
		return
	}
	if params.Index == IndexArt {
		req.Sort = []SortClause{
			FieldSort("sortPriority", SortOrderDesc),
			FieldSort("startYear", SortOrderDesc),
		}
		return
	}
	req.Sort = []SortClause{
		FieldSort("sortPriority", SortOrderDesc),
		FieldSort("startYear", SortOrderDesc),
		FieldSort("date", SortOrderDesc),
	}
}
