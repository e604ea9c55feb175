package domain

// TermsIndex holds the reconciled vocabulary entries.
const TermsIndex = "terms"

const (
	// TermsPageSize is the number of fuzzy term matches returned.
	TermsPageSize = 12
	// MaxSuggestions caps search-as-you-type suggestions.
	MaxSuggestions = 10
	// MinSearchQueryLength gates query-correction lookups; shorter queries
	// produce too much noise to correct usefully.
	MinSearchQueryLength = 3
)

// BuildTermLookup builds an exact term lookup by field name and value.
func BuildTermLookup(field, value string) *SearchRequest {
	req := &SearchRequest{
		Indices: []string{TermsIndex},
		Size:    1,
	}
	req.AddMust(Clause{Match: map[string]any{"field": field}})
	req.AddMust(Clause{Match: map[string]any{"value": value}})
	return req
}

// BuildTermsSearch builds a fuzzy term search for "did you mean" style
// correction. The primary value field is weighted well above alternate
// spellings, and typo tolerance scales with input length.
func BuildTermsSearch(query string, size int) *SearchRequest {
	if size <= 0 {
		size = TermsPageSize
	}
	return &SearchRequest{
		Indices: []string{TermsIndex},
		From:    0,
		Size:    size,
		Query: &Clause{MultiMatch: &MultiMatchQuery{
			Query:     query,
			Fields:    []string{"value^3", "alternates"},
			Fuzziness: "AUTO:3,7",
		}},
	}
}

// BuildTermSuggest builds a search-as-you-type prefix query over the term
// value and its shingle subfields.
func BuildTermSuggest(prefix string) *SearchRequest {
	return &SearchRequest{
		Indices: []string{TermsIndex},
		Size:    MaxSuggestions,
		Source:  []string{"field", "value", "index"},
		Query: &Clause{MultiMatch: &MultiMatchQuery{
			Query: prefix,
			Type:  "bool_prefix",
			Fields: []string{
				"value.suggest",
				"value.suggest._2gram",
				"value.suggest._3gram",
			},
		}},
	}
}
