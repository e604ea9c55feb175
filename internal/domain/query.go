package domain

import "encoding/json"

// Clause is a tagged-variant query node. Exactly one member should be set;
// the zero value marshals to an empty object and must not be sent to the
// store. Using a closed set of variants keeps builder steps type-checked
// instead of relying on loosely-shaped maps.
type Clause struct {
	Bool          *BoolQuery            `json:"bool,omitempty"`
	MultiMatch    *MultiMatchQuery      `json:"multi_match,omitempty"`
	Match         map[string]any        `json:"match,omitempty"`
	MatchAll      *MatchAllQuery        `json:"match_all,omitempty"`
	Term          map[string]any        `json:"term,omitempty"`
	Terms         *TermsQuery           `json:"terms,omitempty"`
	Range         map[string]RangeQuery `json:"range,omitempty"`
	Exists        *ExistsQuery          `json:"exists,omitempty"`
	Nested        *NestedQuery          `json:"nested,omitempty"`
	FunctionScore *FunctionScoreQuery   `json:"function_score,omitempty"`
	IDs           *IDsQuery             `json:"ids,omitempty"`
}

// BoolQuery combines clauses with must/should/must_not/filter semantics.
type BoolQuery struct {
	Must    []Clause `json:"must,omitempty"`
	Should  []Clause `json:"should,omitempty"`
	MustNot []Clause `json:"must_not,omitempty"`
	Filter  []Clause `json:"filter,omitempty"`
}

// MultiMatchQuery is a weighted multi-field full-text match.
type MultiMatchQuery struct {
	Query     string   `json:"query"`
	Type      string   `json:"type,omitempty"`
	Operator  string   `json:"operator,omitempty"`
	Fields    []string `json:"fields"`
	Fuzziness string   `json:"fuzziness,omitempty"`
}

// MatchAllQuery matches every document.
type MatchAllQuery struct{}

// TermsQuery matches documents whose field holds any of the given values,
// optionally contributing a boost to the relevance score.
type TermsQuery struct {
	Field  string
	Values []string
	Boost  float64
}

// MarshalJSON emits the store's terms shape, where the field name is a key
// alongside the optional boost: {"field": [...], "boost": 2}.
func (q TermsQuery) MarshalJSON() ([]byte, error) {
	body := map[string]any{q.Field: q.Values}
	if q.Boost != 0 {
		body["boost"] = q.Boost
	}
	return json.Marshal(body)
}

// RangeQuery bounds a numeric field. Bounds are pointers so that open-ended
// ranges omit the missing side entirely.
type RangeQuery struct {
	GTE *int `json:"gte,omitempty"`
	LTE *int `json:"lte,omitempty"`
}

// ExistsQuery matches documents where the field is present.
type ExistsQuery struct {
	Field string `json:"field"`
}

// NestedQuery scopes a sub-query to nested documents under Path.
type NestedQuery struct {
	Path      string  `json:"path"`
	Query     *Clause `json:"query"`
	ScoreMode string  `json:"score_mode,omitempty"`
}

// FunctionScoreQuery re-scores the wrapped query with scoring functions.
type FunctionScoreQuery struct {
	Query     *Clause         `json:"query,omitempty"`
	ScoreMode string          `json:"score_mode,omitempty"`
	Functions []ScoreFunction `json:"functions,omitempty"`
}

// ScoreFunction is one scoring contribution inside a function_score query.
type ScoreFunction struct {
	Exp              map[string]DecayPlacement `json:"exp,omitempty"`
	FieldValueFactor *FieldValueFactor         `json:"field_value_factor,omitempty"`
	ScriptScore      *ScriptScore              `json:"script_score,omitempty"`
}

// DecayPlacement configures an exponential decay around Origin: documents
// within Offset score 1.0, then decay over Scale.
type DecayPlacement struct {
	Origin float64 `json:"origin"`
	Offset float64 `json:"offset"`
	Scale  float64 `json:"scale"`
}

// FieldValueFactor scores by a document field value.
type FieldValueFactor struct {
	Field    string  `json:"field"`
	Modifier string  `json:"modifier,omitempty"`
	Factor   float64 `json:"factor,omitempty"`
}

// ScriptScore computes a score from a script expression.
type ScriptScore struct {
	Script string `json:"script"`
}

// IDsQuery matches documents by internal id.
type IDsQuery struct {
	Values []string `json:"values"`
}

// SortClause is one sort key. An empty or "_score" field sorts by relevance.
type SortClause struct {
	Field string
	Order SortOrder
}

// ScoreSort sorts by relevance score, descending.
func ScoreSort() SortClause {
	return SortClause{Field: "_score"}
}

// FieldSort sorts by a document field.
func FieldSort(field string, order SortOrder) SortClause {
	return SortClause{Field: field, Order: order}
}

// MarshalJSON emits either the bare "_score" string or {"field": "order"}.
func (s SortClause) MarshalJSON() ([]byte, error) {
	if s.Field == "" || s.Field == "_score" {
		return json.Marshal("_score")
	}
	return json.Marshal(map[string]SortOrder{s.Field: s.Order})
}

// Aggregation is a single aggregation request.
type Aggregation struct {
	Terms *TermsAggregation `json:"terms,omitempty"`
}

// TermsAggregation buckets documents by the distinct values of a field.
type TermsAggregation struct {
	Field string `json:"field"`
	Size  int    `json:"size"`
}

// SearchRequest is a fully-assembled structured query. It is built within a
// single call and never shared across requests; the JSON form is the store's
// request body, with Indices carried separately for the request path.
type SearchRequest struct {
	Indices        []string               `json:"-"`
	Query          *Clause                `json:"query,omitempty"`
	From           int                    `json:"from"`
	Size           int                    `json:"size"`
	Sort           []SortClause           `json:"sort,omitempty"`
	Aggs           map[string]Aggregation `json:"aggs,omitempty"`
	IndicesBoost   []map[string]float64   `json:"indices_boost,omitempty"`
	TrackTotalHits bool                   `json:"track_total_hits,omitempty"`
	Source         []string               `json:"_source,omitempty"`
}

// boolQuery returns the request's top-level bool query, creating it (and the
// query container) on first use.
func (r *SearchRequest) boolQuery() *BoolQuery {
	if r.Query == nil {
		r.Query = &Clause{}
	}
	if r.Query.Bool == nil {
		r.Query.Bool = &BoolQuery{}
	}
	return r.Query.Bool
}

// AddMust appends a mandatory scoring clause.
func (r *SearchRequest) AddMust(c Clause) {
	b := r.boolQuery()
	b.Must = append(b.Must, c)
}

// AddShould appends an optional scoring clause.
func (r *SearchRequest) AddShould(c Clause) {
	b := r.boolQuery()
	b.Should = append(b.Should, c)
}

// AddMustNot appends an exclusion clause.
func (r *SearchRequest) AddMustNot(c Clause) {
	b := r.boolQuery()
	b.MustNot = append(b.MustNot, c)
}

// AddFilter appends a non-scoring filter clause.
func (r *SearchRequest) AddFilter(c Clause) {
	b := r.boolQuery()
	b.Filter = append(b.Filter, c)
}

// AddFilterTerm adds an exact term filter. Zero values are skipped so that
// absent filters never produce empty clauses.
func (r *SearchRequest) AddFilterTerm(field string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case bool:
		if !v {
			return
		}
	}
	r.AddFilter(Clause{Term: map[string]any{field: value}})
}

// AddFilterExists adds a field-presence filter.
func (r *SearchRequest) AddFilterExists(field string) {
	r.AddFilter(Clause{Exists: &ExistsQuery{Field: field}})
}
