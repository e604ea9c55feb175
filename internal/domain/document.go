package domain

import "encoding/json"

// Metadata keys added to every projected document. Present even when the
// ingested source lacked them.
const (
	DocFieldID    = "_id"
	DocFieldIndex = "_index"
)

// Document is a denormalized store record: the stored fields flattened
// together with the store's internal id and index name.
type Document map[string]any

// ID returns the store-internal document id, or "" when absent.
func (d Document) ID() string {
	id, _ := d[DocFieldID].(string)
	return id
}

// Index returns the store index the document came from, or "" when absent.
func (d Document) Index() string {
	idx, _ := d[DocFieldIndex].(string)
	return idx
}

// StringValue returns the first string value at field, resolving dotted
// paths one object level deep ("primaryConstituent.canonicalName").
func (d Document) StringValue(field string) string {
	values := d.StringValues(field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// StringValues returns the string values at field. Scalars come back as a
// single-element slice; arrays keep their string elements; anything else is
// empty. Dotted paths resolve one nested object level.
func (d Document) StringValues(field string) []string {
	value := d.lookup(field)
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}

func (d Document) lookup(field string) any {
	if v, ok := d[field]; ok {
		return v
	}
	// only handle one nested level
	for i := 0; i < len(field); i++ {
		if field[i] != '.' {
			continue
		}
		parent, ok := d[field[:i]].(map[string]any)
		if !ok {
			return nil
		}
		return parent[field[i+1:]]
	}
	return nil
}

// Term is a reconciled vocabulary entry, e.g. a disambiguated artist name
// with its known alternate spellings. Terms are written during ingestion
// and read-only at query time.
type Term struct {
	Source     string   `json:"source,omitempty"`
	Index      string   `json:"index,omitempty"`
	Field      string   `json:"field,omitempty"`
	Value      string   `json:"value,omitempty"`
	Alternates []string `json:"alternates,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Data       Document `json:"data,omitempty"`
}

// TermFromSource decodes a raw stored record into a Term.
func TermFromSource(source map[string]any) (Term, error) {
	raw, err := json.Marshal(source)
	if err != nil {
		return Term{}, err
	}
	var term Term
	if err := json.Unmarshal(raw, &term); err != nil {
		return Term{}, err
	}
	return term, nil
}

// Bucket is one aggregation bucket: a distinct field value and its count.
type Bucket struct {
	Key      any `json:"key"`
	DocCount int `json:"doc_count"`
}

// AggOptions maps aggregation field names to their buckets. Fields with no
// bucket data are absent, not present with an empty slice.
type AggOptions map[string][]Bucket

// SearchMetadata carries pagination totals.
type SearchMetadata struct {
	Count int `json:"count"`
	Pages int `json:"pages"`
}

// SearchResult is the normalized search envelope returned to callers.
type SearchResult struct {
	Data     []Document     `json:"data"`
	Options  AggOptions     `json:"options,omitempty"`
	Metadata SearchMetadata `json:"metadata"`
	Terms    []Term         `json:"terms,omitempty"`
	Filters  []Term         `json:"filters,omitempty"`
}

// DocumentResult is a point lookup plus optional similar items.
type DocumentResult struct {
	Data    Document   `json:"data"`
	Similar []Document `json:"similar,omitempty"`
}
