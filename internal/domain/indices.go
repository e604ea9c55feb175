// Package domain contains the core search logic and entities.
// This package performs no I/O; it builds queries and shapes values.
package domain

// Logical index names.
const (
	IndexArt    = "art"
	IndexNews   = "news"
	IndexEvents = "events"

	// DefaultIndex is the cross-index sentinel.
	DefaultIndex = "all"
)

// AllIndices lists the searchable indices, in store order.
var AllIndices = []string{IndexArt, IndexNews, IndexEvents}

// Boolean pseudo-filters. These are presence/term filters, not aggregations.
const (
	FilterOnView       = "onView"
	FilterHasPhoto     = "hasPhoto"
	FilterUnrestricted = "isUnrestricted"
)

// IndexMeta describes what an index supports: the ordered list of fields
// eligible for terms aggregations, and the (possibly larger) ordered list
// of fields eligible as filters.
type IndexMeta struct {
	Aggs    []string
	Filters []string
}

// Capabilities holds per-index metadata. It is built once at startup and
// treated as read-only; pass it into the sanitizer and query builder rather
// than reaching for a global.
type Capabilities struct {
	meta map[string]IndexMeta
}

// NewCapabilities creates a Capabilities value from explicit metadata.
func NewCapabilities(meta map[string]IndexMeta) *Capabilities {
	return &Capabilities{meta: meta}
}

// DefaultCapabilities returns the standard per-index configuration.
func DefaultCapabilities() *Capabilities {
	artAggs := []string{
		"source",
		"primaryConstituent.canonicalName",
		"classification",
		"medium",
		"departments",
		"period",
		"dynasty",
		"primaryGeographicalLocation.continent",
		"primaryGeographicalLocation.country",
		"primaryGeographicalLocation.name",
		"museumLocation.name",
		"exhibitions",
		"section",
	}

	// Not every agg needs to be a filter, and the boolean pseudo-filters
	// are filters without a backing aggregation.
	artFilters := append(append([]string{}, artAggs...),
		FilterUnrestricted,
		FilterHasPhoto,
		FilterOnView,
	)

	return NewCapabilities(map[string]IndexMeta{
		IndexArt: {
			Aggs:    artAggs,
			Filters: artFilters,
		},
		IndexNews: {
			Aggs:    []string{"source"},
			Filters: []string{"source"},
		},
		IndexEvents: {
			Aggs:    []string{"source", "location"},
			Filters: []string{"source", "location"},
		},
		DefaultIndex: {
			Aggs:    []string{"source"},
			Filters: []string{"source"},
		},
	})
}

// AggFields returns the ordered aggregation fields for an index.
func (c *Capabilities) AggFields(index string) []string {
	return c.meta[index].Aggs
}

// FilterFields returns the ordered filter fields for an index.
func (c *Capabilities) FilterFields(index string) []string {
	return c.meta[index].Filters
}

// IsValidIndex reports whether name is a concrete searchable index.
// The "all" sentinel is not a concrete index.
func IsValidIndex(name string) bool {
	for _, idx := range AllIndices {
		if idx == name {
			return true
		}
	}
	return false
}
