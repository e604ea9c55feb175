package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// LayoutType represents the result list layout requested by the caller.
type LayoutType string

const (
	LayoutGrid LayoutType = "grid"
	LayoutList LayoutType = "list"
)

// Pagination and sizing bounds.
const (
	DefaultSearchPageSize = 24
	MaxSearchPageSize     = 100
	MaxPages              = 1000 // don't allow more than 1000 pages of results
)

// SortFields is the allow-list of explicitly sortable fields.
var SortFields = []string{
	"title",
	"startYear",
	"primaryConstituent.canonicalName",
}

var hexColorPattern = regexp.MustCompile(`^[A-Fa-f0-9]{6}$`)

// IsHexColor reports whether s is a 6-digit hex color without a leading hash.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// RawParams holds untrusted query-string parameters, one value per key.
type RawParams map[string]string

// SearchParams holds sanitized search and filter parameters. Every field is
// populated by SanitizeSearchParams; nothing downstream has to re-validate.
type SearchParams struct {
	Index          string            // logical index, or the "all" sentinel
	PageNumber     int               // 1-based page number
	ResultsPerPage int               // results per page
	Query          string            // free-text query, "" if absent
	SortField      string            // explicit sort field, "" if absent
	SortOrder      SortOrder         // explicit sort order, "" if absent
	HexColor       string            // 6-digit hex color, "" if absent
	IsUnrestricted bool              // copyright-unrestricted filter
	HasPhoto       bool              // photo-presence filter
	OnView         bool              // on-view filter
	Layout         LayoutType        // grid or list
	CardType       string            // experimental card type, free string
	IsShowFilters  bool              // whether the filter panel is open
	AggFilters     map[string]string // per-index aggregation filters
	StartYear      *int              // may be negative for BCE
	EndYear        *int              // may be negative for BCE
}

// SanitizeSearchParams validates and normalizes raw query parameters.
// Malformed or out-of-range input never errors; every field degrades to its
// documented default so that adversarial query strings cannot break search.
func SanitizeSearchParams(index string, raw RawParams, caps *Capabilities) SearchParams {
	params := SearchParams{
		AggFilters: map[string]string{},
	}

	params.Index = DefaultIndex
	if IsValidIndex(index) {
		params.Index = index
	}

	// page number between 1 and MaxPages
	params.PageNumber = 1
	if p, ok := parseIntParam(raw["p"]); ok && p > 0 && p <= MaxPages {
		params.PageNumber = p
	}

	// results per page, strictly below the maximum
	params.ResultsPerPage = DefaultSearchPageSize
	if size, ok := parseIntParam(raw["size"]); ok && size > 0 && size < MaxSearchPageSize {
		params.ResultsPerPage = size
	}

	params.Query = raw["q"]

	// sort field and order are only accepted as a valid pair
	sortField := sanitizeSortField(raw["sf"])
	sortOrder := sanitizeSortOrder(raw["so"])
	if sortField != "" && sortOrder != "" {
		params.SortField = sortField
		params.SortOrder = sortOrder
	}

	if IsHexColor(raw["color"]) {
		params.HexColor = raw["color"]
	}

	params.IsUnrestricted = parseBoolParam(raw[FilterUnrestricted])
	params.HasPhoto = parseBoolParam(raw[FilterHasPhoto])
	params.OnView = parseBoolParam(raw[FilterOnView])

	params.Layout = LayoutGrid
	if LayoutType(raw["layout"]) == LayoutList {
		params.Layout = LayoutList
	}
	params.CardType = raw["card"]
	params.IsShowFilters = parseBoolParam(raw["f"])

	if y, ok := parseIntParam(raw["startYear"]); ok {
		params.StartYear = &y
	}
	if y, ok := parseIntParam(raw["endYear"]); ok {
		params.EndYear = &y
	}

	// Only fields declared as aggregations for the resolved index are
	// retained; a filter valid for another index is dropped here.
	for _, aggName := range caps.AggFields(params.Index) {
		if v := raw[aggName]; v != "" {
			params.AggFilters[aggName] = v
		}
	}

	return params
}

// StoreIndices resolves the logical index to the concrete indices to search.
// The "all" sentinel (or anything unrecognized) expands to every index.
func StoreIndices(params SearchParams) []string {
	if IsValidIndex(params.Index) {
		return []string{params.Index}
	}
	return AllIndices
}

func sanitizeSortField(field string) string {
	for _, f := range SortFields {
		if f == field {
			return field
		}
	}
	return ""
}

func sanitizeSortOrder(order string) SortOrder {
	switch SortOrder(order) {
	case SortOrderAsc, SortOrderDesc:
		return SortOrder(order)
	}
	return ""
}

func parseIntParam(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBoolParam coerces heterogeneous truthy input: "true" (any case) and
// "1" are true, everything else is false.
func parseBoolParam(s string) bool {
	return strings.EqualFold(s, "true") || s == "1"
}
