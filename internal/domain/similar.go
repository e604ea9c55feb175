package domain

// SimilarPageSize fixes the number of similar-item candidates. Similarity
// is always a top-N call; it takes no pagination parameters.
const SimilarPageSize = 24

// UnknownConstituent is the dataset's sentinel for an unattributed work.
// Sharing an unknown creator says nothing about similarity.
const UnknownConstituent = "Unknown"

// Attribute weights for similarity, in descending importance. The creator
// outweighs classification, which outweighs the secondary attributes.
var similarSecondaryFields = []string{
	"dynasty",
	"medium",
	"period",
	"departments",
	"primaryGeographicalLocation.name",
}

// BuildSimilarRequest builds a "more like this" query for a reference
// document: a weighted should-clause per shared attribute, always excluding
// the reference document itself. Attributes absent from the reference
// produce no clause. Returns nil when the document has no id.
func BuildSimilarRequest(doc Document, requirePhoto bool) *SearchRequest {
	if doc.ID() == "" {
		return nil
	}

	req := &SearchRequest{
		Indices: []string{IndexArt},
		From:    0,
		Size:    SimilarPageSize,
	}
	req.AddMustNot(Clause{IDs: &IDsQuery{Values: []string{doc.ID()}}})

	if requirePhoto {
		req.AddMust(Clause{Exists: &ExistsQuery{Field: "image"}})
	}

	// Adjust these boosts to tune the notion of artwork similarity.
	if doc.StringValue("primaryConstituent.id") != "" &&
		doc.StringValue("primaryConstituent.canonicalName") != UnknownConstituent {
		addShouldTerms(req, doc, "primaryConstituent.canonicalName", 4)
	}
	addShouldTerms(req, doc, "classification", 2)
	for _, field := range similarSecondaryFields {
		addShouldTerms(req, doc, field, 1)
	}

	return req
}

// addShouldTerms adds a boosted should clause carrying the reference
// document's own values for field. Empty values add nothing.
func addShouldTerms(req *SearchRequest, doc Document, field string, boost float64) {
	values := doc.StringValues(field)
	if len(values) == 0 {
		return
	}
	req.AddShould(Clause{Terms: &TermsQuery{
		Field:  field,
		Values: values,
		Boost:  boost,
	}})
}
