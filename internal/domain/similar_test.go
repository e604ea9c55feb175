package domain

import (
	"testing"
)

func referenceArtwork() Document {
	return Document{
		DocFieldID:    "obj-1",
		DocFieldIndex: IndexArt,
		"primaryConstituent": map[string]any{
			"id":            "const-9",
			"canonicalName": "Utagawa Hiroshige",
		},
		"classification": "Print",
		"medium":         "Woodblock",
		"period":         "Edo",
		"departments":    []any{"Asian Art"},
	}
}

func shouldClauseFor(req *SearchRequest, field string) *TermsQuery {
	for _, s := range req.Query.Bool.Should {
		if s.Terms != nil && s.Terms.Field == field {
			return s.Terms
		}
	}
	return nil
}

func TestBuildSimilarRequest_ExcludesReference(t *testing.T) {
	req := BuildSimilarRequest(referenceArtwork(), true)
	if req == nil {
		t.Fatal("expected a request")
	}

	mustNot := req.Query.Bool.MustNot
	if len(mustNot) != 1 || mustNot[0].IDs == nil {
		t.Fatal("expected an ids exclusion")
	}
	if mustNot[0].IDs.Values[0] != "obj-1" {
		t.Errorf("excluded id = %q, want obj-1", mustNot[0].IDs.Values[0])
	}

	if req.Size != SimilarPageSize {
		t.Errorf("Size = %d, want %d", req.Size, SimilarPageSize)
	}
}

func TestBuildSimilarRequest_NoID(t *testing.T) {
	if req := BuildSimilarRequest(Document{"title": "untitled"}, true); req != nil {
		t.Error("expected nil for a document without an id")
	}
}

func TestBuildSimilarRequest_AttributeWeights(t *testing.T) {
	req := BuildSimilarRequest(referenceArtwork(), true)

	name := shouldClauseFor(req, "primaryConstituent.canonicalName")
	if name == nil {
		t.Fatal("expected a canonical-name clause")
	}
	if name.Boost != 4 {
		t.Errorf("canonical-name boost = %v, want 4", name.Boost)
	}
	if name.Values[0] != "Utagawa Hiroshige" {
		t.Errorf("canonical-name value = %q", name.Values[0])
	}

	class := shouldClauseFor(req, "classification")
	if class == nil || class.Boost != 2 {
		t.Errorf("classification clause = %+v, want boost 2", class)
	}

	medium := shouldClauseFor(req, "medium")
	if medium == nil || medium.Boost != 1 {
		t.Errorf("medium clause = %+v, want boost 1", medium)
	}
}

func TestBuildSimilarRequest_SkipsAbsentAttributes(t *testing.T) {
	doc := Document{DocFieldID: "obj-2", "classification": "Sculpture"}
	req := BuildSimilarRequest(doc, false)

	if clause := shouldClauseFor(req, "dynasty"); clause != nil {
		t.Error("absent attribute must not produce a clause")
	}
	if clause := shouldClauseFor(req, "classification"); clause == nil {
		t.Error("present attribute must produce a clause")
	}
}

func TestBuildSimilarRequest_UnknownConstituent(t *testing.T) {
	doc := referenceArtwork()
	doc["primaryConstituent"] = map[string]any{
		"id":            "const-0",
		"canonicalName": UnknownConstituent,
	}
	req := BuildSimilarRequest(doc, true)

	if clause := shouldClauseFor(req, "primaryConstituent.canonicalName"); clause != nil {
		t.Error("an unknown creator must not contribute to similarity")
	}
}

func TestBuildSimilarRequest_MissingConstituentID(t *testing.T) {
	doc := referenceArtwork()
	doc["primaryConstituent"] = map[string]any{"canonicalName": "Utagawa Hiroshige"}
	req := BuildSimilarRequest(doc, true)

	if clause := shouldClauseFor(req, "primaryConstituent.canonicalName"); clause != nil {
		t.Error("a creator without an id must not contribute to similarity")
	}
}

func TestBuildSimilarRequest_PhotoRequirement(t *testing.T) {
	withPhoto := BuildSimilarRequest(referenceArtwork(), true)
	found := false
	for _, m := range withPhoto.Query.Bool.Must {
		if m.Exists != nil && m.Exists.Field == "image" {
			found = true
		}
	}
	if !found {
		t.Error("expected an image existence requirement")
	}

	withoutPhoto := BuildSimilarRequest(referenceArtwork(), false)
	for _, m := range withoutPhoto.Query.Bool.Must {
		if m.Exists != nil {
			t.Error("photo requirement must be absent when not requested")
		}
	}
}

func TestDocumentStringValues(t *testing.T) {
	doc := referenceArtwork()

	if got := doc.StringValue("classification"); got != "Print" {
		t.Errorf("StringValue(classification) = %q", got)
	}
	if got := doc.StringValue("primaryConstituent.canonicalName"); got != "Utagawa Hiroshige" {
		t.Errorf("dotted lookup = %q", got)
	}
	if got := doc.StringValues("departments"); len(got) != 1 || got[0] != "Asian Art" {
		t.Errorf("StringValues(departments) = %v", got)
	}
	if got := doc.StringValues("missing"); got != nil {
		t.Errorf("StringValues(missing) = %v, want nil", got)
	}
	if got := doc.StringValues("primaryConstituent.id.deep"); got != nil {
		t.Errorf("two-level dotted lookup = %v, want nil", got)
	}
}
