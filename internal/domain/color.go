package domain

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Dominant-color palette field paths.
const (
	dominantColorsPath = "image.dominantColors"
	colorFieldL        = "image.dominantColors.l"
	colorFieldA        = "image.dominantColors.a"
	colorFieldB        = "image.dominantColors.b"
	colorFieldPercent  = "image.dominantColors.percent"
)

// AddColorScore scores documents by perceptual proximity of their dominant
// color palette to hexColor and makes that score the ranking signal.
//
// Each palette entry is scored by three exponential decays, one per Lab
// channel, multiplied together and then by a log-dampened factor of the
// entry's area percentage, so a large patch of a close color outranks a
// tiny patch of a perfect one. Entry scores are summed per document.
//
// A hex value that fails conversion leaves the request untouched.
func AddColorScore(req *SearchRequest, hexColor string) {
	l, a, b, ok := hexToLab(hexColor)
	if !ok {
		return
	}

	colorClause := Clause{
		FunctionScore: &FunctionScoreQuery{
			Query: &Clause{
				Nested: &NestedQuery{
					Path: dominantColorsPath,
					Query: &Clause{
						FunctionScore: &FunctionScoreQuery{
							ScoreMode: "multiply",
							Functions: []ScoreFunction{
								{Exp: map[string]DecayPlacement{
									colorFieldL: {Origin: l, Offset: 10, Scale: 20},
								}},
								{Exp: map[string]DecayPlacement{
									colorFieldA: {Origin: a, Offset: 5, Scale: 10},
								}},
								{Exp: map[string]DecayPlacement{
									colorFieldB: {Origin: b, Offset: 5, Scale: 10},
								}},
								{FieldValueFactor: &FieldValueFactor{
									Field:    colorFieldPercent,
									Modifier: "log1p",
									Factor:   5,
								}},
							},
						},
					},
					ScoreMode: "sum",
				},
			},
			Functions: []ScoreFunction{
				{ScriptScore: &ScriptScore{Script: "_score"}},
			},
		},
	}

	req.AddMust(colorClause)
	req.Sort = []SortClause{ScoreSort()}
}

// hexToLab converts a 6-digit hex color (no hash) to CIE Lab on the
// conventional 0..100 / ±128 scale used by the indexed palettes.
func hexToLab(hexColor string) (l, a, b float64, ok bool) {
	if !IsHexColor(hexColor) {
		return 0, 0, 0, false
	}
	c, err := colorful.Hex("#" + hexColor)
	if err != nil {
		return 0, 0, 0, false
	}
	// go-colorful normalizes L to [0,1] and a/b by the same factor of 100.
	cl, ca, cb := c.Lab()
	return cl * 100, ca * 100, cb * 100, true
}
