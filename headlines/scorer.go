package headlines

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
)

// Scores is the polarity breakdown for one headline. Neg, Neu and Pos are the
// proportions of the text in each bucket; Compound is the normalised overall
// valence in [-1, 1].
type Scores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// String renders s the way it is stored in the scores column.
func (s Scores) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Rounded returns s rounded like the reference VADER implementation reports
// it: three places for the proportions, four for the compound score.
func (s Scores) Rounded() Scores {
	return Scores{
		Neg:      roundTo(s.Neg, 3),
		Neu:      roundTo(s.Neu, 3),
		Pos:      roundTo(s.Pos, 3),
		Compound: roundTo(s.Compound, 4),
	}
}

// Scorer computes sentiment for a single piece of text. Implementations must
// not keep state between calls; rows may be scored concurrently.
type Scorer interface {
	Score(ctx context.Context, text string) (Scores, error)
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(ctx context.Context, text string) (Scores, error)

func (f ScorerFunc) Score(ctx context.Context, text string) (Scores, error) {
	return f(ctx, text)
}

// FormatCompound renders a compound score for the compound column.
func FormatCompound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // no negative zero in the output
	}
	return r
}
