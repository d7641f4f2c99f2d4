package headlines

// Label is the categorical bucket written to the comp_score column.
type Label string

const (
	LabelPositive Label = "pos"
	LabelNegative Label = "neg"
	LabelNeutral  Label = "neu"
)

// Compound thresholds. Both bounds are inclusive.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Categorize buckets a compound score: >= 0.05 is pos, <= -0.05 is neg and
// anything in between is neu.
func Categorize(compound float64) Label {
	switch {
	case compound >= PositiveThreshold:
		return LabelPositive
	case compound <= NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
