package headlines

// RunSummary is the optional JSON artifact describing one pipeline run.
type RunSummary struct {
	InputPath    string  `json:"input_path"`
	OutputPath   string  `json:"output_path"`
	Analyzer     string  `json:"analyzer,omitempty"`
	Rows         int     `json:"rows"`
	Positive     int     `json:"pos"`
	Negative     int     `json:"neg"`
	Neutral      int     `json:"neu"`
	MeanCompound float64 `json:"mean_compound"`
}

// BuildRunSummary counts labels and averages compound scores. Paths and the
// analyzer name are left for the caller to fill in.
func BuildRunSummary(scores []Scores, labels []Label) RunSummary {
	s := RunSummary{Rows: len(labels)}
	for _, l := range labels {
		switch l {
		case LabelPositive:
			s.Positive++
		case LabelNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	if len(scores) == 0 {
		return s
	}
	var sum float64
	for _, sc := range scores {
		sum += sc.Compound
	}
	s.MeanCompound = roundTo(sum/float64(len(scores)), 4)
	return s
}
