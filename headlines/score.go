package headlines

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ScoreHeadlines scores every text with scorer and returns the results in
// input order. With concurrency <= 1 rows are scored one after another;
// otherwise up to concurrency rows are in flight and the first error cancels
// the rest.
func ScoreHeadlines(ctx context.Context, texts []string, scorer Scorer, concurrency int) ([]Scores, error) {
	if scorer == nil {
		return nil, errors.New("ScoreHeadlines: scorer is nil")
	}
	out := make([]Scores, len(texts))

	if concurrency <= 1 {
		for i, text := range texts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s, err := scorer.Score(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("score row %d: %w", i+2, err)
			}
			out[i] = s
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := scorer.Score(gctx, text)
			if err != nil {
				return fmt.Errorf("score row %d: %w", i+2, err)
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddScoreColumns sets the scores and compound columns from scores, which must
// line up with t.Rows.
func AddScoreColumns(t *Table, scores []Scores) error {
	if len(scores) != len(t.Rows) {
		return fmt.Errorf("AddScoreColumns: got %d scores for %d rows", len(scores), len(t.Rows))
	}
	scoreCells := make([]string, len(scores))
	compoundCells := make([]string, len(scores))
	for i, s := range scores {
		scoreCells[i] = s.String()
		compoundCells[i] = FormatCompound(s.Compound)
	}
	if err := t.SetColumn(ScoresColumn, scoreCells); err != nil {
		return err
	}
	return t.SetColumn(CompoundColumn, compoundCells)
}

// AddLabelColumn categorizes each compound score and sets the comp_score column.
func AddLabelColumn(t *Table, scores []Scores) ([]Label, error) {
	if len(scores) != len(t.Rows) {
		return nil, fmt.Errorf("AddLabelColumn: got %d scores for %d rows", len(scores), len(t.Rows))
	}
	labels := make([]Label, len(scores))
	cells := make([]string, len(scores))
	for i, s := range scores {
		labels[i] = Categorize(s.Compound)
		cells[i] = string(labels[i])
	}
	if err := t.SetColumn(CompScoreColumn, cells); err != nil {
		return nil, err
	}
	return labels, nil
}
