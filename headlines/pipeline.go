package headlines

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/theimaginaryfoundation/headline-vader/headlines/fileutils"
)

// Default file names, relative to the working directory.
const (
	DefaultInputPath  = "ga_clean.csv"
	DefaultOutputPath = "ga_clean_VADER.csv"
)

// ScorerInit builds the scorer for a run. It is called once, before the input
// is read; a failure aborts the run with ErrResource.
type ScorerInit func(ctx context.Context) (Scorer, error)

// RunOptions controls Run.
type RunOptions struct {
	InputPath  string
	OutputPath string

	InitScorer ScorerInit
	// Analyzer names the scorer in the run summary.
	Analyzer string

	// Concurrency bounds in-flight Score calls (<= 1 scores sequentially).
	Concurrency int

	// Preview receives the first PreviewRows rows of the augmented table before
	// it is written. A nil writer disables the preview.
	Preview     io.Writer
	PreviewRows int

	// SummaryPath, when set, receives a RunSummary as JSON.
	SummaryPath   string
	PrettySummary bool
}

// RunResult reports what a successful run wrote.
type RunResult struct {
	RowsWritten int
	Summary     RunSummary
}

// Run executes the job once: init scorer, load, score, categorize, preview,
// write. Nothing is written unless every earlier stage succeeds.
func Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	if ctx == nil {
		return RunResult{}, errors.New("Run: ctx is nil")
	}
	if opts.InputPath == "" {
		return RunResult{}, fmt.Errorf("%w: Run: input path is empty", ErrInput)
	}
	if opts.OutputPath == "" {
		return RunResult{}, fmt.Errorf("%w: Run: output path is empty", ErrOutput)
	}
	if opts.InitScorer == nil {
		return RunResult{}, fmt.Errorf("%w: Run: no scorer configured", ErrResource)
	}

	scorer, err := opts.InitScorer(ctx)
	if err != nil {
		return RunResult{}, asClass(ErrResource, fmt.Errorf("Run: init scorer: %w", err))
	}

	table, err := LoadTable(opts.InputPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	texts, _ := table.Column(HeadlineColumn)
	scores, err := ScoreHeadlines(ctx, texts, scorer, opts.Concurrency)
	if err != nil {
		if ctx.Err() != nil {
			return RunResult{}, fmt.Errorf("Run: %w", err)
		}
		return RunResult{}, asClass(ErrResource, fmt.Errorf("Run: %w", err))
	}
	if err := AddScoreColumns(&table, scores); err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}
	labels, err := AddLabelColumn(&table, scores)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	if opts.Preview != nil {
		if err := WritePreview(opts.Preview, table, opts.PreviewRows); err != nil {
			return RunResult{}, fmt.Errorf("Run: preview: %w", err)
		}
	}

	if err := WriteTable(opts.OutputPath, table); err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	summary := BuildRunSummary(scores, labels)
	summary.InputPath = opts.InputPath
	summary.OutputPath = opts.OutputPath
	summary.Analyzer = opts.Analyzer
	if opts.SummaryPath != "" {
		if err := fileutils.WriteJSONFileAtomic(opts.SummaryPath, summary, opts.PrettySummary); err != nil {
			return RunResult{}, fmt.Errorf("%w: Run: summary: %w", ErrOutput, err)
		}
	}

	return RunResult{RowsWritten: len(table.Rows), Summary: summary}, nil
}

func asClass(class, err error) error {
	if errors.Is(err, class) {
		return err
	}
	return fmt.Errorf("%w: %w", class, err)
}
