package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/theimaginaryfoundation/headline-vader/headlines"
	"github.com/theimaginaryfoundation/headline-vader/headlines/provider"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	if cfg.Analyzer == analyzerOpenAI {
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.APIKey == "" {
			fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := run(ctx, cfg, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	s := res.Summary
	fmt.Fprintf(os.Stdout, "rows_written=%d pos=%d neg=%d neu=%d out=%s\n", res.RowsWritten, s.Positive, s.Negative, s.Neutral, cfg.OutputPath)
}

type Config struct {
	InputPath  string
	OutputPath string

	Analyzer    string
	LexiconPath string
	Model       string
	APIKey      string

	Concurrency int
	PreviewRows int

	SummaryPath string
	Pretty      bool
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InputPath, "in", cfg.InputPath, "Input CSV with a headline column")
	fs.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "Output CSV (overwritten)")

	fs.StringVar(&cfg.Analyzer, "analyzer", cfg.Analyzer, "Sentiment analyzer: vader|openai")
	fs.StringVar(&cfg.LexiconPath, "lexicon", "", "Optional vader_lexicon.txt replacing the bundled lexicon")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for -analyzer openai (uses OPENAI_API_KEY)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (defaults to OPENAI_API_KEY)")

	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Headlines scored in parallel (0 or 1 = sequential)")
	fs.IntVar(&cfg.PreviewRows, "preview", cfg.PreviewRows, "Rows printed before writing (0 disables the preview)")

	fs.StringVar(&cfg.SummaryPath, "summary", "", "Optional path for a JSON run summary")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Pretty-print the JSON run summary")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.InputPath = filepath.Clean(cfg.InputPath)
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	if cfg.LexiconPath != "" {
		cfg.LexiconPath = filepath.Clean(cfg.LexiconPath)
	}
	if cfg.SummaryPath != "" {
		cfg.SummaryPath = filepath.Clean(cfg.SummaryPath)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg Config, preview io.Writer) (headlines.RunResult, error) {
	return headlines.Run(ctx, headlines.RunOptions{
		InputPath:     cfg.InputPath,
		OutputPath:    cfg.OutputPath,
		InitScorer:    scorerInit(cfg),
		Analyzer:      cfg.Analyzer,
		Concurrency:   cfg.Concurrency,
		Preview:       preview,
		PreviewRows:   cfg.PreviewRows,
		SummaryPath:   cfg.SummaryPath,
		PrettySummary: cfg.Pretty,
	})
}

func scorerInit(cfg Config) headlines.ScorerInit {
	return func(context.Context) (headlines.Scorer, error) {
		if cfg.Analyzer == analyzerOpenAI {
			return provider.NewOpenAIScorer(provider.OpenAIOptions{APIKey: cfg.APIKey, Model: cfg.Model})
		}
		return headlines.NewVaderScorer(headlines.LexiconOptions{Path: cfg.LexiconPath})
	}
}
