package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/theimaginaryfoundation/headline-vader/headlines/fileutils"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, stage := range selectStages(cfg) {
		var args []string
		switch stage {
		case "fetch":
			if len(cfg.Feeds) == 0 {
				fmt.Fprintln(os.Stdout, "skip fetch: no -feeds given")
				continue
			}
			if !cfg.Overwrite && fileutils.FileExists(cfg.InputPath) {
				fmt.Fprintln(os.Stdout, "skip fetch: input already exists:", cfg.InputPath)
				continue
			}
			args = fetchArgs(cfg)
		case "score":
			args = scoreArgs(cfg)
		default:
			fmt.Fprintln(os.Stderr, "unknown stage:", stage)
			os.Exit(2)
		}
		if err := runGo(ctx, args...); err != nil {
			os.Exit(1)
		}
	}
}

type Config struct {
	Feeds        string
	PerFeedLimit int

	InputPath  string
	OutputPath string

	Analyzer    string
	LexiconPath string
	Model       string
	Concurrency int
	SummaryPath string

	FromStage string
	OnlyStage string

	Pretty    bool
	Overwrite bool
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Feeds, "feeds", "", "Comma-separated RSS/Atom feed URLs for the fetch stage")
	fs.IntVar(&cfg.PerFeedLimit, "per-feed-limit", cfg.PerFeedLimit, "Max items taken from each feed (0 = all)")

	fs.StringVar(&cfg.InputPath, "in", cfg.InputPath, "Headline CSV (fetch output, score input)")
	fs.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "Scored CSV")

	fs.StringVar(&cfg.Analyzer, "analyzer", cfg.Analyzer, "Sentiment analyzer: vader|openai")
	fs.StringVar(&cfg.LexiconPath, "lexicon", "", "Optional vader_lexicon.txt for -analyzer vader")
	fs.StringVar(&cfg.Model, "model", "", "OpenAI model for -analyzer openai (uses OPENAI_API_KEY)")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Headlines scored in parallel")
	fs.StringVar(&cfg.SummaryPath, "summary", "", "Optional path for a JSON run summary")

	fs.StringVar(&cfg.FromStage, "from-stage", "", "Start at stage: fetch|score")
	fs.StringVar(&cfg.OnlyStage, "only-stage", "", "Run only one stage: fetch|score")

	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Pretty-print the JSON run summary")
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "Re-fetch even if the input CSV already exists")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.FromStage = strings.ToLower(strings.TrimSpace(cfg.FromStage))
	cfg.OnlyStage = strings.ToLower(strings.TrimSpace(cfg.OnlyStage))
	cfg.InputPath = filepath.Clean(cfg.InputPath)
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	return cfg, nil
}

func selectStages(cfg Config) []string {
	if cfg.OnlyStage != "" {
		return []string{cfg.OnlyStage}
	}
	if cfg.FromStage != "" {
		return stagesFrom(allStages, cfg.FromStage)
	}
	return allStages
}

func fetchArgs(cfg Config) []string {
	return []string{
		"run", "./cmd/headline-fetch",
		"-feeds", cfg.Feeds,
		"-out", cfg.InputPath,
		"-per-feed-limit", fmt.Sprintf("%d", cfg.PerFeedLimit),
	}
}

func scoreArgs(cfg Config) []string {
	args := []string{
		"run", "./cmd/headline-sentiment",
		"-in", cfg.InputPath,
		"-out", cfg.OutputPath,
		"-analyzer", cfg.Analyzer,
		"-concurrency", fmt.Sprintf("%d", cfg.Concurrency),
	}
	if cfg.LexiconPath != "" {
		args = append(args, "-lexicon", cfg.LexiconPath)
	}
	if cfg.Model != "" {
		args = append(args, "-model", cfg.Model)
	}
	if cfg.SummaryPath != "" {
		args = append(args, "-summary", cfg.SummaryPath)
	}
	if cfg.Pretty {
		args = append(args, "-pretty")
	}
	return args
}

func runGo(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "command failed:", "go "+strings.Join(args, " "))
		fmt.Fprintln(os.Stderr, "error:", err.Error())
		return err
	}
	fmt.Fprintln(os.Stdout, "ok:", "go "+strings.Join(args, " "), "(", time.Since(start).Round(time.Millisecond).String()+")")
	return nil
}

func stagesFrom(stages []string, from string) []string {
	from = strings.ToLower(strings.TrimSpace(from))
	for i, s := range stages {
		if s == from {
			return stages[i:]
		}
	}
	return stages
}
