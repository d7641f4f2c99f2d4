package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/theimaginaryfoundation/headline-vader/headlines"
	"github.com/theimaginaryfoundation/headline-vader/headlines/feeds"
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
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := run(ctx, cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "headlines_written=%d feeds_ok=%d feeds_failed=%d out=%s\n",
		len(res.Headlines), len(cfg.Feeds)-len(res.Failed), len(res.Failed), cfg.OutputPath)
}

type Config struct {
	Feeds      feedList
	OutputPath string

	PerFeedLimit int
	Timeout      time.Duration
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.Var(&cfg.Feeds, "feeds", "RSS/Atom feed URLs, comma-separated (repeatable)")
	fs.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "Output CSV (source,published,headline,link)")
	fs.IntVar(&cfg.PerFeedLimit, "per-feed-limit", cfg.PerFeedLimit, "Max items taken from each feed (0 = all)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Overall fetch timeout (0 disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	return cfg, nil
}

// run fetches every feed and writes the table. Feeds that fail are reported
// on warn and skipped.
func run(ctx context.Context, cfg Config, warn io.Writer) (feeds.FetchResult, error) {
	res, err := feeds.NewFetcher().FetchAll(ctx, cfg.Feeds, feeds.FetchOptions{PerFeedLimit: cfg.PerFeedLimit})
	reportFailed(warn, res.Failed)
	if err != nil {
		return feeds.FetchResult{}, err
	}
	if err := headlines.WriteTable(cfg.OutputPath, feeds.Table(res.Headlines)); err != nil {
		return feeds.FetchResult{}, err
	}
	return res, nil
}

func reportFailed(w io.Writer, failed map[string]error) {
	if w == nil || len(failed) == 0 {
		return
	}
	urls := make([]string, 0, len(failed))
	for u := range failed {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	for _, u := range urls {
		fmt.Fprintln(w, "feed failed:", failed[u].Error())
	}
}
