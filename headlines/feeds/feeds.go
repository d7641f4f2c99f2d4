// Package feeds collects headlines from RSS/Atom feeds into a table the
// sentiment pipeline can read.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/theimaginaryfoundation/headline-vader/headlines"
)

// Columns written by Table, in order.
var Columns = []string{"source", "published", headlines.HeadlineColumn, "link"}

// Headline is one feed item reduced to what the pipeline needs.
type Headline struct {
	Source    string
	Published *time.Time
	Title     string
	Link      string
}

// FetchOptions controls FetchAll.
type FetchOptions struct {
	// PerFeedLimit caps items taken from each feed (0 = all).
	PerFeedLimit int
}

// FetchResult reports per-feed failures alongside the collected headlines.
type FetchResult struct {
	Headlines []Headline
	Failed    map[string]error
}

type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	return &Fetcher{parser: gofeed.NewParser()}
}

// Fetch parses one feed. Items without a title are dropped; titles and feed
// names have any markup stripped.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]Headline, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	source := CleanHTML(feed.Title)
	if source == "" {
		source = feedURL
	}

	out := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		title := CleanHTML(item.Title)
		if title == "" {
			continue
		}
		h := Headline{
			Source: source,
			Title:  title,
			Link:   strings.TrimSpace(item.Link),
		}
		switch {
		case item.PublishedParsed != nil:
			h.Published = item.PublishedParsed
		case item.UpdatedParsed != nil:
			h.Published = item.UpdatedParsed
		}
		out = append(out, h)
	}
	return out, nil
}

// FetchAll fetches every feed in order. A feed that fails is recorded in
// Failed and skipped; an error is returned only when every feed fails.
// Items whose link was already seen are dropped.
func (f *Fetcher) FetchAll(ctx context.Context, feedURLs []string, opts FetchOptions) (FetchResult, error) {
	if len(feedURLs) == 0 {
		return FetchResult{}, errors.New("FetchAll: no feed URLs")
	}

	res := FetchResult{Failed: make(map[string]error)}
	seen := make(map[string]struct{})
	for _, u := range feedURLs {
		if err := ctx.Err(); err != nil {
			return FetchResult{}, err
		}
		items, err := f.Fetch(ctx, u)
		if err != nil {
			res.Failed[u] = err
			continue
		}
		if opts.PerFeedLimit > 0 && len(items) > opts.PerFeedLimit {
			items = items[:opts.PerFeedLimit]
		}
		for _, h := range items {
			if h.Link != "" {
				key := strings.ToLower(h.Link)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
			}
			res.Headlines = append(res.Headlines, h)
		}
	}
	if len(res.Failed) == len(feedURLs) {
		return res, fmt.Errorf("FetchAll: all %d feeds failed", len(feedURLs))
	}
	return res, nil
}

// CleanHTML strips HTML tags and collapses whitespace.
func CleanHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Table lays headlines out with Columns as the header.
func Table(hs []Headline) headlines.Table {
	t := headlines.Table{Header: append([]string(nil), Columns...)}
	t.Rows = make([][]string, 0, len(hs))
	for _, h := range hs {
		t.Rows = append(t.Rows, []string{h.Source, publishedISO8601(h.Published), h.Title, h.Link})
	}
	return t
}
