package main

import (
	"errors"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/headline-vader/headlines"
)

// feedList collects -feeds values. Each value may hold several
// comma-separated URLs; duplicates are dropped.
type feedList []string

func (f *feedList) String() string { return strings.Join(*f, ",") }

func (f *feedList) Set(v string) error {
	for _, u := range strings.Split(v, ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		dup := false
		for _, have := range *f {
			if have == u {
				dup = true
				break
			}
		}
		if !dup {
			*f = append(*f, u)
		}
	}
	return nil
}

func (c Config) Validate() error {
	if len(c.Feeds) == 0 {
		return errors.New("missing -feeds")
	}
	for _, u := range c.Feeds {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return errors.New("feed URLs must start with http:// or https://: " + u)
		}
	}
	if c.OutputPath == "" {
		return errors.New("missing -out")
	}
	if c.PerFeedLimit < 0 {
		return errors.New("per-feed-limit must be >= 0")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		OutputPath:   headlines.DefaultInputPath,
		PerFeedLimit: 0,
		Timeout:      2 * time.Minute,
	}
}
