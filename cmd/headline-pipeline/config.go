package main

import (
	"errors"
	"fmt"

	"github.com/theimaginaryfoundation/headline-vader/headlines"
)

var allStages = []string{"fetch", "score"}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("missing -in")
	}
	if c.OutputPath == "" {
		return errors.New("missing -out")
	}
	if c.Concurrency < 0 || c.PerFeedLimit < 0 {
		return errors.New("concurrency/per-feed-limit must be >= 0")
	}
	if c.OnlyStage != "" && c.FromStage != "" {
		return errors.New("use only one of -only-stage or -from-stage")
	}
	for _, s := range []string{c.OnlyStage, c.FromStage} {
		if s != "" && !isStage(s) {
			return fmt.Errorf("unknown stage %q (want fetch|score)", s)
		}
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		InputPath:   headlines.DefaultInputPath,
		OutputPath:  headlines.DefaultOutputPath,
		Analyzer:    "vader",
		Concurrency: 1,
	}
}

func isStage(s string) bool {
	for _, st := range allStages {
		if st == s {
			return true
		}
	}
	return false
}
