package main

import (
	"errors"
	"fmt"

	"github.com/theimaginaryfoundation/headline-vader/headlines"
	"github.com/theimaginaryfoundation/headline-vader/headlines/provider"
)

const (
	analyzerVader  = "vader"
	analyzerOpenAI = "openai"
)

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("missing -in")
	}
	if c.OutputPath == "" {
		return errors.New("missing -out")
	}
	switch c.Analyzer {
	case analyzerVader:
		if c.Model != "" && c.Model != provider.DefaultModel {
			return errors.New("-model only applies to -analyzer openai")
		}
	case analyzerOpenAI:
		if c.LexiconPath != "" {
			return errors.New("-lexicon only applies to -analyzer vader")
		}
	default:
		return fmt.Errorf("unknown -analyzer %q (want vader|openai)", c.Analyzer)
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must be >= 0")
	}
	if c.PreviewRows < 0 {
		return errors.New("preview must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		InputPath:   headlines.DefaultInputPath,
		OutputPath:  headlines.DefaultOutputPath,
		Analyzer:    analyzerVader,
		Model:       provider.DefaultModel,
		Concurrency: 1,
		PreviewRows: headlines.DefaultPreviewRows,
	}
}
