package headlines

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonreiter/govader"
)

// LexiconOptions selects the lexicon a VaderScorer loads.
type LexiconOptions struct {
	// Path is an optional NLTK-format vader_lexicon.txt. When empty the lexicon
	// bundled with govader is used.
	Path string
}

// VaderScorer scores text with the VADER lexicon and rule set.
type VaderScorer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the lexicon and builds the analyzer. Any failure is
// reported as ErrResource; the scorer is unusable until this succeeds.
func NewVaderScorer(opts LexiconOptions) (scorer *VaderScorer, err error) {
	var lexicon map[string]float64
	if opts.Path != "" {
		lexicon, err = LoadLexiconFile(opts.Path)
		if err != nil {
			return nil, err
		}
	}

	// govader panics if its bundled assets cannot be read.
	defer func() {
		if r := recover(); r != nil {
			scorer = nil
			err = fmt.Errorf("%w: init vader analyzer: %v", ErrResource, r)
		}
	}()

	sia := govader.NewSentimentIntensityAnalyzer()
	if lexicon != nil {
		sia.Lexicon = lexicon
	}
	return &VaderScorer{sia: sia}, nil
}

// Score implements Scorer. It never fails and ignores ctx.
func (v *VaderScorer) Score(_ context.Context, text string) (Scores, error) {
	s := v.sia.PolarityScores(text)
	return Scores{
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Pos:      s.Positive,
		Compound: s.Compound,
	}.Rounded(), nil
}

// LoadLexiconFile reads a lexicon file. See LoadLexicon.
func LoadLexiconFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open lexicon: %w", ErrResource, err)
	}
	defer f.Close()

	lex, err := LoadLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// LoadLexicon parses the VADER lexicon format: one token per line followed by
// tab-separated fields, the first of which is the mean valence. Remaining
// fields (standard deviation, raw ratings) are ignored. Blank lines are skipped.
func LoadLexicon(r io.Reader) (map[string]float64, error) {
	lex := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: lexicon line %d: want token<TAB>valence", ErrResource, lineNum)
		}
		valence, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: lexicon line %d: %w", ErrResource, lineNum, err)
		}
		lex[fields[0]] = valence
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read lexicon: %w", ErrResource, err)
	}
	if len(lex) == 0 {
		return nil, fmt.Errorf("%w: lexicon is empty", ErrResource)
	}
	return lex, nil
}
