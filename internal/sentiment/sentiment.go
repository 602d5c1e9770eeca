// Package sentiment scores the emotional polarity of short chat messages.
package sentiment

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var rawLexicon []byte

// negationFactor flips and dampens a negated word ("not good" is mildly negative).
const negationFactor = -0.5

type Lexicon struct {
	Words     map[string]float64 `yaml:"words"`
	Modifiers map[string]float64 `yaml:"modifiers"`
	Negations []string           `yaml:"negations"`

	negations map[string]struct{}
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the embedded lexicon.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Parse(rawLexicon)
	})
	return defaultLex, defaultErr
}

func Parse(raw []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(raw, &lx); err != nil {
		return nil, fmt.Errorf("decode sentiment lexicon: %w", err)
	}
	if len(lx.Words) == 0 {
		return nil, fmt.Errorf("sentiment lexicon has no words")
	}
	lx.negations = make(map[string]struct{}, len(lx.Negations))
	for _, n := range lx.Negations {
		lx.negations[strings.ToLower(n)] = struct{}{}
	}
	return &lx, nil
}

// Polarity returns the mean polarity of the scored words in text, clamped to
// [-1, 1]. Text without any known word scores 0.
func (lx *Lexicon) Polarity(text string) float64 {
	tokens := tokenize(text)
	var sum float64
	var n int
	for i, tok := range tokens {
		p, ok := lx.Words[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if m, ok := lx.Modifiers[tokens[i-1]]; ok {
				p *= m
			}
		}
		if lx.negated(tokens, i) {
			p *= negationFactor
		}
		sum += clamp(p)
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

// A negation up to two tokens back applies ("not very happy").
func (lx *Lexicon) negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if _, ok := lx.negations[tokens[j]]; ok {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
