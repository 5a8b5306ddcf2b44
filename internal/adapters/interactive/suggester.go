package interactive

import (
	"github.com/musdomains/domains/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// MaxSuggestions caps "did you mean" lists
const MaxSuggestions = 3

// FuzzySuggester ranks registered names by fuzzy similarity
type FuzzySuggester struct{}

// NewFuzzySuggester creates a new suggester
func NewFuzzySuggester() *FuzzySuggester {
	return &FuzzySuggester{}
}

// Suggest returns up to MaxSuggestions candidates that fuzzy-match name, best first
func (FuzzySuggester) Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, candidates)
	out := make([]string, 0, MaxSuggestions)
	for _, m := range matches {
		if m.Str == name {
			continue
		}
		out = append(out, m.Str)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

var _ usecase.NameSuggester = FuzzySuggester{}
