package features

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
)

// Vectorizer turns one text column into a fixed-width TF-IDF bag of
// unigrams and bigrams with a bounded vocabulary. Fitting selects the
// MaxFeatures most frequent terms of the training corpus; transforming any
// later document only ever sees that vocabulary.
type Vectorizer struct {
	MaxFeatures int
	NGramMin    int
	NGramMax    int

	// Vocabulary maps a term to its column offset inside this vectorizer's
	// block. IDF is indexed the same way. Both are populated by Fit.
	Vocabulary map[string]int
	IDF        []float64
}

// NewVectorizer returns a vectorizer with the contract defaults: unigrams
// plus bigrams, vocabulary capped at 1000 terms.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxFeatures: 1000, NGramMin: 1, NGramMax: 2}
}

// Width returns the number of output columns.
func (v *Vectorizer) Width() int { return len(v.Vocabulary) }

// Fit builds the vocabulary and IDF weights from the training documents.
func (v *Vectorizer) Fit(docs []string) {
	counts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		terms := v.terms(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			counts[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(counts))
	for t, c := range counts {
		ranked = append(ranked, termCount{t, c})
	}
	// Most frequent first; ties broken lexicographically so two fits over
	// the same corpus always produce the same vocabulary.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})
	if len(ranked) > v.MaxFeatures {
		ranked = ranked[:v.MaxFeatures]
	}

	// Stable column order: alphabetical over the selected vocabulary.
	selected := make([]string, len(ranked))
	for i, tc := range ranked {
		selected[i] = tc.term
	}
	sort.Strings(selected)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(selected))
	v.IDF = make([]float64, len(selected))
	for i, t := range selected {
		v.Vocabulary[t] = i
		// Smoothed IDF, same shape the original vectorizer used.
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
}

// TransformInto writes the L2-normalized TF-IDF encoding of doc into
// dst[0:Width()]. Terms outside the fitted vocabulary are ignored.
func (v *Vectorizer) TransformInto(doc string, dst []float64) {
	block := dst[:v.Width()]
	for i := range block {
		block[i] = 0
	}
	for _, t := range v.terms(doc) {
		if idx, ok := v.Vocabulary[t]; ok {
			block[idx]++
		}
	}
	for i := range block {
		block[i] *= v.IDF[i]
	}
	if norm := floats.Norm(block, 2); norm > 0 {
		floats.Scale(1/norm, block)
	}
}

// terms tokenizes doc and expands the configured n-gram range. Tokens are
// lowercased maximal runs of letters and digits; bigrams join consecutive
// tokens with a single space.
func (v *Vectorizer) terms(doc string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for n := v.NGramMin; n <= v.NGramMax; n++ {
		if n <= 0 {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
