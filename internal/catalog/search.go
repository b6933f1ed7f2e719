package catalog

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field weights. Brand, product and variant names share the top weight.
const (
	weightBrand   = 1.0
	weightProduct = 1.0
	weightVariant = 1.0

	exactHit  = 1.0
	prefixHit = 0.5
)

// SearchDocument is one searchable variant.
type SearchDocument struct {
	ProductID     int64
	VariantID     int64
	ProductName   string
	VariantName   string
	VariantSlug   string
	BrandName     string
	ProductActive bool
}

// SearchHit is a ranked document.
type SearchHit struct {
	SearchDocument
	Rank float64
}

// Fold lower-cases s and strips combining marks so "Café" matches "cafe".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Tokenize splits a query on whitespace and folds each token. Duplicates
// are dropped; the tokens are OR-ed together by the ranker.
func Tokenize(query string) []string {
	var out []string
	for _, f := range strings.Fields(query) {
		tok := Fold(strings.TrimFunc(f, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }))
		if tok == "" || slices.Contains(out, tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func words(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func fieldScore(tokens, ws []string) float64 {
	var score float64
	for _, tok := range tokens {
		for _, w := range ws {
			switch {
			case w == tok:
				score += exactHit
			case strings.HasPrefix(w, tok):
				score += prefixHit
			}
		}
	}
	return score
}

// Rank scores docs against query and returns the matching active ones,
// best first. An empty query matches nothing.
func Rank(query string, docs []SearchDocument) []SearchHit {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []SearchHit{}
	}
	hits := []SearchHit{}
	for _, d := range docs {
		if !d.ProductActive {
			continue
		}
		rank := weightBrand*fieldScore(tokens, words(d.BrandName)) +
			weightProduct*fieldScore(tokens, words(d.ProductName)) +
			weightVariant*fieldScore(tokens, words(d.VariantName))
		if rank <= 0 {
			continue
		}
		hits = append(hits, SearchHit{SearchDocument: d, Rank: rank})
	}
	slices.SortStableFunc(hits, func(a, b SearchHit) int {
		switch {
		case a.Rank > b.Rank:
			return -1
		case a.Rank < b.Rank:
			return 1
		}
		if c := compareInt64(a.ProductID, b.ProductID); c != 0 {
			return c
		}
		return compareInt64(a.VariantID, b.VariantID)
	})
	return hits
}
