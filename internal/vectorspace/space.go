package vectorspace

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spaolacci/murmur3"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Options configures a Space.
type Options struct {
	// Features is the number of hash buckets. Defaults to domain.DefaultFeatureCount.
	Features int

	// StopWords excluded before n-grams are built. Nil means the English list.
	StopWords map[string]struct{}
}

// Space is a fitted hashing feature scheme. It holds no vocabulary, so a
// Space built in one pass produces vectors comparable with any other Space
// using the same Options.
type Space struct {
	features  int
	stopWords map[string]struct{}
}

// New returns a Space for opts.
func New(opts Options) *Space {
	features := opts.Features
	if features <= 0 {
		features = domain.DefaultFeatureCount
	}
	stop := opts.StopWords
	if stop == nil {
		stop = StopWords(nil, false)
	}
	return &Space{features: features, stopWords: stop}
}

// Features returns the dimensionality of the space.
func (s *Space) Features() int {
	return s.features
}

// Fit builds a Space over pages and returns the raw vector of every page.
// A page that is not valid UTF-8 fails with domain.ErrInvalidCorpus.
func Fit(pages []string, opts Options) (*Space, []Vector, error) {
	s := New(opts)
	vectors, err := s.Transform(pages)
	if err != nil {
		return nil, nil, err
	}
	return s, vectors, nil
}

// Transform projects each text into the space.
func (s *Space) Transform(texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w: page %d is not valid UTF-8", domain.ErrInvalidCorpus, i)
		}
		out[i] = s.vectorize(text)
	}
	return out, nil
}

// Tokens returns the lower-cased tokens of text with stop words removed.
func (s *Space) Tokens(text string) []string {
	raw := tokenPattern.FindAllString(lower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := s.stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// NGrams returns the 1-grams followed by the space-joined 2-grams of tokens.
func NGrams(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	grams := make([]string, 0, 2*len(tokens)-1)
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// Bucket maps a term to its feature index and sign.
// The signed 32-bit MurmurHash3 (seed 0) selects the bucket by absolute
// value and the sign by its own sign, so colliding terms tend to cancel
// instead of accumulate.
func (s *Space) Bucket(term string) (int, float64) {
	return s.bucketOf(int32(murmur3.Sum32([]byte(term))))
}

// bucketOf maps a signed hash to its bucket and sign. math.MinInt32 has no
// absolute value in 32 bits and gets a fixed in-range bucket.
func (s *Space) bucketOf(h int32) (int, float64) {
	var index int
	if h == math.MinInt32 {
		index = int((int64(math.MaxInt32) - int64(s.features-1)) % int64(s.features))
	} else {
		abs := int64(h)
		if abs < 0 {
			abs = -abs
		}
		index = int(abs % int64(s.features))
	}
	sign := 1.0
	if h < 0 {
		sign = -1.0
	}
	return index, sign
}

func (s *Space) vectorize(text string) Vector {
	grams := NGrams(s.Tokens(text))
	if len(grams) == 0 {
		return Vector{}
	}
	counts := make(map[int]float64, len(grams))
	for _, g := range grams {
		idx, sign := s.Bucket(g)
		counts[idx] += sign
	}
	return fromCounts(counts).Normalized()
}

func lower(s string) string {
	return strings.ToLower(s)
}
