// Package embedding maps text to fixed-length vectors for semantic comparison.
package embedding

import (
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"resume-matcher/internal/textnorm"
)

// DefaultDimensions is the vector length of the hashing embedder.
const DefaultDimensions = 512

// Embedder produces a fixed-length vector for a text. Implementations must be
// deterministic and safe for concurrent use.
type Embedder interface {
	Embed(text string) []float64
	Dimensions() int
}

// HashingEmbedder embeds stemmed unigrams and bigrams with the signed hashing
// trick. It holds no mutable state.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder returns an embedder with the given dimensionality;
// non-positive values fall back to DefaultDimensions.
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashingEmbedder{dims: dims}
}

// Dimensions returns the vector length.
func (e *HashingEmbedder) Dimensions() int {
	return e.dims
}

// Embed returns an L2-normalized vector; text without content terms yields the
// zero vector.
func (e *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dims)
	stems := textnorm.Stems(text)
	if len(stems) == 0 {
		return vec
	}

	counts := make(map[string]int, len(stems)*2)
	for i, s := range stems {
		counts[s]++
		if i > 0 {
			counts[stems[i-1]+" "+s]++
		}
	}
	// Sorted so collisions accumulate in a fixed order.
	features := make([]string, 0, len(counts))
	for f := range counts {
		features = append(features, f)
	}
	sort.Strings(features)
	for _, feature := range features {
		n := counts[feature]
		h := xxhash.Sum64String(feature)
		idx := int(h % uint64(e.dims))
		sign := 1.0
		if h&(1<<63) != 0 {
			sign = -1.0
		}
		vec[idx] += sign * (1 + math.Log(float64(n)))
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a zero
// vector or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	c := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}
