package repository

import (
	"errors"
	"fmt"
	"math"
)

var ErrSearch = errors.New("similarity search failed")

// VectorIndex is the read-only embedding index: one vector per knowledge
// entry, same ordering as the store. Hundreds to low thousands of
// entries are expected, so search is a brute-force scan.
type VectorIndex struct {
	vectors [][]float32
	dim     int
}

// NewVectorIndex validates and wraps the corpus vectors. An empty corpus
// or inconsistent dimensions indicate a load-time bug and abort startup.
func NewVectorIndex(vectors [][]float32) (*VectorIndex, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty index", ErrSearch)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-dimension vectors", ErrSearch)
	}
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d", ErrSearch, i, len(vec), dim)
		}
	}
	return &VectorIndex{vectors: vectors, dim: dim}, nil
}

// Search returns the ordinal id of the nearest vector and its cosine
// similarity. Ties go to the lowest id, i.e. the first entry in load
// order.
func (ix *VectorIndex) Search(query []float32) (int, float64, error) {
	if len(query) != ix.dim {
		return 0, 0, fmt.Errorf("%w: query dimension %d, index dimension %d", ErrSearch, len(query), ix.dim)
	}

	best := 0
	bestScore := cosineSimilarity(query, ix.vectors[0])
	for i := 1; i < len(ix.vectors); i++ {
		if score := cosineSimilarity(query, ix.vectors[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best, bestScore, nil
}

// Vector returns the stored vector for an entry id.
func (ix *VectorIndex) Vector(id int) []float32 {
	return ix.vectors[id]
}

func (ix *VectorIndex) Len() int {
	return len(ix.vectors)
}

func (ix *VectorIndex) Dim() int {
	return ix.dim
}

func cosineSimilarity(a, b []float32) float64 {
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
