package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVectorIndexRejectsEmpty(t *testing.T) {
	_, err := NewVectorIndex(nil)
	assert.ErrorIs(t, err, ErrSearch)

	_, err = NewVectorIndex([][]float32{})
	assert.ErrorIs(t, err, ErrSearch)
}

func TestNewVectorIndexRejectsInconsistentDimensions(t *testing.T) {
	_, err := NewVectorIndex([][]float32{
		{1, 0, 0},
		{1, 0},
	})
	assert.ErrorIs(t, err, ErrSearch)
}

func TestNewVectorIndexRejectsZeroDimension(t *testing.T) {
	_, err := NewVectorIndex([][]float32{{}})
	assert.ErrorIs(t, err, ErrSearch)
}

func TestSearchFindsNearestVector(t *testing.T) {
	ix, err := NewVectorIndex([][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)

	best, score, err := ix.Search([]float32{0.1, 0.9, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, best)
	assert.Greater(t, score, 0.9)
}

func TestSearchIdenticalVectorScoresOne(t *testing.T) {
	ix, err := NewVectorIndex([][]float32{
		{0.3, 0.4, 0.5},
		{0, 1, 0},
	})
	require.NoError(t, err)

	best, score, err := ix.Search(ix.Vector(0))
	require.NoError(t, err)
	assert.Equal(t, 0, best)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSearchTieBreaksOnLowestID(t *testing.T) {
	ix, err := NewVectorIndex([][]float32{
		{0, 1, 0},
		{1, 0, 0},
		{1, 0, 0},
	})
	require.NoError(t, err)

	best, score, err := ix.Search([]float32{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, best, "tie must resolve to the first entry in load order")
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSearchRejectsDimensionMismatch(t *testing.T) {
	ix, err := NewVectorIndex([][]float32{{1, 0, 0}})
	require.NoError(t, err)

	_, _, err = ix.Search([]float32{1, 0})
	assert.ErrorIs(t, err, ErrSearch)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}), "zero vector must not divide by zero")
}
