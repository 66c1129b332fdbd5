package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/govlda/corpus"
)

func newTestVocab(t *testing.T) *corpus.Vocabulary {
	vocab, err := corpus.NewVocabulary([]string{"cat", "dog", "fish"})
	require.NoError(t, err)
	return vocab
}

func TestNewVariationalState(t *testing.T) {
	s, err := NewVariationalState([]uint32{2, 1, 0}, newTestVocab(t), 2, 0.1)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), s.Length())
	assert.Equal(t, 2, s.NumTopics())
	assert.Equal(t, []Slot{{Term: 0, Count: 2}, {Term: 1, Count: 1}}, s.Slots())
	assert.Equal(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}}, s.Phi())
	assert.InDeltaSlice(t, []float64{1.6, 1.6}, s.Gamma(), 1e-12)
	assert.False(t, s.Converged())
	assert.Equal(t, 0, s.Iterations())
}

func TestStateAccessorsCopy(t *testing.T) {
	s, err := NewVariationalState([]uint32{2, 1, 0}, newTestVocab(t), 2, 0.1)
	require.NoError(t, err)

	g := s.Gamma()
	g[0] = 100
	row := s.PhiRow(0)
	row[0] = 100
	phi := s.Phi()
	phi[1][1] = 100

	assert.InDeltaSlice(t, []float64{1.6, 1.6}, s.Gamma(), 1e-12)
	assert.Equal(t, []float64{0.5, 0.5}, s.PhiRow(0))
	assert.Equal(t, []float64{0.5, 0.5}, s.PhiRow(1))
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, s.Theta(), 1e-12)
}

func TestNewVariationalStateSingleTopic(t *testing.T) {
	s, err := NewVariationalState([]uint32{2, 1, 0}, newTestVocab(t), 1, 0.1)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1}, {1}}, s.Phi())
	assert.InDeltaSlice(t, []float64{3.1}, s.Gamma(), 1e-12)
}

func TestNewVariationalStateInvalid(t *testing.T) {
	vocab := newTestVocab(t)
	tests := []struct {
		name   string
		counts []uint32
		vocab  *corpus.Vocabulary
		k      int
		alpha  float64
	}{
		{"empty document", []uint32{0, 0, 0}, vocab, 2, 0.1},
		{"no topics", []uint32{1, 0, 0}, vocab, 0, 0.1},
		{"negative topics", []uint32{1, 0, 0}, vocab, -1, 0.1},
		{"zero alpha", []uint32{1, 0, 0}, vocab, 2, 0},
		{"negative alpha", []uint32{1, 0, 0}, vocab, 2, -1},
		{"nan alpha", []uint32{1, 0, 0}, vocab, 2, math.NaN()},
		{"length mismatch", []uint32{1, 0}, vocab, 2, 0.1},
		{"nil vocabulary", []uint32{1, 0, 0}, nil, 2, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewVariationalState(tt.counts, tt.vocab, tt.k, tt.alpha)
			assert.Nil(t, s)
			var invalid *InvalidInputError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestNewVariationalStateFromWordCounts(t *testing.T) {
	wcs := []*corpus.WordCount{
		{WordId: 2, Count: 1},
		{WordId: 0, Count: 1},
		{WordId: 1, Count: 0},
		{WordId: 0, Count: 2},
	}
	s, err := NewVariationalStateFromWordCounts(wcs, 3, 3, 0.5)
	require.NoError(t, err)

	assert.Equal(t, uint64(4), s.Length())
	assert.Equal(t, []Slot{{Term: 0, Count: 3}, {Term: 2, Count: 1}}, s.Slots())
	assert.InDeltaSlice(t, []float64{0.5 + 4.0/3, 0.5 + 4.0/3, 0.5 + 4.0/3}, s.Gamma(), 1e-12)

	_, err = NewVariationalStateFromWordCounts(wcs, 2, 3, 0.5)
	var invalid *InvalidInputError
	assert.True(t, errors.As(err, &invalid))

	_, err = NewVariationalStateFromWordCounts([]*corpus.WordCount{{WordId: 1, Count: 0}}, 3, 3, 0.5)
	assert.True(t, errors.As(err, &invalid))
}

func TestNewVariationalStateLargeCounts(t *testing.T) {
	vocab := newTestVocab(t)
	s, err := NewVariationalState([]uint32{math.MaxUint32, 1, 0}, vocab, 2, 0.1)
	require.NoError(t, err)

	// the total exceeds uint32 and must not wrap to zero
	assert.Equal(t, uint64(math.MaxUint32)+1, s.Length())
	want := 0.1 + float64(uint64(math.MaxUint32)+1)/2
	assert.InDeltaSlice(t, []float64{want, want}, s.Gamma(), 1e-6)

	s, err = NewVariationalStateFromWordCounts([]*corpus.WordCount{
		{WordId: 0, Count: math.MaxUint32},
		{WordId: 1, Count: 1},
	}, 3, 2, 0.1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint32)+1, s.Length())

	// a merged duplicate that cannot be stored is rejected, not wrapped
	_, err = NewVariationalStateFromWordCounts([]*corpus.WordCount{
		{WordId: 0, Count: math.MaxUint32},
		{WordId: 0, Count: 1},
	}, 3, 2, 0.1)
	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "counts", invalid.Arg)
	assert.Contains(t, invalid.Reason, corpus.ErrCountOverflow.Error())
}
