package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikelihoodBoundImproves(t *testing.T) {
	beta := newTestBeta(t, 2, 3, []float64{
		0.8, 0.1, 0.1,
		0.1, 0.1, 0.8,
	})
	s, err := NewVariationalState([]uint32{2, 1, 0}, newTestVocab(t), 2, 0.1)
	require.NoError(t, err)

	initial := LikelihoodBound(s, beta)
	engine, err := NewEngine(beta, 1e-8, 100)
	require.NoError(t, err)
	require.NoError(t, engine.Run(s))
	final := LikelihoodBound(s, beta)

	assert.False(t, math.IsNaN(final))
	assert.Greater(t, final, initial)

	// a lower bound of log p(w) = log sum over topic paths, which is
	// itself below zero
	assert.Less(t, final, 0.0)
}

func TestLikelihoodBoundSingleTopic(t *testing.T) {
	// with one topic the bound is exact: sum_n count_n * log beta[w_n]
	beta := newTestBeta(t, 1, 3, []float64{0.5, 0.3, 0.2})
	s, err := NewVariationalState([]uint32{2, 1, 0}, newTestVocab(t), 1, 0.1)
	require.NoError(t, err)

	expected := 2*math.Log(0.5) + math.Log(0.3)
	assert.InDelta(t, expected, LikelihoodBound(s, beta), 1e-9)
}
