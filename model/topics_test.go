package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopTerms(t *testing.T) {
	beta := newTestBeta(t, 2, 3, []float64{
		0.8, 0.1, 0.1,
		0.1, 0.1, 0.8,
	})

	top := TopTerms(beta, newTestVocab(t), 2)
	require.Len(t, top, 2)
	assert.Equal(t, []TermProb{{"cat", 0.8}, {"dog", 0.1}}, top[0])
	assert.Equal(t, []TermProb{{"fish", 0.8}, {"cat", 0.1}}, top[1])

	top = TopTerms(beta, nil, 5)
	assert.Len(t, top[0], 3)
	assert.Equal(t, "0", top[0][0].Term)
}

func TestTopTermsNegative(t *testing.T) {
	beta := newTestBeta(t, 2, 3, []float64{
		0.8, 0.1, 0.1,
		0.1, 0.1, 0.8,
	})

	var top [][]TermProb
	require.NotPanics(t, func() { top = TopTerms(beta, newTestVocab(t), -1) })
	require.Len(t, top, 2)
	assert.Empty(t, top[0])
	assert.Empty(t, top[1])
}
