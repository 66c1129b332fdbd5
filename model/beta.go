package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const betaRowTolerance = 1e-6

// Beta is the corpus level topic-word table, row i is P(word | topic i).
// The log table is cached since the E-step works in log space. A Beta is
// read-only once built and is shared by all documents of a sweep.
type Beta struct {
	prob    *mat.Dense
	logProb *mat.Dense
}

// NewBeta validates prob, a k x V row-stochastic matrix, and takes a
// copy of it. Zero entries are allowed.
func NewBeta(prob mat.Matrix) (*Beta, error) {
	k, v := prob.Dims()
	if k < 1 || v < 1 {
		return nil, invalidInput("beta", "shape %dx%d", k, v)
	}
	p := mat.DenseCopyOf(prob)
	for i := 0; i < k; i += 1 {
		row := p.RawRowView(i)
		for w, val := range row {
			if val < 0 || math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, invalidInput("beta", "entry [%d, %d] = %g", i, w, val)
			}
		}
		if sum := floats.Sum(row); math.Abs(sum-1) > betaRowTolerance {
			return nil, invalidInput("beta", "row %d sums to %g", i, sum)
		}
	}

	lp := mat.NewDense(k, v, nil)
	lp.Apply(func(_, _ int, val float64) float64 { return math.Log(val) }, p)
	return &Beta{prob: p, logProb: lp}, nil
}

// NewLogBeta builds a Beta from log probabilities. Every row is
// renormalized in log space, so probabilities far below the smallest
// float64 survive in the log table.
func NewLogBeta(logProb mat.Matrix) (*Beta, error) {
	k, v := logProb.Dims()
	if k < 1 || v < 1 {
		return nil, invalidInput("beta", "shape %dx%d", k, v)
	}
	lp := mat.DenseCopyOf(logProb)
	for i := 0; i < k; i += 1 {
		row := lp.RawRowView(i)
		for w, val := range row {
			if math.IsNaN(val) || math.IsInf(val, 1) {
				return nil, invalidInput("beta", "log entry [%d, %d] = %g", i, w, val)
			}
		}
		lse := floats.LogSumExp(row)
		if math.IsInf(lse, -1) {
			return nil, invalidInput("beta", "row %d has no mass", i)
		}
		floats.AddConst(-lse, row)
	}

	p := mat.NewDense(k, v, nil)
	p.Apply(func(_, _ int, val float64) float64 { return math.Exp(val) }, lp)
	return &Beta{prob: p, logProb: lp}, nil
}

// RandomBeta draws a smoothed random table: every entry is 1/V plus a
// uniform draw, then rows are normalized.
func RandomBeta(topicNum, vocabSize int, rng *rand.Rand) *Beta {
	p := mat.NewDense(topicNum, vocabSize, nil)
	for i := 0; i < topicNum; i += 1 {
		row := p.RawRowView(i)
		for w := range row {
			row[w] = 1.0/float64(vocabSize) + rng.Float64()
		}
		floats.Scale(1/floats.Sum(row), row)
	}
	b, err := NewBeta(p)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Beta) NumTopics() int {
	k, _ := b.prob.Dims()
	return k
}

func (b *Beta) VocabSize() int {
	_, v := b.prob.Dims()
	return v
}

// Prob returns P(word = term | topic).
func (b *Beta) Prob(topic int, term uint32) float64 {
	return b.prob.At(topic, int(term))
}

// LogProb returns log P(word = term | topic).
func (b *Beta) LogProb(topic int, term uint32) float64 {
	return b.logProb.At(topic, int(term))
}

// Matrix returns the probability table, callers must not modify it.
func (b *Beta) Matrix() mat.Matrix {
	return b.prob
}
