package model

import (
	"math"

	"github.com/bobonovski/govlda/corpus"
	"github.com/bobonovski/govlda/matrix"
	"github.com/bobonovski/govlda/util"
)

// Slot is one distinct term of a document together with how many times
// it occurs. A phi row belongs to a slot and covers all its occurrences.
type Slot struct {
	Term  uint32
	Count uint32
}

// VariationalState holds the variational parameters of one document:
// phi, an N_d x k matrix of topic responsibilities with one row per
// slot, and gamma, the k Dirichlet parameters of the topic proportions.
// It is owned by a single goroutine while inference runs.
type VariationalState struct {
	slots     []Slot
	length    uint64
	vocabSize uint32
	topicNum  int
	alpha     float64

	phi   *matrix.Float64Matrix
	gamma []float64

	converged  bool
	iterations int
	delta      float64
}

// NewVariationalState builds the state of the document whose column of
// the word-document matrix is counts. Terms with zero count get no slot.
func NewVariationalState(counts []uint32, vocab *corpus.Vocabulary,
	topicNum int, alpha float64) (*VariationalState, error) {
	if vocab == nil {
		return nil, invalidInput("vocabulary", "nil")
	}
	if len(counts) != vocab.Len() {
		return nil, invalidInput("counts", "length %d does not match vocabulary size %d",
			len(counts), vocab.Len())
	}

	slots := make([]Slot, 0)
	for term, cnt := range counts {
		if cnt > 0 {
			slots = append(slots, Slot{Term: uint32(term), Count: cnt})
		}
	}
	return newState(slots, util.VectorSum(counts), uint32(vocab.Len()), topicNum, alpha)
}

// NewVariationalStateFromWordCounts builds the state from the sparse
// bag of words produced by the corpus loader.
func NewVariationalStateFromWordCounts(wcs []*corpus.WordCount, vocabSize uint32,
	topicNum int, alpha float64) (*VariationalState, error) {
	words, err := corpus.MergeWordCounts(wcs)
	if err != nil {
		return nil, invalidInput("counts", "%v", err)
	}
	slots := make([]Slot, len(words))
	length := uint64(0)
	for i, wc := range words {
		if wc.WordId >= vocabSize {
			return nil, invalidInput("counts", "word id %d outside vocabulary of size %d",
				wc.WordId, vocabSize)
		}
		slots[i] = Slot{Term: wc.WordId, Count: wc.Count}
		length += uint64(wc.Count)
	}
	return newState(slots, length, vocabSize, topicNum, alpha)
}

func newState(slots []Slot, length uint64, vocabSize uint32,
	topicNum int, alpha float64) (*VariationalState, error) {
	if topicNum < 1 {
		return nil, invalidInput("topic number", "%d, need at least 1", topicNum)
	}
	if !(alpha > 0) || math.IsInf(alpha, 1) {
		return nil, invalidInput("alpha", "%g, need a positive finite value", alpha)
	}
	if length == 0 {
		return nil, invalidInput("document", "no word with nonzero count")
	}

	s := &VariationalState{
		slots:     slots,
		length:    length,
		vocabSize: vocabSize,
		topicNum:  topicNum,
		alpha:     alpha,
		phi:       matrix.NewFloat64Matrix(uint32(len(slots)), uint32(topicNum)),
		gamma:     make([]float64, topicNum),
	}
	s.phi.Fill(1.0 / float64(topicNum))
	g := alpha + float64(length)/float64(topicNum)
	for i := range s.gamma {
		s.gamma[i] = g
	}
	return s, nil
}

// Gamma returns a copy of the current gamma.
func (s *VariationalState) Gamma() []float64 {
	gamma := make([]float64, len(s.gamma))
	copy(gamma, s.gamma)
	return gamma
}

// Phi returns a copy of the current phi, one row per slot.
func (s *VariationalState) Phi() [][]float64 {
	phi := make([][]float64, len(s.slots))
	for n := range phi {
		phi[n] = s.phi.GetRow(uint32(n))
	}
	return phi
}

// PhiRow returns a copy of the phi row of slot n.
func (s *VariationalState) PhiRow(n int) []float64 {
	return s.phi.GetRow(uint32(n))
}

// Theta returns the mean of the variational Dirichlet, gamma / sum(gamma).
func (s *VariationalState) Theta() []float64 {
	theta := s.Gamma()
	sum := 0.0
	for _, g := range theta {
		sum += g
	}
	for i := range theta {
		theta[i] /= sum
	}
	return theta
}

func (s *VariationalState) Slots() []Slot {
	slots := make([]Slot, len(s.slots))
	copy(slots, s.slots)
	return slots
}

// Length is the number of tokens in the document.
func (s *VariationalState) Length() uint64 { return s.length }

func (s *VariationalState) NumTopics() int { return s.topicNum }

func (s *VariationalState) Alpha() float64 { return s.alpha }

// Converged reports whether the last run passed the convergence test,
// a converged state is no longer updated.
func (s *VariationalState) Converged() bool { return s.converged }

// Iterations is the number of coordinate ascent iterations run so far.
func (s *VariationalState) Iterations() int { return s.iterations }

// Delta is the gamma change of the last iteration.
func (s *VariationalState) Delta() float64 { return s.delta }
