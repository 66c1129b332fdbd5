package model

import (
	"errors"
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mathext"

	"github.com/bobonovski/govlda/corpus"
	"github.com/bobonovski/govlda/util"
)

// Engine runs mean-field coordinate ascent for one document at a time.
// An Engine carries no per-document state, one instance may serve many
// goroutines as long as Trace is safe for concurrent use.
type Engine struct {
	beta          *Beta
	tolerance     float64
	maxIterations int

	// Trace, when set, is called after every gamma update.
	Trace func(iteration int, state *VariationalState, delta float64)
}

// NewEngine creates an engine using the topic-word table beta. A nil
// beta makes the engine estimate P(word | topic) inside the document
// from the current phi, which is only a rough single document proxy.
func NewEngine(beta *Beta, tolerance float64, maxIterations int) (*Engine, error) {
	if !(tolerance > 0) {
		return nil, invalidInput("tolerance", "%g, need a positive value", tolerance)
	}
	if maxIterations < 1 {
		return nil, invalidInput("max iterations", "%d, need at least 1", maxIterations)
	}
	return &Engine{
		beta:          beta,
		tolerance:     tolerance,
		maxIterations: maxIterations,
	}, nil
}

func (e *Engine) Beta() *Beta { return e.beta }

// Run updates phi then gamma until the largest gamma change of an
// iteration drops below the tolerance. It returns a *ConvergenceFailure
// when the iteration cap is hit first and a *DegenerateDistributionError
// when a phi row has no mass; in the latter case phi and gamma keep the
// values of the previous iteration.
//
// A converged state is frozen: Run returns nil without touching it, even
// when e has a different Beta or tolerance than the engine that converged
// it. Build a new state to infer the document again under another Beta.
func (e *Engine) Run(s *VariationalState) error {
	if s == nil {
		return invalidInput("state", "nil")
	}
	if s.converged {
		return nil
	}
	if err := e.check(s); err != nil {
		return err
	}

	k := s.topicNum
	logs := make([]float64, k)
	elogTheta := make([]float64, k)
	gammaOld := make([]float64, k)
	next := s.phi.Clone()

	var emp *empiricalBeta
	if e.beta == nil {
		emp = newEmpiricalBeta(k)
	}

	for iter := 1; iter <= e.maxIterations; iter += 1 {
		copy(gammaOld, s.gamma)
		expectedLogTheta(elogTheta, s.gamma)
		if emp != nil {
			emp.update(s)
		}

		// phi update, every row sees the same gamma
		for n, slot := range s.slots {
			for i := 0; i < k; i += 1 {
				if emp != nil {
					logs[i] = elogTheta[i] + emp.logProb(s, n, i)
				} else {
					logs[i] = elogTheta[i] + e.beta.LogProb(i, slot.Term)
				}
			}
			lse := util.LogNormalize(next.RowView(uint32(n)), logs)
			if math.IsInf(lse, -1) || math.IsNaN(lse) {
				return &DegenerateDistributionError{
					Slot:      n,
					Term:      slot.Term,
					Iteration: iter,
				}
			}
		}
		s.phi, next = next, s.phi

		s.updateGamma()
		s.iterations += 1
		s.delta = util.MaxAbsDiff(s.gamma, gammaOld)

		if log.V(2) {
			log.Infof("iter %5d, delta %e, gamma %v", iter, s.delta, s.gamma)
		}
		if e.Trace != nil {
			e.Trace(iter, s, s.delta)
		}

		if s.delta < e.tolerance {
			s.converged = true
			return nil
		}
	}

	return &ConvergenceFailure{
		Iterations: s.iterations,
		Delta:      s.delta,
		State:      s,
	}
}

func (e *Engine) check(s *VariationalState) error {
	if e.beta == nil {
		return nil
	}
	if e.beta.NumTopics() != s.topicNum {
		return invalidInput("beta", "%d topics, state has %d", e.beta.NumTopics(), s.topicNum)
	}
	for _, slot := range s.slots {
		if int(slot.Term) >= e.beta.VocabSize() {
			return invalidInput("beta", "vocabulary size %d does not cover term %d",
				e.beta.VocabSize(), slot.Term)
		}
	}
	return nil
}

// InferDocument builds the state of the document counts and runs the
// engine on it. The state is returned along with a *ConvergenceFailure
// so that callers may keep the approximate result.
func InferDocument(counts []uint32, vocab *corpus.Vocabulary, topicNum int, alpha float64,
	beta *Beta, tolerance float64, maxIterations int) (*VariationalState, error) {
	engine, err := NewEngine(beta, tolerance, maxIterations)
	if err != nil {
		return nil, err
	}
	state, err := NewVariationalState(counts, vocab, topicNum, alpha)
	if err != nil {
		return nil, err
	}
	if err := engine.Run(state); err != nil {
		var cf *ConvergenceFailure
		if errors.As(err, &cf) {
			return state, err
		}
		return nil, err
	}
	return state, nil
}

// gamma_i = alpha + sum_n count_n * phi[n, i]
func (s *VariationalState) updateGamma() {
	for i := range s.gamma {
		s.gamma[i] = s.alpha
	}
	for n, slot := range s.slots {
		cnt := float64(slot.Count)
		for i, p := range s.phi.RowView(uint32(n)) {
			s.gamma[i] += cnt * p
		}
	}
}

// E[log theta_i | gamma] = psi(gamma_i) - psi(sum_j gamma_j)
func expectedLogTheta(dst, gamma []float64) {
	sum := 0.0
	for _, g := range gamma {
		sum += g
	}
	psiSum := mathext.Digamma(sum)
	for i, g := range gamma {
		dst[i] = mathext.Digamma(g) - psiSum
	}
}

// empiricalBeta estimates P(w_n | topic i) from the document alone as
// the phi mass of slot n on topic i over the total mass of topic i.
type empiricalBeta struct {
	logMass []float64
}

func newEmpiricalBeta(topicNum int) *empiricalBeta {
	return &empiricalBeta{logMass: make([]float64, topicNum)}
}

func (b *empiricalBeta) update(s *VariationalState) {
	mass := make([]float64, len(b.logMass))
	for n, slot := range s.slots {
		cnt := float64(slot.Count)
		for i, p := range s.phi.RowView(uint32(n)) {
			mass[i] += cnt * p
		}
	}
	for i, m := range mass {
		b.logMass[i] = math.Log(m)
	}
}

func (b *empiricalBeta) logProb(s *VariationalState, n, topic int) float64 {
	w := float64(s.slots[n].Count) * s.phi.Get(uint32(n), uint32(topic))
	if w == 0 {
		return math.Inf(-1)
	}
	return math.Log(w) - b.logMass[topic]
}
