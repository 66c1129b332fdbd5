package model

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/cheggaaa/pb/v3"
	log "github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/bobonovski/govlda/corpus"
	"github.com/bobonovski/govlda/matrix"
	"github.com/bobonovski/govlda/sstable"
)

var ErrNoBeta = errors.New("model: topic word distribution not trained or loaded")

func init() {
	Register("lda", NewLDA)
}

// LDA fits latent Dirichlet allocation with variational EM: the E-step
// runs the per document Engine over the corpus in parallel, the M-step
// re-estimates beta from the expected topic word counts.
type LDA struct {
	data *corpus.Corpus
	opts Options

	beta   *Beta                 // topic-word distribution
	gamma  *matrix.Float64Matrix // doc-topic variational parameters
	states []*VariationalState   // last E-step, one per document
	bound  float64

	failures int // documents of the last E-step that hit the iteration cap
}

// NewLDA creates a variational LDA instance over dat.
func NewLDA(dat *corpus.Corpus, opts Options) (Model, error) {
	if dat == nil || len(dat.Docs) == 0 {
		return nil, invalidInput("corpus", "no documents")
	}
	if dat.VocabSize == 0 {
		return nil, invalidInput("corpus", "empty vocabulary")
	}
	if opts.TopicNum < 1 {
		return nil, invalidInput("topic number", "%d, need at least 1", opts.TopicNum)
	}
	if !(opts.Alpha > 0) {
		return nil, invalidInput("alpha", "%g, need a positive value", opts.Alpha)
	}
	if !(opts.Eta > 0) {
		return nil, invalidInput("eta", "%g, need a positive value", opts.Eta)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if _, err := NewEngine(nil, opts.Tolerance, opts.MaxIterations); err != nil {
		return nil, err
	}

	return &LDA{
		data:  dat,
		opts:  opts,
		gamma: matrix.NewFloat64Matrix(uint32(len(dat.Docs)), uint32(opts.TopicNum)),
		bound: math.Inf(-1),
	}, nil
}

// Train runs variational EM for at most iter iterations, starting from
// a random smoothed beta unless one was loaded. It stops early when the
// relative change of the likelihood bound drops below EMTolerance.
// A last E-step after the loop makes gamma, theta and the bound agree
// with the final beta.
func (this *LDA) Train(iter int) error {
	if this.beta == nil {
		rng := rand.New(rand.NewSource(this.opts.Seed))
		this.beta = RandomBeta(this.opts.TopicNum, int(this.data.VocabSize), rng)
	}

	prev := math.Inf(-1)
	for iterIdx := 0; iterIdx < iter; iterIdx += 1 {
		bound, err := this.EStep()
		if err != nil {
			return fmt.Errorf("e-step %d: %w", iterIdx, err)
		}
		log.Infof("iter %5d, likelihood %f", iterIdx, bound)

		if err := this.MStep(); err != nil {
			return fmt.Errorf("m-step %d: %w", iterIdx, err)
		}

		if !math.IsInf(prev, -1) {
			change := math.Abs((prev - bound) / prev)
			if change < this.opts.EMTolerance {
				log.Infof("converged at iter %d, relative change %e", iterIdx, change)
				break
			}
		}
		prev = bound
	}

	bound, err := this.EStep()
	if err != nil {
		return fmt.Errorf("final e-step: %w", err)
	}
	log.Infof("final likelihood %f", bound)
	return nil
}

// Infer runs a single E-step with the current beta.
func (this *LDA) Infer() error {
	if this.beta == nil {
		return ErrNoBeta
	}
	bound, err := this.EStep()
	if err != nil {
		return err
	}
	log.Infof("inference likelihood %f", bound)
	return nil
}

// EStep infers phi and gamma of every document with beta fixed. The
// documents are spread over Workers goroutines and beta is only read,
// the function returns after all of them finished. A document that
// hits the iteration cap keeps its last iterate; any other error fails
// the sweep.
func (this *LDA) EStep() (float64, error) {
	engine, err := NewEngine(this.beta, this.opts.Tolerance, this.opts.MaxIterations)
	if err != nil {
		return 0, err
	}

	docs := this.data.Docs
	states := make([]*VariationalState, len(docs))
	errs := make([]error, len(docs))

	bar := pb.New(len(docs))
	if !this.opts.Progress {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	jobs := make(chan int, this.opts.Workers)
	wg := sync.WaitGroup{}
	for w := 0; w < this.opts.Workers; w += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				states[d], errs[d] = this.inferDoc(engine, docs[d])
				bar.Increment()
			}
		}()
	}
	for d := range docs {
		jobs <- d
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	failures := 0
	for d, err := range errs {
		if err == nil {
			continue
		}
		var cf *ConvergenceFailure
		if errors.As(err, &cf) {
			failures += 1
			log.V(1).Infof("document %d: %v", docs[d].Id, err)
			continue
		}
		return 0, fmt.Errorf("document %d: %w", docs[d].Id, err)
	}
	if failures > 0 {
		log.Warningf("%d of %d documents did not converge", failures, len(docs))
	}

	bound := 0.0
	for d, s := range states {
		copy(this.gamma.RowView(uint32(d)), s.gamma)
		bound += LikelihoodBound(s, this.beta)
	}
	this.states = states
	this.bound = bound
	this.failures = failures
	return bound, nil
}

func (this *LDA) inferDoc(engine *Engine, doc *corpus.Document) (*VariationalState, error) {
	state, err := NewVariationalStateFromWordCounts(doc.Words, this.data.VocabSize,
		this.opts.TopicNum, this.opts.Alpha)
	if err != nil {
		return nil, err
	}
	return state, engine.Run(state)
}

// MStep re-estimates beta from the phi of the last E-step:
// beta[i, w] is proportional to eta + sum_d count(d, w) * phi_d[w, i].
func (this *LDA) MStep() error {
	if this.states == nil {
		return errors.New("model: m-step before e-step")
	}

	k, v := this.opts.TopicNum, int(this.data.VocabSize)
	ss := mat.NewDense(k, v, nil)
	for _, s := range this.states {
		for n, slot := range s.slots {
			cnt := float64(slot.Count)
			for i, p := range s.phi.RowView(uint32(n)) {
				w := int(slot.Term)
				ss.Set(i, w, ss.At(i, w)+cnt*p)
			}
		}
	}
	for i := 0; i < k; i += 1 {
		row := ss.RawRowView(i)
		floats.AddConst(this.opts.Eta, row)
		floats.Scale(1/floats.Sum(row), row)
	}

	beta, err := NewBeta(ss)
	if err != nil {
		return err
	}
	this.beta = beta
	return nil
}

func (this *LDA) Beta() *Beta { return this.beta }

func (this *LDA) Bound() float64 { return this.bound }

// Failures is the number of documents of the last E-step that stopped
// at the iteration cap.
func (this *LDA) Failures() int { return this.failures }

// States returns the per document states of the last E-step in corpus
// order.
func (this *LDA) States() []*VariationalState { return this.states }

// compute the posterior mean of the document-topic mixture,
// gamma normalized per document
func (this *LDA) Theta() *matrix.Float64Matrix {
	theta := this.gamma.Clone()
	docNum, _ := theta.Shape()
	for d := uint32(0); d < docNum; d += 1 {
		row := theta.RowView(d)
		if sum := floats.Sum(row); sum > 0 {
			floats.Scale(1/sum, row)
		}
	}
	return theta
}

// serialize document-topic distribution
func (this *LDA) SaveTheta(fn string) error {
	return sstable.Float64Serialize(this.Theta(), fn+".theta")
}

// serialize variational document-topic parameters
func (this *LDA) SaveGamma(fn string) error {
	return sstable.Float64Serialize(this.gamma, fn+".gamma")
}

// serialize topic-word distribution
func (this *LDA) SaveBeta(fn string) error {
	if this.beta == nil {
		return ErrNoBeta
	}
	return sstable.Float64Serialize(this.beta.Matrix(), fn+".beta")
}

// deserialize topic-word distribution
func (this *LDA) LoadBeta(fn string) error {
	m, err := sstable.Float64Deserialize(fn + ".beta")
	if err != nil {
		return err
	}
	beta, err := NewBeta(m)
	if err != nil {
		return err
	}
	if beta.NumTopics() != this.opts.TopicNum {
		return invalidInput("beta", "%d topics, model has %d", beta.NumTopics(), this.opts.TopicNum)
	}
	if beta.VocabSize() < int(this.data.VocabSize) {
		return invalidInput("beta", "vocabulary size %d, corpus needs %d",
			beta.VocabSize(), this.data.VocabSize)
	}
	this.beta = beta
	return nil
}
