package model

import (
	"fmt"

	"github.com/bobonovski/govlda/corpus"
	"github.com/bobonovski/govlda/matrix"
)

var constructors = make(map[string]ModelCtor)

// Options carries the settings shared by every registered model.
type Options struct {
	TopicNum int
	Alpha    float64 // document topic Dirichlet prior
	Eta      float64 // topic word smoothing used by the M-step

	Tolerance     float64 // per document gamma tolerance
	MaxIterations int     // per document iteration cap
	EMTolerance   float64 // relative bound change that stops training

	Workers  int
	Seed     int64
	Progress bool
}

// the common interface topic models should follow
type Model interface {
	// train model for at most iter EM iterations
	Train(iter int) error
	// infer the topics of the corpus documents with the current beta
	Infer() error
	// get topic-word distribution
	Beta() *Beta
	// get doc-topic distribution
	Theta() *matrix.Float64Matrix
	// likelihood bound of the last E-step
	Bound() float64
	// serialize posterior document topic distribution
	SaveTheta(fn string) error
	// serialize variational document topic parameters
	SaveGamma(fn string) error
	// serialize topic word distribution
	SaveBeta(fn string) error
	// deserialize topic word distribution
	LoadBeta(fn string) error
}

// new topic models should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(dat *corpus.Corpus, opts Options) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
