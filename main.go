package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/bobonovski/govlda/config"
	"github.com/bobonovski/govlda/corpus"
	"github.com/bobonovski/govlda/model"
)

var (
	configFile = flag.String("config", "", "yaml run configuration, flags override it")
	input      = flag.String("input_file", "", "input training file")
	vocabFile  = flag.String("vocab_file", "", "term list file, one term per line")
	topicModel = flag.String("model", "lda", "model type")
	alpha      = flag.Float64("alpha", 0.1, "document-topic Dirichlet prior")
	beta       = flag.Float64("beta", 0.01, "topic-word smoothing of the m-step")
	topicNum   = flag.Int("k", 20, "number of topics")
	iteration  = flag.Int("iter", 10, "number of em iterations")
	tolerance  = flag.Float64("tol", 1e-6, "per document gamma tolerance")
	maxIter    = flag.Int("max_iter", 100, "per document iteration cap")
	emTol      = flag.Float64("em_tol", 1e-5, "relative likelihood change that stops training")
	workers    = flag.Int("workers", 4, "number of inference goroutines")
	output     = flag.String("output", "", "output file prefix")
	loadBeta   = flag.String("load_beta", "", "prefix of a saved topic-word table")
	inferOnly  = flag.Bool("infer", false, "only infer document topics with the loaded table")
	topTerms   = flag.Int("top", 10, "number of terms reported per topic")
)

// loadConfig builds the run configuration from the optional yaml file
// and the flags the user set explicitly.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return nil, err
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	override := func(name string, apply func()) {
		if set[name] || *configFile == "" {
			apply()
		}
	}
	override("input_file", func() { cfg.InputFile = *input })
	override("vocab_file", func() { cfg.VocabFile = *vocabFile })
	override("model", func() { cfg.Model = *topicModel })
	override("alpha", func() { cfg.Alpha = *alpha })
	override("beta", func() { cfg.Eta = *beta })
	override("k", func() { cfg.Topics = *topicNum })
	override("iter", func() { cfg.EM.Iterations = *iteration })
	override("tol", func() { cfg.Inference.Tolerance = *tolerance })
	override("max_iter", func() { cfg.Inference.MaxIterations = *maxIter })
	override("em_tol", func() { cfg.EM.Tolerance = *emTol })
	override("workers", func() { cfg.Workers = *workers })
	override("output", func() { cfg.Output = *output })
	override("top", func() { cfg.TopTerms = *topTerms })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.InputFile == "" {
		return fmt.Errorf("no input file")
	}

	runId := uuid.New().String()
	if cfg.Output == "" {
		cfg.Output = "lda-" + strings.Split(runId, "-")[0]
	}
	log.Infof("run %s, output prefix %s", runId, cfg.Output)
	// keep the merged configuration next to the outputs so the run can be repeated
	if err := cfg.Save(cfg.Output + ".yaml"); err != nil {
		return err
	}

	// read training data
	data := &corpus.Corpus{}
	if err := data.Load(cfg.InputFile); err != nil {
		return err
	}
	var vocab *corpus.Vocabulary
	if cfg.VocabFile != "" {
		if vocab, err = corpus.LoadVocabulary(cfg.VocabFile); err != nil {
			return err
		}
		if err := data.Restrict(vocab); err != nil {
			return err
		}
	}

	// init model
	ctor, err := model.GetModel(cfg.Model)
	if err != nil {
		return err
	}
	m, err := ctor(data, model.Options{
		TopicNum:      cfg.Topics,
		Alpha:         cfg.Alpha,
		Eta:           cfg.Eta,
		Tolerance:     cfg.Inference.Tolerance,
		MaxIterations: cfg.Inference.MaxIterations,
		EMTolerance:   cfg.EM.Tolerance,
		Workers:       cfg.Workers,
		Seed:          cfg.Seed,
		Progress:      cfg.Progress,
	})
	if err != nil {
		return err
	}

	if *loadBeta != "" {
		if err := m.LoadBeta(*loadBeta); err != nil {
			return err
		}
	}
	if *inferOnly {
		err = m.Infer()
	} else {
		err = m.Train(cfg.EM.Iterations)
	}
	if err != nil {
		return err
	}

	if err := m.SaveTheta(cfg.Output); err != nil {
		return err
	}
	if err := m.SaveGamma(cfg.Output); err != nil {
		return err
	}
	if !*inferOnly {
		if err := m.SaveBeta(cfg.Output); err != nil {
			return err
		}
	}

	for i, terms := range model.TopTerms(m.Beta(), vocab, cfg.TopTerms) {
		words := make([]string, len(terms))
		for j, tp := range terms {
			words[j] = fmt.Sprintf("%s:%.4f", tp.Term, tp.Prob)
		}
		fmt.Printf("topic %d\t%s\n", i, strings.Join(words, " "))
	}
	return nil
}

func main() {
	flag.Parse()
	defer log.Flush()

	if err := run(); err != nil {
		log.Errorf("%v", err)
		log.Flush()
		os.Exit(1)
	}
}
