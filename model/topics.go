package model

import (
	"sort"
	"strconv"

	"github.com/bobonovski/govlda/corpus"
)

type TermProb struct {
	Term string
	Prob float64
}

// TopTerms returns the n most probable terms of every topic, ties keep
// vocabulary order. A negative n yields empty lists.
func TopTerms(beta *Beta, vocab *corpus.Vocabulary, n int) [][]TermProb {
	v := beta.VocabSize()
	if vocab != nil && vocab.Len() < v {
		v = vocab.Len()
	}
	if n > v {
		n = v
	}
	if n < 0 {
		n = 0
	}

	topics := make([][]TermProb, beta.NumTopics())
	ids := make([]int, v)
	for i := range topics {
		for w := range ids {
			ids[w] = w
		}
		sort.SliceStable(ids, func(a, b int) bool {
			return beta.Prob(i, uint32(ids[a])) > beta.Prob(i, uint32(ids[b]))
		})

		top := make([]TermProb, n)
		for j := 0; j < n; j += 1 {
			top[j] = TermProb{Term: termName(vocab, ids[j]), Prob: beta.Prob(i, uint32(ids[j]))}
		}
		topics[i] = top
	}
	return topics
}

func termName(vocab *corpus.Vocabulary, id int) string {
	if vocab == nil {
		return strconv.Itoa(id)
	}
	return vocab.Term(uint32(id))
}
