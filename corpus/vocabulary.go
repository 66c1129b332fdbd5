package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrEmptyVocabulary = errors.New("corpus: empty vocabulary")

// Vocabulary is the ordered list of distinct terms, the position of a
// term is its word id. It is never modified after construction and can
// be shared between goroutines.
type Vocabulary struct {
	terms []string
	index map[string]uint32
}

func NewVocabulary(terms []string) (*Vocabulary, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	v := &Vocabulary{
		terms: make([]string, len(terms)),
		index: make(map[string]uint32, len(terms)),
	}
	for i, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("corpus: empty term at position %d", i)
		}
		if prev, ok := v.index[term]; ok {
			return nil, fmt.Errorf("corpus: duplicate term %q at positions %d and %d", term, prev, i)
		}
		v.terms[i] = term
		v.index[term] = uint32(i)
	}
	return v, nil
}

// LoadVocabulary reads a term list file with one term per line,
// blank lines are ignored.
func LoadVocabulary(fn string) (*Vocabulary, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", fn, err)
	}
	defer f.Close()
	return ReadVocabulary(f)
}

func ReadVocabulary(r io.Reader) (*Vocabulary, error) {
	var terms []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewVocabulary(terms)
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Term returns the term with word id id.
func (v *Vocabulary) Term(id uint32) string {
	return v.terms[id]
}

// Index returns the word id of term.
func (v *Vocabulary) Index(term string) (uint32, bool) {
	id, ok := v.index[term]
	return id, ok
}

// Counts converts a term -> count map into a count vector indexed by
// word id, terms outside the vocabulary are an error.
func (v *Vocabulary) Counts(doc map[string]uint32) ([]uint32, error) {
	counts := make([]uint32, len(v.terms))
	for term, cnt := range doc {
		id, ok := v.index[term]
		if !ok {
			return nil, fmt.Errorf("corpus: term %q not in vocabulary", term)
		}
		counts[id] += cnt
	}
	return counts, nil
}
