package corpus

import (
	"github.com/bobonovski/govlda/matrix"
)

// WordDocMatrix holds how many times term t appears in document d at
// [t, d]. Documents are numbered by their position in the corpus.
type WordDocMatrix struct {
	*matrix.Uint32Matrix
	DocIds []uint32
}

func NewWordDocMatrix(c *Corpus) *WordDocMatrix {
	m := &WordDocMatrix{
		Uint32Matrix: matrix.NewUint32Matrix(c.VocabSize, uint32(len(c.Docs))),
		DocIds:       make([]uint32, len(c.Docs)),
	}
	for d, doc := range c.Docs {
		m.DocIds[d] = doc.Id
		for _, wc := range doc.Words {
			m.Incr(wc.WordId, uint32(d), wc.Count)
		}
	}
	return m
}

// Column returns the count vector of the d-th document.
func (m *WordDocMatrix) Column(d int) []uint32 {
	return m.GetCol(uint32(d))
}
