package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

type Corpus struct {
	VocabSize uint32
	DocNum    uint32
	Docs      []*Document
}

// Document is the sparse bag of words of one document, terms appear at
// most once and in ascending id order.
type Document struct {
	Id    uint32
	Words []*WordCount
}

type WordCount struct {
	WordId uint32
	Count  uint32
}

var ErrCountOverflow = errors.New("corpus: merged word count does not fit in uint32")

// Length returns the number of tokens in the document.
func (d *Document) Length() uint64 {
	total := uint64(0)
	for _, wc := range d.Words {
		total += uint64(wc.Count)
	}
	return total
}

// MergeWordCounts sums duplicate word ids, drops zero counts and sorts
// the result by word id. A merged count above math.MaxUint32 is an
// ErrCountOverflow.
func MergeWordCounts(wcs []*WordCount) ([]*WordCount, error) {
	counts := make(map[uint32]uint64, len(wcs))
	for _, wc := range wcs {
		if wc == nil || wc.Count == 0 {
			continue
		}
		counts[wc.WordId] += uint64(wc.Count)
	}

	merged := make([]*WordCount, 0, len(counts))
	for id, cnt := range counts {
		if cnt > math.MaxUint32 {
			return nil, fmt.Errorf("word %d: %w", id, ErrCountOverflow)
		}
		merged = append(merged, &WordCount{WordId: id, Count: uint32(cnt)})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].WordId < merged[j].WordId
	})
	return merged, nil
}

// Load reads training data from file, the file format should be like:
// [docId wordId:wordCount wordId:wordCount ... wordId:wordCount]
// Lines that are malformed or carry no nonzero count are logged and
// skipped, an id or count that cannot be parsed to uint32 is an error.
func (this *Corpus) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("corpus: open %s: %w", fn, err)
	}
	defer f.Close()

	if err := this.Read(f); err != nil {
		return fmt.Errorf("corpus: load %s: %w", fn, err)
	}
	return nil
}

// Read parses documents from r in the Load format and appends them.
func (this *Corpus) Read(r io.Reader) error {
	vocabMaxId := uint32(0)
	if this.VocabSize > 0 {
		vocabMaxId = this.VocabSize - 1
	}

	lineNum := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNum += 1
		doc := strings.TrimSpace(scanner.Text())
		vals := strings.Fields(doc)
		if len(vals) < 2 {
			if len(doc) > 0 {
				log.Warningf("bad document at line %d: %s", lineNum, doc)
			}
			continue
		}

		docId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return fmt.Errorf("line %d: doc id: %w", lineNum, err)
		}

		var wcs []*WordCount
		for _, kv := range vals[1:] {
			wc := strings.Split(kv, ":")
			if len(wc) != 2 {
				log.Warningf("bad word count at line %d: %s", lineNum, kv)
				continue
			}

			wordId, err := strconv.ParseUint(wc[0], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: word id: %w", lineNum, err)
			}

			count, err := strconv.ParseUint(wc[1], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: word count: %w", lineNum, err)
			}

			wcs = append(wcs, &WordCount{
				WordId: uint32(wordId),
				Count:  uint32(count),
			})
		}

		words, err := MergeWordCounts(wcs)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(words) == 0 {
			log.Warningf("empty document %d at line %d skipped", docId, lineNum)
			continue
		}
		if last := words[len(words)-1].WordId; last > vocabMaxId {
			vocabMaxId = last
		}

		this.Docs = append(this.Docs, &Document{Id: uint32(docId), Words: words})
		this.DocNum += uint32(1)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if this.DocNum > 0 {
		this.VocabSize = vocabMaxId + 1
	}

	log.Infof("number of documents %d", this.DocNum)
	log.Infof("vocabulary size %d", this.VocabSize)
	return nil
}

// Restrict checks every word id against the vocabulary and fixes the
// vocabulary size to the vocabulary length.
func (this *Corpus) Restrict(vocab *Vocabulary) error {
	size := uint32(vocab.Len())
	for _, doc := range this.Docs {
		for _, wc := range doc.Words {
			if wc.WordId >= size {
				return fmt.Errorf("corpus: document %d uses word id %d outside vocabulary of size %d",
					doc.Id, wc.WordId, size)
			}
		}
	}
	this.VocabSize = size
	return nil
}
