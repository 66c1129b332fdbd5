package model

import "github.com/bobonovski/govlda/corpus"

// wordCounts builds a bag of words from id, count pairs.
func wordCounts(pairs ...uint32) []*corpus.WordCount {
	wcs := make([]*corpus.WordCount, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		wcs = append(wcs, &corpus.WordCount{WordId: pairs[i], Count: pairs[i+1]})
	}
	return wcs
}
