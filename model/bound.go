package model

import "math"

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// LikelihoodBound computes the evidence lower bound of the document
// under the variational distribution of s:
//
//	E[log p(theta|alpha)] + E[log p(z|theta)] + E[log p(w|z,beta)]
//	  - E[log q(theta|gamma)] - E[log q(z|phi)]
//
// Slot terms are weighted by their counts. Entries with zero phi add
// nothing, so zero beta entries are harmless unless phi puts mass there.
func LikelihoodBound(s *VariationalState, beta *Beta) float64 {
	k := s.topicNum
	elog := make([]float64, k)
	expectedLogTheta(elog, s.gamma)

	gammaSum := 0.0
	for _, g := range s.gamma {
		gammaSum += g
	}

	// Dirichlet terms
	bound := lgamma(float64(k)*s.alpha) - float64(k)*lgamma(s.alpha) - lgamma(gammaSum)
	for i, g := range s.gamma {
		bound += (s.alpha-g)*elog[i] + lgamma(g)
	}

	// word terms
	for n, slot := range s.slots {
		cnt := float64(slot.Count)
		for i, p := range s.phi.RowView(uint32(n)) {
			if p <= 0 {
				continue
			}
			bound += cnt * p * (elog[i] + beta.LogProb(i, slot.Term) - math.Log(p))
		}
	}
	return bound
}
