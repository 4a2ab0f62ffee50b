package separation

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0, so an unseeded oracle is
// still reproducible.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// shuffleCandidates performs an in-place Fisher–Yates shuffle of c using rng.
func shuffleCandidates(rng *rand.Rand, c []Candidate) {
	for i := len(c) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		c[i], c[j] = c[j], c[i]
	}
}
