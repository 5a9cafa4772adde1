package corpus

import "math/rand"

// Split shuffles utts and returns (train, eval). Eval gets
// max(floor(n*ratio), minEval) items, so a corpus smaller than minEval goes
// entirely to eval. A nil rng uses the unseeded global source.
func Split(utts []Utterance, ratio float64, minEval int, rng *rand.Rand) (train, eval []Utterance) {
	shuffled := make([]Utterance, len(utts))
	copy(shuffled, utts)

	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	k := int(float64(len(shuffled)) * ratio)
	if k < minEval {
		k = minEval
	}
	if k > len(shuffled) {
		k = len(shuffled)
	}
	if k < 0 {
		k = 0
	}
	return shuffled[k:], shuffled[:k]
}
