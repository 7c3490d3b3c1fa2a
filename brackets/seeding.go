package brackets

import "math/rand"

// Shuffle returns a uniform random permutation of players using
// Fisher-Yates. The input slice is left untouched; callers that want
// explicit seeding pass their order straight to the generator and skip the
// shuffle entirely.
func Shuffle(players []string, rnd *rand.Rand) []string {
	out := make([]string, len(players))
	copy(out, players)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
