package intent

import (
	"math"

	"github.com/antzucaro/matchr"
)

// PartialRatio scores the best alignment of the shorter of a and b inside the
// longer one on a 0–100 scale.
//
// The shorter string is slid across every same-length window of the longer
// one; each window is scored as a Levenshtein edit-distance ratio
// (100 × (n − distance) / n, where n is the shorter length) and the maximum
// across all windows is returned. This tolerates both surrounding words
// ("please play rock now" vs "rock") and minor spelling variation
// ("hanoman" vs "hanuman").
//
// Comparison is rune-based. An empty input on either side scores 0.
func PartialRatio(a, b string) int {
	needle, hay := []rune(a), []rune(b)
	if len(needle) > len(hay) {
		needle, hay = hay, needle
	}
	if len(needle) == 0 {
		return 0
	}

	ns := string(needle)
	n := float64(len(needle))
	best := 0
	for start := 0; start+len(needle) <= len(hay); start++ {
		dist := matchr.Levenshtein(ns, string(hay[start:start+len(needle)]))
		score := int(math.Round(100 * (n - float64(dist)) / n))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}
