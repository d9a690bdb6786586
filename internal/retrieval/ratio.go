package retrieval

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// PartialRatio scores, on a 0-100 scale, how well the shorter string matches
// its best-aligned window inside the longer one. Either side empty scores 0.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		window := string(long[i : i+len(short)])
		dist := levenshtein.ComputeDistance(s, window)
		score := 100 * (1 - float64(dist)/float64(len(short)))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}

	return int(math.Round(best))
}
