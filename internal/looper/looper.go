// Package looper implements autocorrelation-based loop point detection
// over a decoded amplitude sequence.
package looper

const (
	// candidate offsets start at offsetStep and advance by offsetStep,
	// up to half the sequence length
	offsetStep = 100

	// deltas below this are considered matching points
	matchDelta = 10

	// candidates with fewer matching points are rejected regardless of score
	minMatches = 50
)

// Point describes a detected loop point.
type Point struct {
	Offset      int     // loop period in sequence indices
	Correlation float64 // normalized match score in [0,1]
	Matches     int     // number of matching points backing the score
}

// Detect searches for a repeating period in the sequence using windowed
// autocorrelation. Candidate offsets are scored by comparing each index
// against the index one offset later, the first candidate whose score
// exceeds the threshold is returned. The search is first-match, not
// best-match, and runs once per conversion.
func Detect(seq []byte, threshold float64) (Point, bool) {
	for offset := offsetStep; offset <= len(seq)/2; offset += offsetStep {
		score, matches := correlate(seq, offset)
		if matches < minMatches {
			continue
		}
		correlation := score / float64(matches)
		if correlation > threshold {
			return Point{
				Offset:      offset,
				Correlation: correlation,
				Matches:     matches,
			}, true
		}
	}
	return Point{}, false
}

// correlate scores one candidate offset: every index pair closer than
// matchDelta contributes (1 - |delta|/127)^2 to the score.
func correlate(seq []byte, offset int) (float64, int) {
	var score float64
	var matches int

	for i := 0; i+offset < len(seq); i++ {
		delta := int(seq[i]) - int(seq[i+offset])
		if delta < 0 {
			delta = -delta
		}
		if delta >= matchDelta {
			continue
		}
		weight := 1 - float64(delta)/127
		score += weight * weight
		matches++
	}
	return score, matches
}
