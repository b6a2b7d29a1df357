package score

import (
	"math"

	"github.com/ppiankov/cardlens/internal/model"
)

// Average computes the arithmetic mean of the known line confidences,
// rounded to 2 decimal digits. Sentinel ("unknown") confidences are excluded
// from the mean, never counted as zero. Returns 0 when no line carries a
// usable confidence.
func Average(lines []model.Line) float64 {
	var sum float64
	var n int
	for _, ln := range lines {
		if !ln.ConfKnown || ln.Confidence < 0 {
			continue
		}
		sum += ln.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return Round2(sum / float64(n))
}

// Round2 rounds to 2 decimal digits, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
