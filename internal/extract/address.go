package extract

import (
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
)

// Expansion caps bound worst-case output on pathological OCR line counts.
// Addresses tend to carry more lines above the dominant street line than
// below it, hence the asymmetry.
const (
	maxExpandUp   = 6
	maxExpandDown = 4
)

// AssembleAddress locates the best address anchor and expands contiguously
// around it. The anchor is the address-hint line with the highest index:
// addresses cluster toward the bottom half of a card. Returns "" when no line
// hints at an address — there is no fallback guess.
func AssembleAddress(lines []model.Line) string {
	anchor := -1
	for i := range lines {
		if lines[i].IsAddress {
			anchor = i
		}
	}
	if anchor == -1 {
		return ""
	}

	// Expansion is index arithmetic over the original order; the line with
	// the anchor's index must still be inside the sequence.
	if idx := lines[anchor].Index; idx < 0 || idx >= len(lines) {
		return lastHintTexts(lines, 3)
	}

	var block []string

	// Upward, anchor included. Contact lines terminate the block; blank
	// lines are skipped without terminating it.
	added := 0
	for j := anchor; j >= 0 && added < maxExpandUp; j-- {
		ln := lines[j]
		if ln.IsContact {
			break
		}
		text := strings.TrimSpace(ln.Text)
		if text == "" {
			continue
		}
		block = append([]string{text}, block...)
		added++
	}

	// Downward from the line after the anchor, same stop/skip rules.
	added = 0
	for k := anchor + 1; k < len(lines) && added < maxExpandDown; k++ {
		ln := lines[k]
		if ln.IsContact {
			break
		}
		text := strings.TrimSpace(ln.Text)
		if text == "" {
			continue
		}
		block = append(block, text)
		added++
	}

	return strings.TrimSpace(strings.Join(block, "\n"))
}

// lastHintTexts is the defensive fallback: the trailing address-hint lines
// joined without expansion.
func lastHintTexts(lines []model.Line, n int) string {
	var hints []string
	for i := range lines {
		if lines[i].IsAddress {
			if t := strings.TrimSpace(lines[i].Text); t != "" {
				hints = append(hints, t)
			}
		}
	}
	if len(hints) > n {
		hints = hints[len(hints)-n:]
	}
	return strings.Join(hints, "\n")
}
