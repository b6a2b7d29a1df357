package ocr

import (
	"sort"
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
)

// Word is one recognized token with its box in pixel coordinates and a
// confidence in [0,100], negative when unknown.
type Word struct {
	Text       string
	Left       int
	Top        int
	Width      int
	Height     int
	Confidence float64
}

// GroupWords reassembles reading-order text lines from word-level output.
// Words whose tops fall within half the mean word height of each other are
// clustered into one row; rows are emitted top to bottom, words left to
// right. A line's confidence is the mean of its known word confidences, or
// the -1 sentinel when none of its words carry one.
func GroupWords(words []Word) []model.RawLine {
	kept := make([]Word, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) != "" {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Top != kept[j].Top {
			return kept[i].Top < kept[j].Top
		}
		return kept[i].Left < kept[j].Left
	})

	tol := rowTolerance(kept)

	var lines []model.RawLine
	var row []Word
	rowTop := kept[0].Top
	for _, w := range kept {
		if len(row) > 0 && abs(w.Top-rowTop) > tol {
			lines = append(lines, assembleRow(row))
			row = row[:0]
			rowTop = w.Top
		}
		row = append(row, w)
	}
	if len(row) > 0 {
		lines = append(lines, assembleRow(row))
	}
	return lines
}

// rowTolerance derives the vertical clustering window from the mean word
// height, floored at 8px for tiny scans.
func rowTolerance(words []Word) int {
	var sum, n int
	for _, w := range words {
		if w.Height > 0 {
			sum += w.Height
			n++
		}
	}
	if n == 0 {
		return 8
	}
	tol := sum / n / 2
	if tol < 8 {
		tol = 8
	}
	return tol
}

func assembleRow(row []Word) model.RawLine {
	sorted := make([]Word, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Left < sorted[j].Left })

	parts := make([]string, 0, len(sorted))
	var confSum float64
	var confN int
	for _, w := range sorted {
		parts = append(parts, strings.TrimSpace(w.Text))
		if w.Confidence >= 0 {
			confSum += w.Confidence
			confN++
		}
	}

	conf := -1.0
	if confN > 0 {
		conf = confSum / float64(confN)
	}
	return model.RawLine{Text: strings.Join(parts, " "), Confidence: conf}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
