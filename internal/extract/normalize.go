package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
	"golang.org/x/text/unicode/norm"
)

// OCR artifact patterns. These are fixed configuration, never mutated.
var (
	// Literal null-ish tokens that pandas/tesseract plumbing leaks into text
	placeholderRe = regexp.MustCompile(`(?i)^(?:nan|none|null|n/a|-)$`)
	// The \b keeps real words like "Nancy" intact.
	leadingJunkRe = regexp.MustCompile(`(?i)^(?:(?:nan|none|null)\b[\s,-]*)+`)

	controlRe = regexp.MustCompile(`[\x00-\x1f\x7f]+`)

	// "OliviaWilson" style merges: two TitleCase words glued together
	camelMergeRe = regexp.MustCompile(`[A-Z][a-z]+[A-Z][a-z]`)
	camelSplitRe = regexp.MustCompile(`([a-z])([A-Z])`)

	// Leading garbage strippers. The first keeps '@' so a mangled prefix like
	// "|hello@x.com" is not cut into the email token itself.
	leadJunkKeepEmailRe = regexp.MustCompile(`^[^A-Za-z0-9@+]+`)
	leadJunkRe          = regexp.MustCompile(`^[^A-Za-z0-9+]+`)

	spaceRunRe = regexp.MustCompile(`\s+`)
	punctRunRe = regexp.MustCompile(`[,;:-]{2,}`)
)

const edgePunct = ".,;:!()[]"

// NormalizeLine builds a classified-ready Line from one raw OCR entry.
// A negative confidence is the engine's "unknown" sentinel: it is kept out of
// averaging rather than coerced to zero.
func NormalizeLine(index int, raw string, confidence float64) model.Line {
	ln := model.Line{Index: index}
	if confidence >= 0 {
		ln.Confidence = confidence
		ln.ConfKnown = true
	}
	ln.Text = NormalizeText(raw)
	ln.CleanWords = CleanWords(ln.Text)
	return ln
}

// NormalizeText cleans one raw OCR line. The result is a fixed point:
// normalizing already-normalized text is a no-op.
func NormalizeText(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || placeholderRe.MatchString(s) {
		return ""
	}

	s = norm.NFC.String(s)
	s = controlRe.ReplaceAllString(s, " ")
	s = leadingJunkRe.ReplaceAllString(s, "")

	// Strip stray leading characters, but keep a leading '+' (international
	// phone marker) and never eat into an email token.
	if s != "" && !isAlnum(s[0]) && s[0] != '+' {
		if emailRe.MatchString(s) {
			s = leadJunkKeepEmailRe.ReplaceAllString(s, "")
		} else {
			s = leadJunkRe.ReplaceAllString(s, "")
		}
	}

	// Split glued TitleCase merges, but only for digit-free lines so product
	// codes like "X9aB12" survive untouched.
	if camelMergeRe.MatchString(s) && !strings.ContainsAny(s, "0123456789") {
		s = camelSplitRe.ReplaceAllString(s, "$1 $2")
	}

	s = spaceRunRe.ReplaceAllString(s, " ")
	s = punctRunRe.ReplaceAllString(s, ",")
	s = strings.TrimSpace(s)

	if placeholderRe.MatchString(s) {
		return ""
	}
	return s
}

// CleanWords splits normalized text into tokens with edge punctuation removed.
func CleanWords(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, edgePunct)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
