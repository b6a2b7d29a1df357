package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
)

// Pattern contracts shared by the classifier and the contact extractor.
var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// The final label must be a 2+ letter TLD so abbreviations like "U.S."
	// do not classify as websites.
	websiteRe = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/[^\s]*)?`)

	// Loose candidate run; the ">= 7 digits" rule is enforced separately so
	// punctuation-heavy OCR noise does not inflate short digit runs.
	phoneCandidateRe = regexp.MustCompile(`\+?\d[\d\s().-]{5,}\d`)

	zipRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	// House number followed by up to two words and a street keyword
	houseNumberRe = regexp.MustCompile(`(?i)\b\d{1,5}\s+(?:[a-z.'-]+\s+){0,2}(?:` + streetKeywordAlt + `)\b`)
)

const streetKeywordAlt = `street|st|road|rd|avenue|ave|lane|ln|drive|dr|boulevard|blvd|way|square|sq|court|ct|plaza|plz|highway|hwy`

// streetKeywords is the closed vocabulary of postal street types, matched as
// whole words against cleaned tokens.
var streetKeywords = buildKeywordSet(streetKeywordAlt)

func buildKeywordSet(alternation string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, k := range strings.Split(alternation, "|") {
		set[k] = struct{}{}
	}
	return set
}

// Classify derives and caches the boolean hints on a normalized line.
// Downstream stages read the cached flags and never recompute them.
func Classify(ln *model.Line) {
	ln.IsContact = isContact(ln.Text)
	ln.IsAddress = isAddressHint(ln.Text, ln.CleanWords)
}

func isContact(text string) bool {
	if text == "" {
		return false
	}
	if emailRe.MatchString(text) || websiteRe.MatchString(text) {
		return true
	}
	_, ok := findPhone(text)
	return ok
}

func isAddressHint(text string, words []string) bool {
	if text == "" {
		return false
	}
	if len(words) >= 2 && hasStreetKeyword(words) {
		return true
	}
	if zipRe.MatchString(text) {
		return true
	}
	return houseNumberRe.MatchString(text)
}

func hasStreetKeyword(words []string) bool {
	for _, w := range words {
		if _, ok := streetKeywords[strings.ToLower(w)]; ok {
			return true
		}
	}
	return false
}

// findPhone returns the first phone candidate carrying at least 7 digits.
func findPhone(text string) (string, bool) {
	for _, cand := range phoneCandidateRe.FindAllString(text, -1) {
		if digitCount(cand) >= 7 {
			return cand, true
		}
	}
	return "", false
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
