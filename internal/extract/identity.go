package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
)

const designationKeywordAlt = `manager|director|engineer|developer|founder|ceo|co-founder|consultant|agent|sales|representative|analyst|architect|officer|head|lead`

// designationKeywords is the closed job-title vocabulary, matched as whole
// words against cleaned tokens.
var designationKeywords = buildKeywordSet(designationKeywordAlt)

var nonWordRe = regexp.MustCompile(`\W`)

// Name candidates carry at most this many cleaned words.
const maxNameWords = 3

// Identity holds the person/company fields resolved from free lines.
type Identity struct {
	Name        string
	Designation string
	Company     string
}

// ResolveIdentity selects name, designation, and company from lines that are
// neither contact nor address material. This is a greedy, position-biased
// heuristic: names come before companies on cards, and short capitalized
// digit-free lines are names while keyword-bearing lines are titles.
func ResolveIdentity(lines []model.Line, website string) Identity {
	var id Identity

	free := make([]model.Line, 0, len(lines))
	for _, ln := range lines {
		if ln.Text == "" || ln.IsContact || ln.IsAddress {
			continue
		}
		free = append(free, ln)
	}

	id.Designation = pickDesignation(free)
	id.Name = pickName(free)
	id.Company = pickCompany(free, id.Name, id.Designation)

	if id.Company == "" && website != "" {
		id.Company = WebsiteDomain(website)
	}
	return id
}

// pickDesignation returns the first line whose word set intersects the
// job-title vocabulary.
func pickDesignation(free []model.Line) string {
	for _, ln := range free {
		for _, w := range ln.CleanWords {
			if _, ok := designationKeywords[strings.ToLower(w)]; ok {
				return ln.Text
			}
		}
	}
	return ""
}

// pickName filters to short, digit-free, Title-Case lines and prefers the
// earliest one; confidence only breaks ties.
func pickName(free []model.Line) string {
	var candidates []model.Line
	for _, ln := range free {
		n := len(ln.CleanWords)
		if n < 1 || n > maxNameWords {
			continue
		}
		if strings.ContainsAny(ln.Text, "0123456789") {
			continue
		}
		if !hasTitleCaseWord(ln.CleanWords) {
			continue
		}
		candidates = append(candidates, ln)
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Index != candidates[j].Index {
			return candidates[i].Index < candidates[j].Index
		}
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates[0].Text
}

// pickCompany returns the first free line that is not the chosen name or
// designation and is not purely symbolic.
func pickCompany(free []model.Line, name, designation string) string {
	for _, ln := range free {
		if ln.Text == name || ln.Text == designation {
			continue
		}
		if len(ln.CleanWords) < 1 {
			continue
		}
		if len(nonWordRe.ReplaceAllString(ln.Text, "")) < 2 {
			continue
		}
		return ln.Text
	}
	return ""
}

func hasTitleCaseWord(words []string) bool {
	for _, w := range words {
		if w != "" && w[0] >= 'A' && w[0] <= 'Z' {
			return true
		}
	}
	return false
}
