package extract

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/ppiankov/cardlens/internal/model"
)

var (
	nonPhoneRe = regexp.MustCompile(`[^0-9+]`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// Contacts holds the first email, phone, and website found on a card.
// Empty string means not found.
type Contacts struct {
	Email   string
	Mobile  string
	Website string
}

// ExtractContacts makes a single left-to-right pass over the lines. The first
// match per field wins; every accepted match is deleted from its line so the
// identity heuristics never see contact fragments. Lines are updated in place.
func ExtractContacts(lines []model.Line, region string) Contacts {
	var c Contacts
	for i := range lines {
		ln := &lines[i]
		changed := false

		if c.Email == "" {
			if m := emailRe.FindString(ln.Text); m != "" {
				c.Email = m
				ln.Text = strings.Replace(ln.Text, m, "", 1)
				changed = true
			}
		}
		if c.Mobile == "" {
			if raw, ok := findPhone(ln.Text); ok {
				if normalized, ok := NormalizePhone(raw, region); ok {
					c.Mobile = normalized
					ln.Text = strings.Replace(ln.Text, raw, "", 1)
					changed = true
				}
			}
		}
		// A line that still carries an email address never yields a website:
		// the domain half of an unclaimed email must not be split off.
		if c.Website == "" && !emailRe.MatchString(ln.Text) {
			if m := websiteRe.FindString(ln.Text); m != "" {
				c.Website = m
				ln.Text = strings.Replace(ln.Text, m, "", 1)
				changed = true
			}
		}

		if changed {
			ln.Text = strings.TrimSpace(spaceRunRe.ReplaceAllString(ln.Text, " "))
			ln.CleanWords = CleanWords(ln.Text)
		}
	}
	return c
}

// NormalizePhone canonicalizes a raw phone match. Numbers without a leading
// '+' are parsed against the default region. Invalid numbers degrade to a
// digits-only string when at least 7 digits remain; shorter runs are treated
// as not found rather than emitted as nonsense.
func NormalizePhone(raw, region string) (string, bool) {
	s := nonPhoneRe.ReplaceAllString(raw, "")
	if s == "" {
		return "", false
	}

	var num *phonenumbers.PhoneNumber
	var err error
	if strings.HasPrefix(s, "+") {
		num, err = phonenumbers.Parse(s, "")
	} else {
		num, err = phonenumbers.Parse(s, region)
	}
	if err == nil && phonenumbers.IsValidNumber(num) {
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL), true
	}

	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) >= 7 {
		return digits, true
	}
	return "", false
}

// WebsiteDomain reduces a website match to its host portion: scheme, "www."
// prefix, and any path are stripped.
func WebsiteDomain(website string) string {
	d := website
	if i := strings.Index(d, "://"); i >= 0 {
		d = d[i+3:]
	}
	d = strings.TrimPrefix(strings.ToLower(d), "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	return d
}
