package extract

import (
	"testing"

	"github.com/ppiankov/cardlens/internal/model"
)

func classifyText(text string) model.Line {
	ln := NormalizeLine(0, text, 90)
	Classify(&ln)
	return ln
}

func TestClassify_ContactLines(t *testing.T) {
	contacts := []string{
		"olivia@acme.com",
		"Email: olivia.wilson+hr@acme-corp.co.uk",
		"+1 (415) 555-2671",
		"Tel: 415-555-2671",
		"www.acme.com",
		"https://acme.io/about",
		"acme.io",
	}
	for _, text := range contacts {
		if ln := classifyText(text); !ln.IsContact {
			t.Errorf("expected %q to classify as contact", text)
		}
	}

	nonContacts := []string{
		"Olivia Wilson",
		"Acme Corp",
		"12345",            // 5 digits: too short for a phone
		"123 Main St",      // house number is not a phone
		"Visit the U.S. HQ", // abbreviation is not a website
	}
	for _, text := range nonContacts {
		if ln := classifyText(text); ln.IsContact {
			t.Errorf("expected %q to NOT classify as contact", text)
		}
	}
}

func TestClassify_AddressHints(t *testing.T) {
	hints := []string{
		"123 Main St",
		"Main Street",
		"Springfield, IL 62704",
		"62704",
		"500 Fifth Avenue",
		"1 Infinite Loop Hwy",
	}
	for _, text := range hints {
		if ln := classifyText(text); !ln.IsAddress {
			t.Errorf("expected %q to classify as address hint", text)
		}
	}

	nonHints := []string{
		"Olivia Wilson",
		"Suite 200",  // no street keyword, no zip
		"St",         // keyword alone, single word
		"Sales Lead", // "lead" is a title, not a street
	}
	for _, text := range nonHints {
		if ln := classifyText(text); ln.IsAddress {
			t.Errorf("expected %q to NOT classify as address hint", text)
		}
	}
}

func TestClassify_FlagsAreCached(t *testing.T) {
	ln := NormalizeLine(3, "olivia@acme.com", 90)
	Classify(&ln)
	if !ln.IsContact {
		t.Fatal("expected contact flag set")
	}

	// Downstream stages mutate text; the cached flag must not depend on it
	ln.Text = ""
	if !ln.IsContact {
		t.Error("cached contact flag lost after text mutation")
	}
}

func TestFindPhone_RequiresSevenDigits(t *testing.T) {
	if _, ok := findPhone("123-456"); ok {
		t.Error("expected 6-digit run to be rejected")
	}
	raw, ok := findPhone("call +1 (415) 555-2671 now")
	if !ok {
		t.Fatal("expected phone candidate")
	}
	if digitCount(raw) < 7 {
		t.Errorf("candidate %q has too few digits", raw)
	}
}
