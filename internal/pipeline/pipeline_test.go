package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/cardlens/internal/model"
)

func rawLine(text string, conf float64) model.RawLine {
	return model.RawLine{Text: text, Confidence: conf}
}

func TestEngine_ExtractFullCard(t *testing.T) {
	doc := model.Document{
		Language: "eng",
		Lines: []model.RawLine{
			rawLine("Olivia Wilson", 98),
			rawLine("Marketing Manager", 97),
			rawLine("Acme Corp", 95),
			rawLine("olivia@acme.com | +1 (415) 555-2671", 99),
			rawLine("www.acme.com", 96),
			rawLine("Suite 200", 93),
			rawLine("123 Main St", 94),
			rawLine("Springfield, IL 62704", 92),
		},
	}
	card := NewEngine("US").Extract(doc)

	if card.Name != "Olivia Wilson" {
		t.Errorf("name = %q", card.Name)
	}
	if card.Designation != "Marketing Manager" {
		t.Errorf("designation = %q", card.Designation)
	}
	if card.Company != "Acme Corp" {
		t.Errorf("company = %q", card.Company)
	}
	if card.Email != "olivia@acme.com" {
		t.Errorf("email = %q", card.Email)
	}
	if card.Mobile != "+1 415-555-2671" {
		t.Errorf("mobile = %q", card.Mobile)
	}
	if card.Website != "www.acme.com" {
		t.Errorf("website = %q", card.Website)
	}
	want := "Suite 200\n123 Main St\nSpringfield, IL 62704"
	if card.Address != want {
		t.Errorf("address = %q, want %q", card.Address, want)
	}
	if card.Confidence != 95.5 {
		t.Errorf("confidence = %v, want 95.5", card.Confidence)
	}
	if card.LanguageDetected != "eng" {
		t.Errorf("language = %q", card.LanguageDetected)
	}
}

func TestEngine_ExtractEmptyDocument(t *testing.T) {
	card := NewEngine("US").Extract(model.Document{Language: "eng"})
	if card.Name != "" || card.Email != "" || card.Address != "" {
		t.Errorf("expected all-empty card, got %+v", card)
	}
	if card.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", card.Confidence)
	}
	if card.Lines == nil || len(card.Lines) != 0 {
		t.Errorf("lines must be an empty slice, got %#v", card.Lines)
	}
}

func TestEngine_ExtractSentinelConfidenceExcluded(t *testing.T) {
	doc := model.Document{
		Lines: []model.RawLine{
			rawLine("Olivia Wilson", 90),
			rawLine("Acme Corp", -1),
			rawLine("olivia@acme.com", 80),
		},
	}
	card := NewEngine("US").Extract(doc)
	if card.Confidence != 85.0 {
		t.Errorf("confidence = %v, want 85.0", card.Confidence)
	}
}

// countingRecognizer records how many times OCR actually ran.
type countingRecognizer struct {
	calls int
	doc   model.Document
	err   error
}

func (c *countingRecognizer) Recognize(_ context.Context, _ []byte, _ string) (model.Document, error) {
	c.calls++
	return c.doc, c.err
}

func testConfig(t *testing.T, cacheEnabled bool) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = cacheEnabled
	if cacheEnabled {
		cfg.Cache.Dir = t.TempDir()
		cfg.Cache.TTL = time.Minute
	}
	cfg.LLM.Provider = ""
	return cfg
}

func TestPipeline_ScanUsesCache(t *testing.T) {
	rec := &countingRecognizer{doc: model.Document{
		Language: "eng",
		Lines:    []model.RawLine{rawLine("Olivia Wilson", 90)},
	}}
	p := NewPipeline(testConfig(t, true), rec)

	image := []byte("fake-image-bytes")
	first, err := p.ScanBytes(context.Background(), image)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ScanBytes(context.Background(), image)
	if err != nil {
		t.Fatal(err)
	}
	if rec.calls != 1 {
		t.Errorf("recognizer ran %d times, want 1", rec.calls)
	}
	if first.Name != second.Name || first.Confidence != second.Confidence {
		t.Errorf("cached card differs: %+v vs %+v", first, second)
	}

	// A different language keys a different cache entry.
	if _, err := p.ScanImage(context.Background(), image, "deu"); err != nil {
		t.Fatal(err)
	}
	if rec.calls != 2 {
		t.Errorf("recognizer ran %d times, want 2", rec.calls)
	}
}

func TestPipeline_ScanWithoutCache(t *testing.T) {
	rec := &countingRecognizer{doc: model.Document{Language: "eng"}}
	p := NewPipeline(testConfig(t, false), rec)

	image := []byte("fake-image-bytes")
	for i := 0; i < 2; i++ {
		if _, err := p.ScanBytes(context.Background(), image); err != nil {
			t.Fatal(err)
		}
	}
	if rec.calls != 2 {
		t.Errorf("recognizer ran %d times, want 2", rec.calls)
	}
}

func TestPipeline_OCRErrorPropagates(t *testing.T) {
	rec := &countingRecognizer{err: errors.New("tesseract unavailable")}
	p := NewPipeline(testConfig(t, false), rec)

	_, err := p.ScanBytes(context.Background(), []byte("img"))
	if err == nil || !strings.Contains(err.Error(), "ocr:") {
		t.Errorf("err = %v, want wrapped ocr error", err)
	}
}

func TestRenderer_VCard(t *testing.T) {
	card := model.NewCard("eng", 0)
	card.Name = "Olivia Wilson"
	card.Designation = "Marketing Manager"
	card.Company = "Acme, Corp"
	card.Email = "olivia@acme.com"
	card.Mobile = "+1 415-555-2671"
	card.Address = "123 Main St\nSpringfield"

	out := NewRenderer().RenderVCard(card)

	for _, want := range []string{
		"BEGIN:VCARD\r\n",
		"VERSION:3.0\r\n",
		"FN:Olivia Wilson\r\n",
		"TITLE:Marketing Manager\r\n",
		"ORG:Acme\\, Corp\r\n",
		"EMAIL;TYPE=WORK:olivia@acme.com\r\n",
		"TEL;TYPE=CELL:+1 415-555-2671\r\n",
		"ADR;TYPE=WORK:;;123 Main St\\nSpringfield;;;;\r\n",
		"END:VCARD\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("vCard missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "URL:") {
		t.Error("empty website must not emit a URL property")
	}
}

func TestRenderer_TextOmitsEmptyFields(t *testing.T) {
	card := model.NewCard("eng", 0)
	card.Name = "Olivia Wilson"
	card.Confidence = 96.5

	var b strings.Builder
	NewRenderer().RenderText(card, &b)
	out := b.String()

	if !strings.Contains(out, "Olivia Wilson") {
		t.Errorf("missing name in %q", out)
	}
	if strings.Contains(out, "Email") {
		t.Errorf("empty email rendered in %q", out)
	}
	if !strings.Contains(out, "96.50") {
		t.Errorf("missing confidence in %q", out)
	}
}
