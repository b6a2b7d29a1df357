package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
)

const refineSystemPrompt = "You extract contact fields from business card text. " +
	"Reply with a single JSON object and nothing else."

// Refiner fills contact fields the heuristics left empty by asking an LLM to
// re-read the raw card lines. It NEVER overrides a non-empty heuristic field:
// the heuristics stay authoritative, the model only fills gaps.
type Refiner struct {
	provider Provider
	config   Config
}

// NewRefiner creates a refiner from configuration.
func NewRefiner(config Config) (*Refiner, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	return &Refiner{provider: provider, config: config}, nil
}

// refinedFields mirrors the card's textual fields for the model's reply.
type refinedFields struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Website     string `json:"website"`
	Address     string `json:"address"`
}

// Refine asks the provider for the fields still missing on the card and
// merges the answer in. Cards with no missing fields are returned untouched
// without an API call.
func (r *Refiner) Refine(ctx context.Context, card *model.Card) error {
	missing := missingFields(card)
	if len(missing) == 0 || len(card.Lines) == 0 {
		return nil
	}

	reply, err := r.provider.Complete(ctx, refineSystemPrompt, BuildRefinePrompt(card, missing))
	if err != nil {
		return err
	}

	fields, err := ParseFields(reply)
	if err != nil {
		return err
	}

	MergeCard(card, fields)
	return nil
}

// BuildRefinePrompt constructs the user prompt: the raw lines plus the list
// of fields the heuristics could not fill.
func BuildRefinePrompt(card *model.Card, missing []string) string {
	var b strings.Builder
	b.WriteString("Business card text, one OCR line per row:\n")
	for _, ln := range card.Lines {
		b.WriteString("  ")
		b.WriteString(ln)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nReturn a JSON object with exactly these keys: %s.\n", strings.Join(missing, ", "))
	b.WriteString("Use \"\" for anything the text does not contain. Do not invent values.")
	return b.String()
}

// ParseFields leniently extracts the first JSON object from the reply, which
// tolerates models that wrap JSON in prose or code fences.
func ParseFields(reply string) (refinedFields, error) {
	var fields refinedFields

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return fields, fmt.Errorf("no JSON object in reply")
	}

	if err := json.Unmarshal([]byte(reply[start:end+1]), &fields); err != nil {
		return fields, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

// MergeCard copies refined values into the card, only where the heuristic
// result is empty.
func MergeCard(card *model.Card, fields refinedFields) {
	fill := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	fill(&card.Name, fields.Name)
	fill(&card.Designation, fields.Designation)
	fill(&card.Company, fields.Company)
	fill(&card.Email, fields.Email)
	fill(&card.Mobile, fields.Mobile)
	fill(&card.Website, fields.Website)
	fill(&card.Address, fields.Address)
}

func missingFields(card *model.Card) []string {
	var missing []string
	for _, f := range []struct {
		key   string
		value string
	}{
		{"name", card.Name},
		{"designation", card.Designation},
		{"company", card.Company},
		{"email", card.Email},
		{"mobile", card.Mobile},
		{"website", card.Website},
		{"address", card.Address},
	} {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}
