package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/cardlens/internal/model"
)

// stubProvider returns a canned reply and records the prompts it received.
type stubProvider struct {
	reply string
	err   error
	calls int
	user  string
}

func (s *stubProvider) Name() string                       { return "stub" }
func (s *stubProvider) IsAvailable(_ context.Context) bool { return true }
func (s *stubProvider) Complete(_ context.Context, _, user string) (string, error) {
	s.calls++
	s.user = user
	return s.reply, s.err
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields(`{"name":"Olivia Wilson","email":"olivia@acme.com"}`)
	if err != nil {
		t.Fatal(err)
	}
	if fields.Name != "Olivia Wilson" || fields.Email != "olivia@acme.com" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestParseFields_TolerantOfWrapping(t *testing.T) {
	reply := "Sure, here is the result:\n```json\n{\"company\":\"Acme Corp\"}\n```\nDone."
	fields, err := ParseFields(reply)
	if err != nil {
		t.Fatal(err)
	}
	if fields.Company != "Acme Corp" {
		t.Errorf("company = %q", fields.Company)
	}
}

func TestParseFields_NoJSON(t *testing.T) {
	if _, err := ParseFields("I could not read the card."); err == nil {
		t.Error("expected error for reply without JSON")
	}
	if _, err := ParseFields("}{"); err == nil {
		t.Error("expected error for reversed braces")
	}
}

func TestMergeCard_FillsOnlyEmptyFields(t *testing.T) {
	card := model.NewCard("eng", 0)
	card.Name = "Olivia Wilson"

	MergeCard(card, refinedFields{
		Name:    "Someone Else",
		Company: "  Acme Corp  ",
	})

	if card.Name != "Olivia Wilson" {
		t.Errorf("heuristic name overridden: %q", card.Name)
	}
	if card.Company != "Acme Corp" {
		t.Errorf("company = %q, want trimmed Acme Corp", card.Company)
	}
}

func TestRefine_SkipsCompleteCards(t *testing.T) {
	card := model.NewCard("eng", 0)
	card.Name = "Olivia Wilson"
	card.Designation = "Manager"
	card.Company = "Acme Corp"
	card.Email = "olivia@acme.com"
	card.Mobile = "+1 415-555-2671"
	card.Website = "acme.com"
	card.Address = "123 Main St"
	card.Lines = []string{"Olivia Wilson"}

	stub := &stubProvider{reply: `{}`}
	r := &Refiner{provider: stub}
	if err := r.Refine(context.Background(), card); err != nil {
		t.Fatal(err)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times, want 0", stub.calls)
	}
}

func TestRefine_FillsMissingFields(t *testing.T) {
	card := model.NewCard("eng", 0)
	card.Name = "Olivia Wilson"
	card.Lines = []string{"Olivia Wilson", "Acme Corp"}

	stub := &stubProvider{reply: `{"company":"Acme Corp","email":""}`}
	r := &Refiner{provider: stub}
	if err := r.Refine(context.Background(), card); err != nil {
		t.Fatal(err)
	}

	if stub.calls != 1 {
		t.Fatalf("provider called %d times, want 1", stub.calls)
	}
	if card.Company != "Acme Corp" {
		t.Errorf("company = %q", card.Company)
	}
	if card.Email != "" {
		t.Errorf("email = %q, want empty", card.Email)
	}
	// The prompt asks only for the missing keys and carries the raw lines.
	if strings.Contains(stub.user, `"name"`) || !strings.Contains(stub.user, "company") {
		t.Errorf("prompt asks for wrong fields:\n%s", stub.user)
	}
	if !strings.Contains(stub.user, "Acme Corp") {
		t.Errorf("prompt missing card lines:\n%s", stub.user)
	}
}

func TestRefine_NoLinesMeansNoCall(t *testing.T) {
	card := model.NewCard("eng", 0)
	stub := &stubProvider{reply: `{}`}
	r := &Refiner{provider: stub}
	if err := r.Refine(context.Background(), card); err != nil {
		t.Fatal(err)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times, want 0", stub.calls)
	}
}

func TestRefine_ProviderErrorPropagates(t *testing.T) {
	card := model.NewCard("eng", 0)
	card.Lines = []string{"something"}

	wantErr := errors.New("backend down")
	r := &Refiner{provider: &stubProvider{err: wantErr}}
	if err := r.Refine(context.Background(), card); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Error("empty provider name must disable the refiner")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "martian"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
