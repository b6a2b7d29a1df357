package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/cardlens/internal/model"
)

// Renderer writes extraction results as JSON, human-readable text, or vCard.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the card as indented JSON. An empty path or "-" writes
// to stdout.
func (r *Renderer) RenderJSON(card *model.Card, path string) error {
	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderText writes a short human-readable summary.
func (r *Renderer) RenderText(card *model.Card, w io.Writer) {
	write := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-12s %s\n", label+":", value)
		}
	}
	write("Name", card.Name)
	write("Title", card.Designation)
	write("Company", card.Company)
	write("Email", card.Email)
	write("Mobile", card.Mobile)
	write("Website", card.Website)
	if card.Address != "" {
		fmt.Fprintf(w, "%-12s %s\n", "Address:", strings.ReplaceAll(card.Address, "\n", ", "))
	}
	fmt.Fprintf(w, "%-12s %.2f\n", "Confidence:", card.Confidence)
}

// RenderVCard serializes the card as a vCard 3.0 entry.
func (r *Renderer) RenderVCard(card *model.Card) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")

	if card.Name != "" {
		fmt.Fprintf(&b, "FN:%s\r\n", vcardEscape(card.Name))
	}
	if card.Designation != "" {
		fmt.Fprintf(&b, "TITLE:%s\r\n", vcardEscape(card.Designation))
	}
	if card.Company != "" {
		fmt.Fprintf(&b, "ORG:%s\r\n", vcardEscape(card.Company))
	}
	if card.Email != "" {
		fmt.Fprintf(&b, "EMAIL;TYPE=WORK:%s\r\n", vcardEscape(card.Email))
	}
	if card.Mobile != "" {
		fmt.Fprintf(&b, "TEL;TYPE=CELL:%s\r\n", vcardEscape(card.Mobile))
	}
	if card.Website != "" {
		fmt.Fprintf(&b, "URL:%s\r\n", vcardEscape(card.Website))
	}
	if card.Address != "" {
		fmt.Fprintf(&b, "ADR;TYPE=WORK:;;%s;;;;\r\n", vcardEscape(card.Address))
	}

	b.WriteString("END:VCARD\r\n")
	return b.String()
}

// WriteVCard writes the vCard rendering to a file.
func (r *Renderer) WriteVCard(card *model.Card, path string) error {
	if err := os.WriteFile(path, []byte(r.RenderVCard(card)), 0644); err != nil {
		return fmt.Errorf("write vCard: %w", err)
	}
	return nil
}

// vcardEscape escapes per RFC 2426: backslash, newline, comma, semicolon.
func vcardEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	return s
}
