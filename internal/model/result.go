package model

// Card is the structured contact record extracted from one business card.
// String fields are never null: a field with no candidate is the empty string.
type Card struct {
	LanguageDetected string   `json:"language_detected"`
	OSDRotation      int      `json:"osd_rotation"`
	Name             string   `json:"name"`
	Designation      string   `json:"designation"`
	Company          string   `json:"company"`
	Email            string   `json:"email"`
	Mobile           string   `json:"mobile"`
	Website          string   `json:"website"`
	Address          string   `json:"address"`
	Lines            []string `json:"lines"`
	Confidence       float64  `json:"confidence"`
}

// NewCard returns a Card with the non-null defaults applied.
func NewCard(language string, rotation int) *Card {
	return &Card{
		LanguageDetected: language,
		OSDRotation:      rotation,
		Lines:            []string{},
	}
}
