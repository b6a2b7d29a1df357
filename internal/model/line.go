package model

// Line represents one recognized text line from the OCR engine
type Line struct {
	Index      int      `json:"idx"`                   // 0-based reading-order position, unique per document
	Text       string   `json:"text"`                  // Normalized text, mutated by the extraction stages
	Confidence float64  `json:"conf"`                  // Recognition confidence in [0,100]; 0 when unknown
	ConfKnown  bool     `json:"conf_known"`            // False when the engine reported a sentinel (negative) value
	IsContact  bool     `json:"is_contact"`            // Contains an email, phone, or website match
	IsAddress  bool     `json:"is_address_hint"`       // Looks like a postal address fragment
	CleanWords []string `json:"clean_words,omitempty"` // Whitespace-split tokens with edge punctuation stripped
}

// RawLine is the input contract with the OCR collaborator: text plus a raw
// confidence where any negative value means "unknown".
type RawLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Document is an ordered OCR line sequence plus the collaborator's metadata.
type Document struct {
	Lines    []RawLine `json:"lines"`
	Language string    `json:"language"` // e.g. "eng", passed through unchanged
	Rotation int       `json:"rotation"` // OSD rotation hint in degrees, 0 when unknown
}
