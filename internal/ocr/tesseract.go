package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"github.com/ppiankov/cardlens/internal/model"
)

// TesseractRecognizer drives a local Tesseract installation through gosseract
// and regroups its word boxes into reading-order lines.
type TesseractRecognizer struct {
	tessdataDir string
}

// NewTesseractRecognizer creates a recognizer. tessdataDir may be empty to
// use the system default trained data location.
func NewTesseractRecognizer(tessdataDir string) *TesseractRecognizer {
	return &TesseractRecognizer{tessdataDir: tessdataDir}
}

// Recognize runs OCR on an encoded image and returns the line sequence.
// Rotation stays 0: orientation detection is left to upstream preprocessing
// and passed through when a caller supplies it.
func (r *TesseractRecognizer) Recognize(ctx context.Context, image []byte, lang string) (model.Document, error) {
	select {
	case <-ctx.Done():
		return model.Document{}, ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if r.tessdataDir != "" {
		if err := client.SetTessdataPrefix(r.tessdataDir); err != nil {
			return model.Document{}, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return model.Document{}, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return model.Document{}, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return model.Document{}, fmt.Errorf("recognize words: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text:       b.Word,
			Left:       b.Box.Min.X,
			Top:        b.Box.Min.Y,
			Width:      b.Box.Dx(),
			Height:     b.Box.Dy(),
			Confidence: b.Confidence,
		})
	}

	return model.Document{
		Lines:    GroupWords(words),
		Language: lang,
	}, nil
}
