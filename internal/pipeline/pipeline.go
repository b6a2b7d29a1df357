package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/cardlens/internal/cache"
	"github.com/ppiankov/cardlens/internal/extract"
	"github.com/ppiankov/cardlens/internal/llm"
	"github.com/ppiankov/cardlens/internal/model"
	"github.com/ppiankov/cardlens/internal/score"
)

// Recognizer is the OCR collaborator boundary: image bytes in, ordered line
// sequence out. It is the only blocking call in a scan.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, lang string) (model.Document, error)
}

// Engine is the field-extraction core: a pure, reentrant computation over an
// in-memory line sequence. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	phoneRegion string
}

// NewEngine creates an extraction engine. phoneRegion is the default region
// for parsing phone numbers without a '+' prefix.
func NewEngine(phoneRegion string) *Engine {
	if phoneRegion == "" {
		phoneRegion = "US"
	}
	return &Engine{phoneRegion: phoneRegion}
}

// Extract derives a structured contact record from one OCR document.
// It never fails: malformed lines degrade to "field not found" and an empty
// document produces an all-empty card.
func (e *Engine) Extract(doc model.Document) *model.Card {
	card := model.NewCard(doc.Language, doc.Rotation)

	lines := make([]model.Line, len(doc.Lines))
	for i, raw := range doc.Lines {
		lines[i] = extract.NormalizeLine(i, raw.Text, raw.Confidence)
	}
	for i := range lines {
		extract.Classify(&lines[i])
	}

	contacts := extract.ExtractContacts(lines, e.phoneRegion)
	card.Email = contacts.Email
	card.Mobile = contacts.Mobile
	card.Website = contacts.Website

	card.Address = extract.AssembleAddress(lines)

	id := extract.ResolveIdentity(lines, contacts.Website)
	card.Name = id.Name
	card.Designation = id.Designation
	card.Company = id.Company

	for _, ln := range lines {
		if strings.TrimSpace(ln.Text) != "" {
			card.Lines = append(card.Lines, ln.Text)
		}
	}
	card.Confidence = score.Average(lines)

	return card
}

// Pipeline orchestrates one scan: cache lookup, OCR, extraction, optional
// LLM refinement, cache store.
type Pipeline struct {
	recognizer Recognizer
	engine     *Engine
	store      cache.Cache
	refiner    *llm.Refiner
	cfg        *model.Config
}

// NewPipeline wires a pipeline from configuration. The recognizer is
// injected so servers and tests can substitute the OCR collaborator.
func NewPipeline(cfg *model.Config, recognizer Recognizer) *Pipeline {
	p := &Pipeline{
		recognizer: recognizer,
		engine:     NewEngine(cfg.OCR.PhoneRegion),
		cfg:        cfg,
	}

	if cfg.Cache.Enabled {
		p.store = cache.NewLayered(cfg.Cache.Dir, cfg.Cache.TTL)
	}

	if cfg.LLM.Provider != "" {
		refiner, err := llm.NewRefiner(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			p.refiner = refiner
		}
	}

	return p
}

// Engine exposes the pure extraction core for embedding callers that already
// hold OCR output.
func (p *Pipeline) Engine() *Engine {
	return p.engine
}

// ScanFile scans a single card image from disk.
func (p *Pipeline) ScanFile(ctx context.Context, path string) (*model.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return p.ScanBytes(ctx, data)
}

// ScanBytes scans a single card image held in memory using the configured
// OCR language.
func (p *Pipeline) ScanBytes(ctx context.Context, image []byte) (*model.Card, error) {
	return p.ScanImage(ctx, image, p.cfg.OCR.Language)
}

// ScanImage scans a single card image with an explicit OCR language tag.
func (p *Pipeline) ScanImage(ctx context.Context, image []byte, lang string) (*model.Card, error) {
	if lang == "" {
		lang = p.cfg.OCR.Language
	}

	var key string
	if p.store != nil {
		key = cache.Key(image, lang)
		if data, ok := p.store.Get(key); ok {
			var card model.Card
			if err := json.Unmarshal(data, &card); err == nil {
				return &card, nil
			}
			// Corrupt entry: fall through to a fresh scan
			_ = p.store.Delete(key)
		}
	}

	doc, err := p.recognizer.Recognize(ctx, image, lang)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	card := p.engine.Extract(doc)

	if p.refiner != nil {
		if err := p.refiner.Refine(ctx, card); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM refinement failed: %v\n", err)
		}
	}

	if p.store != nil {
		if data, err := json.Marshal(card); err == nil {
			_ = p.store.Set(key, data, p.cfg.Cache.TTL)
		}
	}

	return card, nil
}
