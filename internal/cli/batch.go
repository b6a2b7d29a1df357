package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ppiankov/cardlens/internal/ocr"
	"github.com/ppiankov/cardlens/internal/pipeline"
	"github.com/ppiankov/cardlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list>",
	Short: "Scan multiple card images in parallel",
	Long: `Batch scans a directory of card images, or a text file listing image
paths one per line, with a configurable worker count. One JSON report is
written per image.

Example:
  cardlens batch ./cards
  cardlens batch cards.txt --concurrency 8 --output-dir ./contacts
  cardlens batch ./cards --lang eng --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./cardlens-out", "output directory for JSON reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared scan flags
	batchCmd.Flags().StringVar(&lang, "lang", "eng", "Tesseract language tag")
	batchCmd.Flags().StringVar(&phoneRegion, "region", "US", "default phone region for numbers without +")
	batchCmd.Flags().StringVar(&tessdataDir, "tessdata", "", "tessdata directory override")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh OCR)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "fill missing fields with an LLM (heuristics stay authoritative)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.NewPipeline(cfg, ocr.NewTesseractRecognizer(cfg.OCR.TessdataDir))
	processor := worker.NewBatchProcessor(p.ScanFile, concurrency)

	fmt.Fprintf(os.Stderr, "Batch scan: %s (workers=%d, output=%s)\n", input, concurrency, outputDir)

	var results []worker.Result
	info, err := os.Stat(input)
	switch {
	case err != nil:
		return fmt.Errorf("stat input: %w", err)
	case info.IsDir():
		results, err = processor.ProcessDir(ctx, input)
	default:
		results, err = processor.ProcessFile(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	renderer := pipeline.NewRenderer()
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Err)
			continue
		}
		out := filepath.Join(outputDir, reportName(res.Path))
		if err := renderer.RenderJSON(res.Card, out); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", res.Path, out)
		}
	}

	fmt.Fprintf(os.Stderr, "Done: %d scanned, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d scans failed", failed, len(results))
	}
	return nil
}

func reportName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}
