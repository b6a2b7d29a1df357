package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/cardlens/internal/ocr"
	"github.com/ppiankov/cardlens/internal/pipeline"
	"github.com/ppiankov/cardlens/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveRate  float64
	serveBurst int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction endpoint",
	Long: `Serve exposes the extraction pipeline over HTTP:

  POST /extract   multipart upload ("file" image, optional "lang" field)
  GET  /health    liveness probe

Requests are rate limited per client IP.

Example:
  cardlens serve
  cardlens serve --addr :9090 --rate 10`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 5, "requests per second per client")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 10, "burst size per client")

	// Shared scan flags
	serveCmd.Flags().StringVar(&lang, "lang", "eng", "default Tesseract language tag")
	serveCmd.Flags().StringVar(&phoneRegion, "region", "US", "default phone region for numbers without +")
	serveCmd.Flags().StringVar(&tessdataDir, "tessdata", "", "tessdata directory override")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh OCR)")

	// LLM flags
	serveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "fill missing fields with an LLM (heuristics stay authoritative)")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Server.Addr = serveAddr
	cfg.Server.RatePerSecond = serveRate
	cfg.Server.RateBurst = serveBurst

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.NewPipeline(cfg, ocr.NewTesseractRecognizer(cfg.OCR.TessdataDir))
	srv := server.New(cfg, p)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
