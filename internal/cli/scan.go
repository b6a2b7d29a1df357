package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/cardlens/internal/model"
	"github.com/ppiankov/cardlens/internal/ocr"
	"github.com/ppiankov/cardlens/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON     string
	outVCF      string
	lang        string
	phoneRegion string
	tessdataDir string
	timeout     time.Duration
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Extract contact fields from a single card image",
	Long: `Scan runs OCR on one business card image and extracts:
- Person name, job title, and company
- Email, phone (normalized to international format), and website
- A multi-line postal address block
- An aggregate recognition confidence

Example:
  cardlens scan card.png
  cardlens scan card.jpg --json card.json --vcf card.vcf
  cardlens scan card.png --lang deu --region DE
  cardlens scan card.png --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path ('-' for stdout)")
	scanCmd.Flags().StringVar(&outVCF, "vcf", "", "output vCard path (optional)")

	// OCR flags
	scanCmd.Flags().StringVar(&lang, "lang", "eng", "Tesseract language tag")
	scanCmd.Flags().StringVar(&phoneRegion, "region", "US", "default phone region for numbers without +")
	scanCmd.Flags().StringVar(&tessdataDir, "tessdata", "", "tessdata directory override")
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh OCR)")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "fill missing fields with an LLM (heuristics stay authoritative)")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runScan(cmd *cobra.Command, args []string) error {
	image := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, ocr.NewTesseractRecognizer(cfg.OCR.TessdataDir))

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s (lang=%s)\n", image, cfg.OCR.Language)
	}

	card, err := p.ScanFile(ctx, image)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderer := pipeline.NewRenderer()

	if outJSON != "" {
		if err := renderer.RenderJSON(card, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose && outJSON != "-" {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	} else {
		renderer.RenderText(card, os.Stdout)
	}

	if outVCF != "" {
		if err := renderer.WriteVCard(card, outVCF); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote vCard: %s\n", outVCF)
		}
	}

	return nil
}

// buildConfig assembles configuration from defaults, the config file and
// CARDLENS_* environment variables, and the shared flags. An explicitly set
// flag wins over file and environment values.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.OCR.Language = resolveString(cmd, "lang", "ocr.language", lang)
	cfg.OCR.PhoneRegion = resolveString(cmd, "region", "ocr.phone_region", phoneRegion)
	cfg.OCR.TessdataDir = resolveString(cmd, "tessdata", "ocr.tessdata_dir", tessdataDir)
	cfg.Cache.Enabled = !noCache
	if !cmd.Flags().Changed("no-cache") && viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// resolveString resolves one setting: an explicitly set flag wins, then a
// config file or CARDLENS_* environment value, then the flag default.
func resolveString(cmd *cobra.Command, flagName, key, flagValue string) string {
	if !cmd.Flags().Changed(flagName) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return flagValue
}
