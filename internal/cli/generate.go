package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/usageapi"
	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/usecases/generation"
)

func (c *CLI) runGenerate(ctx context.Context, cfg *Config, args []string) (int, error) {
	var (
		data    domain.BannerData
		outDir  string
		server  string
		strict  bool
		verbose bool
		timeout time.Duration
	)

	fs := c.newFlagSet("generate")
	fs.StringVar(&data.Name, "name", "", "full name shown as the main title (required)")
	fs.StringVar(&data.Title, "title", "", "job title")
	fs.StringVar(&data.Tagline, "tagline", "", "short tagline")
	fs.StringVar(&data.Email, "email", "", "contact email")
	fs.StringVar(&data.Phone, "phone", "", "contact phone (WhatsApp)")
	fs.StringVarP(&data.Style, "style", "s", "", "style id, see \"bannerctl styles\" (default tech)")
	fs.StringVarP(&data.CustomPrompt, "prompt", "p", "", "additional instructions for the image model")
	fs.StringVarP(&outDir, "out", "o", ".", "directory to write the PNG into")
	fs.StringVar(&server, "server", "", "usage service base URL (overrides BANNER_AI_USAGE_API_BASE_URL)")
	fs.BoolVar(&strict, "strict", false, "do not generate when the usage service is unavailable")
	fs.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	fs.DurationVar(&timeout, "timeout", 0, "image generation timeout (default BANNER_AI_GEMINI_TIMEOUT)")

	if code, ok, err := parseFlags(fs, args); !ok {
		return code, err
	}
	if strings.TrimSpace(data.Name) == "" {
		fs.PrintDefaults()
		return ExitUsage, errors.New("--name is required")
	}

	log, err := c.newLogger(cfg, verbose)
	if err != nil {
		return ExitError, err
	}

	catalog, err := generation.DefaultCatalog()
	if err != nil {
		return ExitError, err
	}
	// неизвестный стиль отсекаем до похода в usage service
	if _, err := catalog.Resolve(data.Style); err != nil {
		return ExitUsage, err
	}

	generator, err := c.NewGenerator(cfg.Gemini, log)
	if err != nil {
		return ExitUsage, err
	}

	usageCfg := *cfg.UsageAPI
	if server != "" {
		usageCfg.BaseURL = server
	}
	gate := usageapi.NewClient(&usageCfg, log)

	policy := domain.QuotaPolicyLenient
	if strict {
		policy = domain.QuotaPolicyStrict
	}

	o := generation.New(gate, generator, catalog, policy, log)
	if timeout <= 0 && cfg.Gemini != nil {
		timeout = cfg.Gemini.Timeout
	}
	if timeout > 0 {
		o.Timeout = timeout
	}
	o.OnState = func(_ uuid.UUID, state domain.GenerationState) {
		if label := stateLabel(state); label != "" {
			fmt.Fprintln(c.Stderr, label)
		}
	}

	res, err := o.Submit(ctx, data)
	switch {
	case errors.Is(err, domain.ErrLimitReached):
		fmt.Fprintf(c.Stdout, "%s: all free generations are used.\n", domain.LimitReachedMessage)
		fmt.Fprintln(c.Stdout, "Upgrade with: bannerctl checkout --plan daily|monthly|yearly")
		return ExitLimit, nil
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return ExitError, err
	case errors.Is(err, domain.ErrGenerationFailed):
		log.Debug("generation error", "error", err)
		return ExitError, errors.New(domain.GenerationFailedMessage)
	case err != nil:
		return ExitError, err
	}

	path, err := writeImage(outDir, res.Image, data.Name)
	if err != nil {
		return ExitError, err
	}

	fmt.Fprintf(c.Stdout, "Saved %s\n", path)
	if res.QuotaSkipped {
		fmt.Fprintln(c.Stdout, "Usage service unavailable, quota was not checked.")
	} else {
		fmt.Fprintf(c.Stdout, "Generations used: %d\n", res.Count)
	}
	return ExitOK, nil
}

func writeImage(dir string, image *domain.GeneratedImage, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, image.FileName(name))
	if err := os.WriteFile(path, image.Data, 0o644); err != nil {
		return "", fmt.Errorf("write banner: %w", err)
	}
	return path, nil
}

func stateLabel(state domain.GenerationState) string {
	switch state {
	case domain.GenerationCheckingQuota:
		return "Checking quota..."
	case domain.GenerationGenerating:
		return "Generating banner..."
	default:
		return ""
	}
}
