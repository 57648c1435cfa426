// Package cli реализует bannerctl: генерация баннера с проверкой квоты через
// usage service и запуск checkout.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/pflag"

	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/gemini"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
)

const appName = "bannerctl"

// Коды выхода
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	ExitLimit = 3
)

const usageText = `Usage: bannerctl <command> [flags]

Commands:
  generate   generate a banner (checks quota against the usage service first)
  usage      show how many generations this client has used
  styles     list available styles
  checkout   open a checkout session for a paid plan

Run "bannerctl <command> --help" for command flags.
`

type CLI struct {
	Stdout io.Writer
	Stderr io.Writer

	LoadConfig   func() (*Config, error)
	NewGenerator func(cfg *gemini.Config, log *slog.Logger) (service.IImageGenerator, error)
	OpenURL      func(url string) error
	Sleep        func(ctx context.Context, d time.Duration) error
}

func New(stdout, stderr io.Writer) *CLI {
	return &CLI{
		Stdout:       stdout,
		Stderr:       stderr,
		LoadConfig:   loadConfig,
		NewGenerator: newGeminiGenerator,
		OpenURL:      browser.OpenURL,
		Sleep:        sleep,
	}
}

// Run возвращает код выхода; ошибка печатается вызывающим
func (c *CLI) Run(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		fmt.Fprint(c.Stderr, usageText)
		return ExitUsage, nil
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return ExitError, fmt.Errorf("failed to load config: %w", err)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "generate":
		return c.runGenerate(ctx, cfg, rest)
	case "usage":
		return c.runUsage(ctx, cfg, rest)
	case "styles":
		return c.runStyles(rest)
	case "checkout":
		return c.runCheckout(ctx, cfg, rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.Stdout, usageText)
		return ExitOK, nil
	default:
		fmt.Fprint(c.Stderr, usageText)
		return ExitUsage, fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *CLI) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	return fs
}

// parseFlags --help не считается ошибкой
func parseFlags(fs *pflag.FlagSet, args []string) (int, bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK, false, nil
		}
		return ExitUsage, false, err
	}
	return ExitOK, true, nil
}

// newLogger по умолчанию только warn и выше, чтобы не мешать выводу команды
func (c *CLI) newLogger(cfg *Config, verbose bool) (*slog.Logger, error) {
	logCfg := logger.Config{Encoding: "console"}
	if cfg.Log != nil {
		logCfg = *cfg.Log
	}
	logCfg.Level = "warn"
	if verbose {
		logCfg.Level = "debug"
	}
	return logger.NewWithWriter(appName, &logCfg, c.Stderr)
}

func newGeminiGenerator(cfg *gemini.Config, log *slog.Logger) (service.IImageGenerator, error) {
	if !cfg.Enabled() {
		return nil, errors.New("BANNER_AI_GEMINI_API_KEY is not set")
	}
	return gemini.NewClient(cfg, log), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
