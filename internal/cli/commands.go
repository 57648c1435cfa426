package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/usageapi"
	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/usecases/generation"
)

const defaultRedirectDelay = 1500 * time.Millisecond

func (c *CLI) runUsage(ctx context.Context, cfg *Config, args []string) (int, error) {
	var server string
	fs := c.newFlagSet("usage")
	fs.StringVar(&server, "server", "", "usage service base URL")
	if code, ok, err := parseFlags(fs, args); !ok {
		return code, err
	}

	client, err := c.usageClient(cfg, server)
	if err != nil {
		return ExitError, err
	}

	count, err := client.Count(ctx)
	if err != nil {
		return ExitError, err
	}
	fmt.Fprintf(c.Stdout, "Generations used: %d\n", count)
	return ExitOK, nil
}

func (c *CLI) runStyles(args []string) (int, error) {
	fs := c.newFlagSet("styles")
	if code, ok, err := parseFlags(fs, args); !ok {
		return code, err
	}

	catalog, err := generation.DefaultCatalog()
	if err != nil {
		return ExitError, err
	}

	w := tabwriter.NewWriter(c.Stdout, 0, 4, 2, ' ', 0)
	for _, s := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Description)
	}
	return ExitOK, w.Flush()
}

func (c *CLI) runCheckout(ctx context.Context, cfg *Config, args []string) (int, error) {
	var (
		plan      string
		server    string
		noBrowser bool
		delay     time.Duration
	)
	fs := c.newFlagSet("checkout")
	fs.StringVar(&plan, "plan", "", "daily | monthly | yearly (required)")
	fs.StringVar(&server, "server", "", "usage service base URL")
	fs.BoolVar(&noBrowser, "no-browser", false, "only print the checkout URL")
	fs.DurationVar(&delay, "delay", defaultRedirectDelay, "pause before opening the browser")
	if code, ok, err := parseFlags(fs, args); !ok {
		return code, err
	}
	if plan == "" {
		fs.PrintDefaults()
		return ExitUsage, fmt.Errorf("--plan is required")
	}

	client, err := c.usageClient(cfg, server)
	if err != nil {
		return ExitError, err
	}

	url, err := client.CreateCheckoutSession(ctx, domain.Plan(plan))
	if err != nil {
		// сообщение сервера показываем как есть
		return ExitError, err
	}

	fmt.Fprintln(c.Stderr, "Redirecting to checkout...")
	if err := c.Sleep(ctx, delay); err != nil {
		return ExitError, err
	}

	fmt.Fprintln(c.Stdout, url)
	if noBrowser {
		return ExitOK, nil
	}
	if err := c.OpenURL(url); err != nil {
		fmt.Fprintf(c.Stderr, "could not open browser: %v\n", err)
	}
	return ExitOK, nil
}

func (c *CLI) usageClient(cfg *Config, server string) (*usageapi.Client, error) {
	log, err := c.newLogger(cfg, false)
	if err != nil {
		return nil, err
	}
	usageCfg := *cfg.UsageAPI
	if server != "" {
		usageCfg.BaseURL = server
	}
	return usageapi.NewClient(&usageCfg, log), nil
}
