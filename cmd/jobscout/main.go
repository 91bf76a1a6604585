package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/logging"
	"jobscout-engine/internal/report"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/history"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jobscout:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file (default: <data-dir>/jobscout.yml, seeded from config/config.yml)")
		dataDir    = flag.String("data-dir", "data", "state directory")
		output     = flag.String("output", "", "report path (default: <data-dir>/job_matches.html)")
		parallel   = flag.Int("parallel", 0, "companies scraped at once (overrides config)")
		headless   = flag.Bool("headless", true, "run the browser headless (overrides config)")
		timeout    = flag.Duration("timeout", 0, "bound for the whole run (0 = none)")
	)
	flag.Parse()

	// optional overrides, absence is fine
	_ = godotenv.Load()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = config.EnsureUserConfig(*dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			return fmt.Errorf("bootstrap config: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, validation := config.NormalizeAndValidate(cfg)

	if *parallel > 0 {
		cfg.App.Parallel = *parallel
	}
	if *output != "" {
		cfg.App.Output = *output
	}
	if cfg.App.Output == "" {
		cfg.App.Output = filepath.Join(*dataDir, "job_matches.html")
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cfg.App.Headless = headless
		}
	})

	logger := logging.Setup(cfg.App.LogFile, cfg.App.LogLevel)
	for _, w := range validation.Warnings {
		logger.Warn("config: " + w)
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			fmt.Fprintln(os.Stderr, "config error:", e)
		}
		return fmt.Errorf("invalid config %s (%d error(s))", path, len(validation.Errors))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	prior, err := report.ReadPrior(cfg.App.Output)
	if err != nil {
		logger.Warn("could not read previous report, treating all matches as new", "err", err)
	}
	index := history.BuildIndex(prior)

	launcher, err := browser.NewLauncher(*cfg.App.Headless)
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer launcher.Close()

	results := scrape.Run(ctx, cfg, launcher, logger)

	var matches []domain.JobRecord
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("company failed", "company", r.Company, "err", r.Err)
		}
		matches = append(matches, r.Matches...)
	}
	matches = domain.DedupeByURL(matches)

	classified := history.Classify(matches, index)
	fmt.Println(report.Summary(classified))

	html, err := report.Render(classified, time.Now())
	if err != nil {
		return err
	}
	if err := report.Write(cfg.App.Output, html); err != nil {
		return err
	}
	logger.Info("report written",
		"path", cfg.App.Output, "matches", len(matches), "companies_failed", failed)
	return nil
}
