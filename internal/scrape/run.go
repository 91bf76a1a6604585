// Package scrape orchestrates the per-company crawl: navigate, run the
// configured pre-scrape actions, harvest pages under the pagination
// bound, then dedup and match. Companies run concurrently under a
// bounded pool; one broken company never cancels its siblings.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/actions"
	"jobscout-engine/internal/scrape/extract"
	"jobscout-engine/internal/scrape/match"
	"jobscout-engine/internal/scrape/paginate"
)

// SessionFactory hands out one live browser session per company task.
type SessionFactory interface {
	NewSession() (browser.Session, error)
}

// CompanyResult is one company's outcome: its matches plus the action
// and pagination telemetry a caller may want to surface. Err is set only
// for company-fatal failures; partial matches survive alongside it.
type CompanyResult struct {
	Company string
	Matches []domain.JobRecord
	Actions actions.Report
	Pages   int
	Err     error
}

const (
	navigateAttempts = 3
	navigateBackoff  = 2 * time.Second
	maxBackoff       = 10 * time.Second
)

// Run crawls every configured company and returns results in config
// order.
func Run(ctx context.Context, cfg config.Config, sessions SessionFactory, logger *slog.Logger) []CompanyResult {
	results := make([]CompanyResult, len(cfg.Companies))

	g, gctx := errgroup.WithContext(ctx)
	parallel := cfg.App.Parallel
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)

	// companies sharing a hosted ATS domain must not land on it at once
	limiter := newHostLimiter(1, 1)

	for i, co := range cfg.Companies {
		i, co := i, co
		g.Go(func() error {
			results[i] = scrapeCompany(gctx, co, cfg.UniversalKeywords, sessions, limiter, logger.With("company", co.Name))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func scrapeCompany(ctx context.Context, co config.Company, universal []string, sessions SessionFactory, limiter *hostLimiter, log *slog.Logger) CompanyResult {
	res := CompanyResult{Company: co.Name}

	s, err := sessions.NewSession()
	if err != nil {
		res.Err = fmt.Errorf("open session: %w", err)
		return res
	}
	defer s.Close()

	timeout := time.Duration(co.TimeoutMS) * time.Millisecond
	state := browser.LoadState(co.WaitForLoadState)

	log.Info("scraping", "url", co.JobBoardURL)
	if err := limiter.WaitURL(ctx, co.JobBoardURL); err != nil {
		res.Err = err
		return res
	}
	if err := navigateWithRetry(ctx, s, co.JobBoardURL, timeout); err != nil {
		res.Err = fmt.Errorf("navigate %s: %w", co.JobBoardURL, err)
		return res
	}

	rep, err := actions.Run(ctx, s, co.PreScrapeActions)
	res.Actions = rep
	for _, w := range rep.Warnings() {
		log.Warn("action step warning",
			"step", w.Index, "type", w.Type, "selector", w.Selector, "outcome", w.Outcome)
	}
	if err != nil {
		res.Err = fmt.Errorf("pre-scrape actions: %w", err)
		return res
	}

	var pagination *[]string
	useJS := false
	if co.Scraping != nil {
		pagination = co.Scraping.PaginationSelectors
		useJS = co.Scraping.UseJSNavigation
	}
	pg := paginate.New(s, pagination, co.MaxPages, timeout)
	pipeline := extract.NewPipeline()

	var records []domain.JobRecord
	for {
		var pageRecords []domain.JobRecord
		var pageErr error
		if useJS {
			pageRecords, pageErr = extract.ClickHarvest(ctx, s, co)
		} else {
			var view extract.PageView
			var frames []extract.PageView
			view, frames, pageErr = extract.Snapshot(ctx, s, state, timeout, co.UseIframe)
			if pageErr == nil {
				pageRecords = pipeline.Extract(view, frames, co)
			}
		}
		records = append(records, pageRecords...)
		pg.PageLoaded(s.URL())
		if pageErr != nil {
			res.Err = fmt.Errorf("page %d: %w", pg.Pages(), pageErr)
			break
		}
		log.Info("page harvested", "page", pg.Pages(), "candidates", len(pageRecords))

		ok, err := pg.Advance(ctx)
		if err != nil {
			res.Err = fmt.Errorf("advance after page %d: %w", pg.Pages(), err)
			break
		}
		if !ok {
			break
		}
	}
	if pg.State() == paginate.StateLimitReached {
		log.Warn("stopped at page limit", "max_pages", co.MaxPages)
	}
	res.Pages = pg.Pages()

	records = domain.DedupeByURL(records)
	for i := range records {
		records[i].Company = co.Name
	}

	engine := match.New(mergeKeywords(universal, co.Keywords))
	res.Matches = engine.Filter(records, co.LocationFilters)
	log.Info("done", "pages", res.Pages, "candidates", len(records), "matches", len(res.Matches))
	return res
}

func navigateWithRetry(ctx context.Context, s browser.Session, url string, timeout time.Duration) error {
	backoff := navigateBackoff
	var err error
	for attempt := 1; attempt <= navigateAttempts; attempt++ {
		if err = s.Navigate(ctx, url, browser.LoadStateCommit, timeout); err == nil {
			return nil
		}
		// a broken session will not heal on retry
		if browser.IsSessionError(err) || ctx.Err() != nil || attempt == navigateAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return err
}

// mergeKeywords unions the universal and company lists, keeping first
// occurrence order and dropping case-insensitive duplicates.
func mergeKeywords(universal, company []string) []string {
	seen := make(map[string]bool, len(universal)+len(company))
	var out []string
	for _, kw := range append(append([]string{}, universal...), company...) {
		key := match.Fold(kw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	return out
}
