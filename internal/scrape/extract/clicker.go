package extract

import (
	"context"
	"strings"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

// Click timing bounds. Vars so tests can run the loop without real
// browser latencies.
var (
	containerWaitTimeout = 10 * time.Second
	urlChangeTimeout     = 5 * time.Second
	urlPollInterval      = 250 * time.Millisecond
	postNavigationDelay  = time.Second
)

// ClickHarvest extracts postings from boards that navigate through script
// handlers instead of href links. Each configured container is clicked in
// turn, the landed URL recorded as the job URL, and the session steered
// back to the listing page. Per-item failures recover to the listing; only
// a broken session aborts.
func ClickHarvest(ctx context.Context, s browser.Session, co config.Company) ([]domain.JobRecord, error) {
	sc := co.Scraping
	if sc == nil || len(sc.ContainerSelectors) == 0 {
		return nil, nil
	}

	state := browser.LoadState(co.WaitForLoadState)
	timeout := time.Duration(co.TimeoutMS) * time.Millisecond
	listing := s.URL()

	selector := ""
	for _, candidate := range sc.ContainerSelectors {
		_, err := s.Find(ctx, candidate, containerWaitTimeout)
		if err == nil {
			selector = candidate
			break
		}
		if browser.IsSessionError(err) || ctx.Err() != nil {
			return nil, err
		}
	}
	if selector == "" {
		return nil, nil
	}

	containers, err := s.FindAll(ctx, selector)
	if err != nil {
		return nil, err
	}
	total := len(containers)

	var records []domain.JobRecord
	for index := 0; index < total; index++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		_ = s.WaitForLoadState(ctx, state, timeout)

		// re-resolve on every pass, the DOM is rebuilt after each return
		els, err := s.FindAll(ctx, selector)
		if err != nil {
			if browser.IsSessionError(err) {
				return records, err
			}
			continue
		}
		if index >= len(els) {
			continue
		}
		el := els[index]

		title := clickTitle(ctx, s, el, selector, sc.TitleSelector, index)

		if err := el.Click(ctx); err != nil {
			if browser.IsSessionError(err) {
				return records, err
			}
			if err := recoverToListing(ctx, s, listing, state, timeout); err != nil {
				return records, err
			}
			continue
		}

		landed := awaitURLChange(ctx, s, listing)
		if landed != listing && !strings.HasSuffix(landed, "/") {
			records = append(records, domain.JobRecord{
				Title:       title,
				URL:         landed,
				Description: title,
			})
		}

		if err := recoverToListing(ctx, s, listing, state, timeout); err != nil {
			return records, err
		}
		_, _ = s.Find(ctx, selector, urlChangeTimeout)
		if err := pause(ctx, postNavigationDelay); err != nil {
			return records, err
		}
	}
	return records, nil
}

// clickTitle reads the title before the click destroys the listing DOM.
// A configured title selector is resolved as a descendant of the
// container selector, aligned by index.
func clickTitle(ctx context.Context, s browser.Session, el browser.Element, containerSel, titleSel string, index int) string {
	if titleSel != "" {
		if titles, err := s.FindAll(ctx, containerSel+" "+titleSel); err == nil && index < len(titles) {
			if t, err := titles[index].Text(ctx); err == nil {
				if title := cleanText(t); title != "" {
					return title
				}
			}
		}
	}
	t, err := el.Text(ctx)
	if err != nil {
		return ""
	}
	return cleanText(t)
}

func awaitURLChange(ctx context.Context, s browser.Session, from string) string {
	deadline := time.Now().Add(urlChangeTimeout)
	for {
		if u := s.URL(); u != from {
			return u
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return s.URL()
		}
		if err := pause(ctx, urlPollInterval); err != nil {
			return s.URL()
		}
	}
}

func recoverToListing(ctx context.Context, s browser.Session, listing string, state browser.LoadState, timeout time.Duration) error {
	if err := s.Navigate(ctx, listing, state, timeout); err != nil {
		if browser.IsSessionError(err) || ctx.Err() != nil {
			return err
		}
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
