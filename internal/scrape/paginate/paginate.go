// Package paginate drives a job board through its listing pages. The
// controller is a small state machine around a live browser session:
// pages are announced as harvested, Advance clicks whatever next/more
// control it can find, and a visited-URL set breaks redirect loops.
package paginate

import (
	"context"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/time/rate"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/scrape/urlutil"
)

type State string

const (
	StateIdle         State = "idle"
	StatePageLoaded   State = "page_loaded"
	StateAdvancing    State = "advancing"
	StateExhausted    State = "exhausted"
	StateLimitReached State = "limit_reached"
)

// probeTimeout bounds the visibility check per candidate selector; a
// missing control must not stall the whole advance.
const probeTimeout = time.Second

// defaultSelectors cover the common next/more control shapes. The
// :has-text selectors are playwright locators, resolved by the live
// session rather than by HTML parsing.
var defaultSelectors = []string{
	`a[aria-label="Next"]`,
	`a[aria-label="Next page"]`,
	`button[aria-label="Next"]`,
	`button[aria-label="Next page"]`,

	`a[rel="next"]`,

	`a.next-page`,
	`a.pagination-next`,
	`button.next-page`,
	`button.pagination-next`,

	`nav a:has-text("Next")`,
	`nav button:has-text("Next")`,
	`div[role="navigation"] a:has-text("Next")`,
	`div[role="navigation"] button:has-text("Next")`,

	`button:has-text("Show More")`,
	`button:has-text("Load More")`,
	`a:has-text("Show More")`,
	`a:has-text("Load More")`,

	`nav.pagination a.next`,
	`ul.pagination a.next`,
	`div.pagination a.next`,
	`nav[aria-label*="pagination" i] a:last-child`,
}

// nextKeywords validate a candidate's text so a stray match (a "Next
// steps" blog link) is not clicked.
var nextKeywords = []string{"next", "more", "load more", "show more"}

var nextSymbols = []string{">", "→", "»"}

// Controller pages through one company's board. Single-goroutine use,
// like the session it wraps.
type Controller struct {
	s         browser.Session
	selectors []string
	disabled  bool
	maxPages  int
	timeout   time.Duration
	limiter   *rate.Limiter
	visited   mapset.Set[string]
	state     State
	pages     int
}

// New builds a controller. nil selectors means the built-in defaults; an
// explicitly empty list disables pagination for the board. timeout bounds
// the post-click load wait.
func New(s browser.Session, selectors *[]string, maxPages int, timeout time.Duration) *Controller {
	c := &Controller{
		s:        s,
		maxPages: maxPages,
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		visited:  mapset.NewSet[string](),
		state:    StateIdle,
	}
	switch {
	case selectors == nil:
		c.selectors = defaultSelectors
	case len(*selectors) == 0:
		c.disabled = true
	default:
		c.selectors = *selectors
	}
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Pages() int { return c.pages }

// PageLoaded records a harvested page. The URL joins the visited set in
// canonical form so tracking-param variants of the same page still trip
// the loop guard.
func (c *Controller) PageLoaded(url string) {
	c.visited.Add(urlutil.Canonicalize(url))
	c.pages++
	c.state = StatePageLoaded
}

// Advance tries to reach the next page. It returns true when a next/more
// control was clicked and the landing page should be harvested; false
// when the board is done (state tells why). The only returned errors are
// a broken session or a cancelled context.
func (c *Controller) Advance(ctx context.Context) (bool, error) {
	if c.disabled {
		c.state = StateExhausted
		return false, nil
	}
	if c.pages >= c.maxPages {
		c.state = StateLimitReached
		return false, nil
	}

	c.state = StateAdvancing
	origin := c.s.URL()

	for _, selector := range c.selectors {
		el, err := c.s.Find(ctx, selector, probeTimeout)
		if err != nil {
			if browser.IsSessionError(err) || ctx.Err() != nil {
				return false, err
			}
			continue
		}

		text, err := el.Text(ctx)
		if err != nil {
			if browser.IsSessionError(err) {
				return false, err
			}
			continue
		}
		if !looksLikeNext(text) {
			continue
		}

		// politeness pacing between page advances
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}
		if err := el.Click(ctx); err != nil {
			if browser.IsSessionError(err) || ctx.Err() != nil {
				return false, err
			}
			continue
		}
		if err := c.s.WaitForLoadState(ctx, browser.LoadStateNetworkIdle, c.timeout); err != nil {
			if browser.IsSessionError(err) {
				return false, err
			}
			// slow idle is fine, harvest whatever rendered
		}

		// landing on a page already harvested means the board is cycling;
		// staying on the same URL is in-place growth (load more)
		landing := c.s.URL()
		if landing != origin && c.visited.Contains(urlutil.Canonicalize(landing)) {
			c.state = StateExhausted
			return false, nil
		}
		return true, nil
	}

	c.state = StateExhausted
	return false, nil
}

func looksLikeNext(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, kw := range nextKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, sym := range nextSymbols {
		if strings.Contains(text, sym) {
			return true
		}
	}
	return false
}
