// Package extract turns rendered page content into job candidates. A
// fixed cascade of strategies runs against an immutable PageView
// snapshot: custom selectors when configured, embedded frames when
// enabled, then the generic heuristics. The first strategy that yields a
// title-valid candidate wins; an empty result is zero matches, not an
// error.
package extract

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

// PageView is an immutable snapshot of rendered content: the HTML plus
// the URL it was rendered at, which anchors relative-link resolution.
type PageView struct {
	URL  string
	HTML string
}

// Snapshot captures the current page (and, when withFrames, each
// embedded frame) after waiting for the configured load state. Load
// state timeouts are tolerated: whatever has rendered is harvested.
func Snapshot(ctx context.Context, s browser.Session, state browser.LoadState, timeout time.Duration, withFrames bool) (PageView, []PageView, error) {
	if err := s.WaitForLoadState(ctx, state, timeout); err != nil && browser.IsSessionError(err) {
		return PageView{}, nil, err
	}

	html, err := s.Content()
	if err != nil {
		return PageView{}, nil, err
	}
	view := PageView{URL: s.URL(), HTML: html}

	if !withFrames {
		return view, nil, nil
	}

	frames, err := s.Frames()
	if err != nil {
		return view, nil, err
	}
	var frameViews []PageView
	for _, f := range frames {
		// inaccessible frames are skipped, not fatal
		if err := f.WaitForLoadState(ctx, state, timeout); err != nil && browser.IsSessionError(err) {
			continue
		}
		content, err := f.Content()
		if err != nil {
			continue
		}
		frameViews = append(frameViews, PageView{URL: f.URL(), HTML: content})
	}
	return view, frameViews, nil
}

// Pipeline is the strategy cascade. Strategies run in fixed priority
// order; the first one producing at least one valid candidate wins.
type Pipeline struct {
	strategies []strategy
}

type strategy interface {
	name() string
	applies(co config.Company) bool
	extract(view PageView, frames []PageView, co config.Company) []domain.JobRecord
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		strategies: []strategy{
			customStrategy{},
			iframeStrategy{},
			defaultStrategy{},
		},
	}
}

// Extract runs the cascade over the snapshot. Records come back in
// document order, deduplicated within the page; cross-page dedup happens
// upstream after the merge.
func (p *Pipeline) Extract(view PageView, frames []PageView, co config.Company) []domain.JobRecord {
	for _, s := range p.strategies {
		if !s.applies(co) {
			continue
		}
		if records := s.extract(view, frames, co); len(records) > 0 {
			return records
		}
	}
	return nil
}

// --- helpers shared by the strategies ---

func parseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// inChrome reports whether the node sits inside nav/header/footer.
func inChrome(sel *goquery.Selection) bool {
	return sel.ParentsFiltered("nav, header, footer").Length() > 0
}

func validTitle(title string) bool {
	return len(strings.TrimSpace(title)) >= minTitleLength
}

func excludedByTitle(title string, patterns []string) bool {
	lt := strings.ToLower(title)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lt, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func excludedByURL(u string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(u, p) {
			return true
		}
	}
	return false
}

// titleFromContainer tries, in order: the custom title selector, the
// link's own text, then the first heading inside the container.
func titleFromContainer(container *goquery.Selection, titleSelector string, link *goquery.Selection) string {
	if titleSelector != "" {
		if el := container.Find(titleSelector).First(); el.Length() > 0 {
			if t := cleanText(el.Text()); t != "" {
				return t
			}
		}
	}
	if link != nil {
		if t := cleanText(link.Text()); t != "" {
			return t
		}
	}
	if h := container.Find("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
		return cleanText(h.Text())
	}
	return ""
}

func descriptionFromContainer(container *goquery.Selection, descSelector string) string {
	if descSelector != "" {
		if el := container.Find(descSelector).First(); el.Length() > 0 {
			return cleanText(el.Text())
		}
	}
	return cleanText(container.Text())
}
