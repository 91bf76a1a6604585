package extract

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/urlutil"
)

// customStrategy reads boards whose layout is described by per-company
// selectors. It runs first so a configured board never falls through to
// the generic heuristics.
type customStrategy struct{}

func (customStrategy) name() string { return "custom" }

func (customStrategy) applies(co config.Company) bool {
	return co.Scraping != nil && len(co.Scraping.ContainerSelectors) > 0
}

func (customStrategy) extract(view PageView, _ []PageView, co config.Company) []domain.JobRecord {
	sc := co.Scraping
	doc, err := parseHTML(view.HTML)
	if err != nil {
		return nil
	}

	// first container selector with matches wins
	var containers *goquery.Selection
	for _, selector := range sc.ContainerSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			containers = sel
			break
		}
	}
	if containers == nil {
		return nil
	}

	found := mapset.NewSet[string]()
	var records []domain.JobRecord
	containers.Each(func(_ int, container *goquery.Selection) {
		if inChrome(container) {
			return
		}

		var link *goquery.Selection
		if sc.LinkSelector != "" {
			link = container.Find(sc.LinkSelector).First()
		} else {
			link = container.Find("a[href]").First()
		}
		if link.Length() == 0 {
			return
		}

		u, err := urlutil.Absolute(link.AttrOr("href", ""), view.URL)
		if err != nil {
			return
		}
		if excludedByURL(u, sc.ExcludePatterns.URLs) {
			return
		}
		// the listing page linking to itself is not a posting
		if urlutil.SameURL(u, view.URL) {
			return
		}

		title := titleFromContainer(container, sc.TitleSelector, link)
		if !validTitle(title) {
			return
		}
		if excludedByTitle(title, sc.ExcludePatterns.Titles) {
			return
		}

		if !found.Add(u) {
			return
		}
		records = append(records, domain.JobRecord{
			Title:       title,
			URL:         u,
			Description: descriptionFromContainer(container, sc.DescriptionSelector),
		})
	})
	return records
}
