package extract

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/urlutil"
)

// iframeStrategy harvests boards embedded as frames (Greenhouse, Breezy
// and similar hosted ATS widgets). Links inside a frame resolve against
// the frame's own URL, never the parent page's.
type iframeStrategy struct{}

func (iframeStrategy) name() string { return "iframe" }

func (iframeStrategy) applies(co config.Company) bool { return co.UseIframe }

func (iframeStrategy) extract(_ PageView, frames []PageView, _ config.Company) []domain.JobRecord {
	seen := mapset.NewSet[string]()
	var records []domain.JobRecord
	for _, frame := range frames {
		doc, err := parseHTML(frame.HTML)
		if err != nil {
			continue
		}
		if !looksLikeJobBoard(doc) {
			continue
		}
		records = append(records, harvestFrame(doc, frame.URL, seen)...)
	}
	return records
}

func looksLikeJobBoard(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Text())
	for _, indicator := range jobIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

func harvestFrame(doc *goquery.Document, frameURL string, seen mapset.Set[string]) []domain.JobRecord {
	// a single comma-joined Find keeps matches unique and in document order
	containers := doc.Find(strings.Join(iframeJobSelectors, ", "))

	var records []domain.JobRecord
	containers.Each(func(_ int, container *goquery.Selection) {
		link := container.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if excludedByURL(href, iframeExcludeURLPatterns) {
			return
		}

		u, err := urlutil.Absolute(href, frameURL)
		if err != nil {
			return
		}
		// posting pages live below the board root
		if strings.Count(u, "/") < minURLDepth {
			return
		}

		title := titleFromContainer(container, "", link)
		if title == "" || excludedByTitle(title, iframeExcludeTitleKeywords) {
			return
		}
		if len(strings.Fields(title)) < minTitleWords {
			return
		}

		description := ""
		if el := container.Find("p, div").First(); el.Length() > 0 {
			description = cleanText(el.Text())
		}

		if !seen.Add(u + "\x00" + title) {
			return
		}
		records = append(records, domain.JobRecord{
			Title:       title,
			URL:         u,
			Description: description,
		})
	})
	return records
}
