package extract

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/urlutil"
)

// defaultStrategy is the last resort: generic container heuristics over
// class/id/data attributes, data-qa result items, qualifying table rows,
// plus direct job-path links for boards with no container markup at all.
type defaultStrategy struct{}

func (defaultStrategy) name() string { return "default" }

func (defaultStrategy) applies(config.Company) bool { return true }

func (defaultStrategy) extract(view PageView, _ []PageView, _ config.Company) []domain.JobRecord {
	doc, err := parseHTML(view.HTML)
	if err != nil {
		return nil
	}

	found := mapset.NewSet[string]()
	var records []domain.JobRecord
	for _, container := range findJobContainers(doc) {
		if rec, ok := jobFromContainer(container, view.URL, found); ok {
			records = append(records, rec)
		}
	}
	records = append(records, directJobLinks(doc, view.URL, found)...)
	return records
}

func findJobContainers(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection
	collect := func(sel *goquery.Selection) {
		sel.Each(func(_ int, c *goquery.Selection) {
			containers = append(containers, c)
		})
	}

	// job-ish class/id/data attributes on the usual container tags;
	// duplicates across patterns are harmless, the URL set dedups later
	for _, tag := range []string{"article", "li", "div"} {
		for _, kw := range containerKeywords {
			collect(doc.Find(fmt.Sprintf(`%s[class*=%q]`, tag, kw)))
			collect(doc.Find(fmt.Sprintf(`%s[id*=%q]`, tag, kw)))
			collect(doc.Find(fmt.Sprintf(`%s[data-qa*=%q]`, tag, kw)))
			collect(doc.Find(fmt.Sprintf(`%s[data-testid*=%q]`, tag, kw)))
		}
	}

	// data-qa result items that carry no job wording
	for _, selector := range resultItemPatterns {
		doc.Find(selector).Each(func(_ int, c *goquery.Selection) {
			dataQA := strings.ToLower(c.AttrOr("data-qa", ""))
			for _, excl := range dataAttrExclusions {
				if strings.Contains(dataQA, excl) {
					return
				}
			}
			containers = append(containers, c)
		})
	}

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		if validTableRow(row) {
			containers = append(containers, row)
		}
	})
	return containers
}

func validTableRow(row *goquery.Selection) bool {
	if inChrome(row) {
		return false
	}
	hasLink := false
	row.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href := link.AttrOr("href", "")
		if strings.HasPrefix(href, "http") || strings.HasPrefix(href, "/") {
			hasLink = true
			return false
		}
		return true
	})
	if !hasLink {
		return false
	}
	return len(cleanText(row.Text())) > minRowTextLength
}

func jobFromContainer(container *goquery.Selection, pageURL string, found mapset.Set[string]) (domain.JobRecord, bool) {
	var zero domain.JobRecord
	if inChrome(container) {
		return zero, false
	}

	link := container.Find("a[href]").First()
	if link.Length() == 0 {
		return zero, false
	}
	u, err := urlutil.Absolute(link.AttrOr("href", ""), pageURL)
	if err != nil {
		return zero, false
	}
	if urlutil.SameURL(u, pageURL) || strings.Contains(u, "/search") || strings.Contains(u, "/filter") {
		return zero, false
	}
	if !urlutil.IsJobURL(u, urlutil.Domain(pageURL)) {
		return zero, false
	}

	title, fromLink := containerTitle(container, link)
	if !validTitle(title) {
		return zero, false
	}
	// a one-word title is only trusted when it is the link's own text
	if len(strings.Fields(title)) < 2 && !fromLink {
		return zero, false
	}
	if excludedByTitle(title, nonJobKeywords) {
		return zero, false
	}

	if !found.Add(u) {
		return zero, false
	}
	return domain.JobRecord{
		Title:       title,
		URL:         u,
		Description: cleanText(container.Text()),
	}, true
}

// containerTitle picks the candidate's title and reports whether it came
// from the link text. Table rows look inside the link's own cell; other
// containers prefer headings.
func containerTitle(container, link *goquery.Selection) (string, bool) {
	if goquery.NodeName(container) == "tr" {
		return tableRowTitle(container, link)
	}

	if h := container.Find("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
		return cleanText(h.Text()), false
	}
	if t := cleanText(link.Text()); t != "" {
		return t, true
	}

	title := ""
	container.Find("span, div, p").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		class := strings.ToLower(el.AttrOr("class", ""))
		if strings.Contains(class, "title") || strings.Contains(class, "name") {
			title = cleanText(el.Text())
			return false
		}
		return true
	})
	if title != "" {
		return title, false
	}

	all := cleanText(container.Text())
	if r := []rune(all); len(r) > 100 {
		all = strings.TrimSpace(string(r[:100]))
	}
	return all, false
}

func tableRowTitle(_, link *goquery.Selection) (string, bool) {
	cell := link.Closest("td, th")
	if cell.Length() == 0 {
		return cleanText(link.Text()), true
	}
	if h := cell.Find("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
		return cleanText(h.Text()), false
	}
	if t := cleanText(link.Text()); t != "" {
		return t, true
	}
	return cleanText(cell.Text()), false
}

// directJobLinks catches boards that mark postings by URL shape alone.
func directJobLinks(doc *goquery.Document, pageURL string, found mapset.Set[string]) []domain.JobRecord {
	var records []domain.JobRecord
	doc.Find(strings.Join(jobLinkSelectors, ", ")).Each(func(_ int, link *goquery.Selection) {
		if inChrome(link) {
			return
		}
		u, err := urlutil.Absolute(link.AttrOr("href", ""), pageURL)
		if err != nil {
			return
		}
		if urlutil.SameURL(u, pageURL) {
			return
		}
		title := cleanText(link.Text())
		if !validTitle(title) {
			return
		}
		if !found.Add(u) {
			return
		}
		description := ""
		if parent := link.Parent(); parent.Length() > 0 {
			description = cleanText(parent.Text())
		}
		records = append(records, domain.JobRecord{
			Title:       title,
			URL:         u,
			Description: description,
		})
	})
	return records
}
