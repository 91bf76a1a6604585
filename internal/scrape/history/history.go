// Package history classifies the current run's matches against the
// previous run's rendered report. The prior report is the only persisted
// state: its job anchors are re-indexed into a URL set, and anything not
// in the set is new.
package history

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/urlutil"
)

// Classified is one match with its new-vs-seen verdict.
type Classified struct {
	Record domain.JobRecord
	IsNew  bool
}

// BuildIndex parses a prior report and collects the canonical URLs of its
// job anchors. An empty or unparseable blob yields an empty index, which
// makes every record of the current run new (first-run behavior).
func BuildIndex(artifact string) mapset.Set[string] {
	index := mapset.NewSet[string]()
	if strings.TrimSpace(artifact) == "" {
		return index
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(artifact))
	if err != nil {
		return index
	}
	doc.Find("a.job-link[href]").Each(func(_ int, link *goquery.Selection) {
		if href := strings.TrimSpace(link.AttrOr("href", "")); href != "" {
			index.Add(urlutil.Canonicalize(href))
		}
	})
	return index
}

// Classify marks each record new or previously seen by canonical URL
// membership. Pure; input order is preserved.
func Classify(records []domain.JobRecord, index mapset.Set[string]) []Classified {
	out := make([]Classified, 0, len(records))
	for _, r := range records {
		out = append(out, Classified{
			Record: r,
			IsNew:  !index.Contains(urlutil.Canonicalize(r.URL)),
		})
	}
	return out
}
