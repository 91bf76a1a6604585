// Package match scores harvested postings against configured keywords
// and location filters. Matching runs over folded text (lowercased,
// diacritics stripped) so "Zürich" still hits the keyword "zurich".
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips combining marks.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Engine holds the compiled keyword patterns for one company (universal
// plus company-specific). Word-boundary matching keeps "python" from
// hitting "MicroPython".
type Engine struct {
	keywords []string
	patterns []*regexp.Regexp
}

func New(keywords []string) *Engine {
	e := &Engine{}
	for _, kw := range keywords {
		folded := Fold(strings.TrimSpace(kw))
		if folded == "" {
			continue
		}
		e.keywords = append(e.keywords, kw)
		e.patterns = append(e.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(folded)+`\b`))
	}
	return e
}

// Match returns the configured keywords that hit in text, in
// configuration order.
func (e *Engine) Match(text string) []string {
	if text == "" {
		return nil
	}
	folded := Fold(text)
	var matched []string
	for i, p := range e.patterns {
		if p.MatchString(folded) {
			matched = append(matched, e.keywords[i])
		}
	}
	return matched
}

// Filter drops records failing the location filters or matching no
// keyword, and stamps MatchedKeywords on the survivors. The record's
// location text is its title plus description.
func (e *Engine) Filter(records []domain.JobRecord, lf *config.LocationFilters) []domain.JobRecord {
	var out []domain.JobRecord
	for _, r := range records {
		text := strings.TrimSpace(r.Title + " " + r.Description)
		if droppedByLocation(text, lf) {
			continue
		}
		kws := e.Match(text)
		if len(kws) == 0 {
			continue
		}
		r.MatchedKeywords = kws
		out = append(out, r)
	}
	return out
}

// droppedByLocation applies include before exclude; both may apply. An
// empty include list accepts everything, any exclude hit drops.
func droppedByLocation(text string, lf *config.LocationFilters) bool {
	if lf == nil {
		return false
	}
	folded := Fold(text)
	if len(lf.Include) > 0 {
		hit := false
		for _, p := range lf.Include {
			if p != "" && strings.Contains(folded, Fold(p)) {
				hit = true
				break
			}
		}
		if !hit {
			return true
		}
	}
	for _, p := range lf.Exclude {
		if p != "" && strings.Contains(folded, Fold(p)) {
			return true
		}
	}
	return false
}
