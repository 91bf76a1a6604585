package report

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/history"
)

// CompanyGroup is one company's matches within a report section.
type CompanyGroup struct {
	Name string
	Jobs []domain.JobRecord
}

type pageData struct {
	GeneratedAt string
	Total       int
	NewCount    int
	SeenCount   int
	New         []CompanyGroup
	Seen        []CompanyGroup
}

// the job-link class is load-bearing: the next run re-indexes these
// anchors to tell new postings from seen ones
var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Job Matches</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; margin: 0; background: #f4f5f7; }
.container { max-width: 1100px; margin: 0 auto; padding: 24px; }
.header { background: #3b4a6b; color: #fff; padding: 24px; border-radius: 8px; }
.header p { margin: 4px 0 0; opacity: .85; }
.section-title { margin: 32px 0 12px; font-size: 1.3em; }
.company { background: #fff; border-radius: 8px; padding: 16px 20px; margin-bottom: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.company h3 { margin: 0 0 10px; border-left: 4px solid #3b4a6b; padding-left: 10px; }
.job { padding: 8px 0; border-top: 1px solid #eee; }
.job-link { color: #2456c4; font-weight: 600; text-decoration: none; }
.job-link:hover { text-decoration: underline; }
.keywords { color: #6c757d; font-size: .9em; }
.badge-new { background: #1d7a34; color: #fff; border-radius: 4px; padding: 1px 6px; font-size: .75em; margin-left: 6px; }
.empty { color: #6c757d; padding: 16px 0; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>Job Matches</h1>
<p>{{.Total}} match(es): {{.NewCount}} new, {{.SeenCount}} previously found. Generated {{.GeneratedAt}}.</p>
</div>
{{if .New}}
<h2 class="section-title">New matches</h2>
{{range .New}}
<div class="company">
<h3>{{.Name}}</h3>
{{range .Jobs}}
<div class="job">
<a class="job-link" href="{{.URL}}">{{.Title}}</a><span class="badge-new">new</span>
<div class="keywords">{{join .MatchedKeywords ", "}}</div>
</div>
{{end}}
</div>
{{end}}
{{end}}
{{if .Seen}}
<h2 class="section-title">Previously found</h2>
{{range .Seen}}
<div class="company">
<h3>{{.Name}}</h3>
{{range .Jobs}}
<div class="job">
<a class="job-link" href="{{.URL}}">{{.Title}}</a>
<div class="keywords">{{join .MatchedKeywords ", "}}</div>
</div>
{{end}}
</div>
{{end}}
{{end}}
{{if not .Total}}<p class="empty">No matching jobs found.</p>{{end}}
</div>
</body>
</html>
`))

// Render produces the HTML artifact from the classified matches.
func Render(classified []history.Classified, now time.Time) (string, error) {
	var fresh, seen []domain.JobRecord
	for _, c := range classified {
		if c.IsNew {
			fresh = append(fresh, c.Record)
		} else {
			seen = append(seen, c.Record)
		}
	}

	data := pageData{
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Total:       len(classified),
		NewCount:    len(fresh),
		SeenCount:   len(seen),
		New:         groupByCompany(fresh),
		Seen:        groupByCompany(seen),
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

func groupByCompany(records []domain.JobRecord) []CompanyGroup {
	byName := map[string][]domain.JobRecord{}
	for _, r := range records {
		byName[r.Company] = append(byName[r.Company], r)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]CompanyGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CompanyGroup{Name: name, Jobs: byName[name]})
	}
	return groups
}

// Summary renders the stdout view of the run.
func Summary(classified []history.Classified) string {
	if len(classified) == 0 {
		return "No matching jobs found."
	}

	var fresh, seen []domain.JobRecord
	for _, c := range classified {
		if c.IsNew {
			fresh = append(fresh, c.Record)
		} else {
			seen = append(seen, c.Record)
		}
	}

	var sb strings.Builder
	rule := strings.Repeat("=", 72)
	fmt.Fprintf(&sb, "%s\nFound %d matching job(s): %d new, %d previously found\n%s\n",
		rule, len(classified), len(fresh), len(seen), rule)

	writeSection := func(title string, records []domain.JobRecord) {
		if len(records) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s\n", title)
		for _, g := range groupByCompany(records) {
			fmt.Fprintf(&sb, "\n%s (%d)\n%s\n", g.Name, len(g.Jobs), strings.Repeat("-", 72))
			for _, j := range g.Jobs {
				fmt.Fprintf(&sb, "  %s\n    %s\n    keywords: %s\n",
					j.Title, j.URL, strings.Join(j.MatchedKeywords, ", "))
			}
		}
	}
	writeSection("NEW MATCHES", fresh)
	writeSection("PREVIOUSLY FOUND", seen)
	return sb.String()
}
