package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

func urls(records []domain.JobRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.URL)
	}
	return out
}

func TestCustomStrategy(t *testing.T) {
	html := `<html><body>
		<nav><div class="job-card"><a href="/jobs/nav">Navigation Job</a></div></nav>
		<div class="job-card"><a href="/jobs/1">Backend Engineer</a><p class="loc">Berlin, Germany</p></div>
		<div class="job-card"><a href="/jobs/2">Engineering Intern</a></div>
		<div class="job-card"><a href="/jobs/1">Backend Engineer</a></div>
		<div class="job-card"><a href="/careers">Careers</a></div>
		<div class="job-card"><a href="mailto:jobs@acme.example.com">Write us</a></div>
	</body></html>`
	view := PageView{URL: "https://acme.example.com/careers", HTML: html}

	co := config.Company{Scraping: &config.Scraping{
		ContainerSelectors:  []string{".does-not-exist", ".job-card"},
		DescriptionSelector: ".loc",
		ExcludePatterns:     config.ExcludePatterns{Titles: []string{"intern"}},
	}}

	records := customStrategy{}.extract(view, nil, co)
	require.Len(t, records, 1)
	assert.Equal(t, "Backend Engineer", records[0].Title)
	assert.Equal(t, "https://acme.example.com/jobs/1", records[0].URL)
	assert.Equal(t, "Berlin, Germany", records[0].Description)
}

func TestCustomStrategyLinkAndTitleSelectors(t *testing.T) {
	html := `<html><body>
		<li class="row"><a class="apply" href="/apply/9">Apply</a>
			<a class="detail" href="/jobs/9"><span class="t">Staff Engineer</span></a></li>
	</body></html>`
	view := PageView{URL: "https://acme.example.com/careers", HTML: html}

	co := config.Company{Scraping: &config.Scraping{
		ContainerSelectors: []string{"li.row"},
		LinkSelector:       "a.detail",
		TitleSelector:      "span.t",
	}}

	records := customStrategy{}.extract(view, nil, co)
	require.Len(t, records, 1)
	assert.Equal(t, "Staff Engineer", records[0].Title)
	assert.Equal(t, "https://acme.example.com/jobs/9", records[0].URL)
}

func TestIframeStrategyResolvesAgainstFrame(t *testing.T) {
	frame := PageView{
		URL: "https://boards.example.io/embed/acme",
		HTML: `<html><body>
			<div class="opening"><a href="/acme/jobs/4012345">Senior Backend Engineer</a><p>Remote, EU</p></div>
			<div class="opening"><a href="/acme/jobs/4012346">Engineering</a></div>
			<div class="opening"><a href="#top">View All Openings</a></div>
		</body></html>`,
	}
	co := config.Company{UseIframe: true}

	records := iframeStrategy{}.extract(PageView{}, []PageView{frame}, co)
	require.Len(t, records, 1)
	assert.Equal(t, "Senior Backend Engineer", records[0].Title)
	// resolved against the frame origin, not the parent page
	assert.Equal(t, "https://boards.example.io/acme/jobs/4012345", records[0].URL)
	assert.Equal(t, "Remote, EU", records[0].Description)
}

func TestIframeStrategySkipsNonJobFrames(t *testing.T) {
	frame := PageView{
		URL:  "https://ads.example.net/banner",
		HTML: `<html><body><div class="opening"><a href="/x/y/z/1">Subscribe to our newsletter today</a></div></body></html>`,
	}
	records := iframeStrategy{}.extract(PageView{}, []PageView{frame}, config.Company{UseIframe: true})
	assert.Empty(t, records)
}

func TestDefaultStrategy(t *testing.T) {
	html := `<html><body>
		<nav><div class="job-nav"><a href="/jobs/999">All open jobs</a></div></nav>
		<div class="job-listing"><a href="/jobs/101"><h3>Platform Engineer</h3></a><span>Berlin</span></div>
		<div class="job-alert"><a href="/careers/alerts">Join our talent community</a></div>
		<div class="job-search"><a href="/careers/search?q=go">Search all jobs</a></div>
		<table><tr><td><a href="/positions/7">Data Scientist</a></td><td>Remote</td></tr></table>
		<a href="/job/42">Site Reliability Engineer</a>
	</body></html>`
	view := PageView{URL: "https://acme.example.com/careers", HTML: html}

	records := defaultStrategy{}.extract(view, nil, config.Company{})
	assert.Equal(t, []string{
		"https://acme.example.com/jobs/101",
		"https://acme.example.com/positions/7",
		"https://acme.example.com/job/42",
	}, urls(records))
	assert.Equal(t, "Platform Engineer", records[0].Title)
	assert.Equal(t, "Data Scientist", records[1].Title)
	assert.Equal(t, "Site Reliability Engineer", records[2].Title)
}

func TestDefaultStrategyRequiresJobPathOnSameDomain(t *testing.T) {
	html := `<html><body>
		<div class="job-listing"><a href="/about/team">Meet The Team</a></div>
		<div class="job-listing"><a href="https://boards.other.io/acme/42">Backend Engineer</a></div>
	</body></html>`
	view := PageView{URL: "https://acme.example.com/careers", HTML: html}

	records := defaultStrategy{}.extract(view, nil, config.Company{})
	// same-domain links need a job path segment, external ATS links pass
	assert.Equal(t, []string{"https://boards.other.io/acme/42"}, urls(records))
}

func TestDefaultStrategySingleWordTitleOnlyFromLink(t *testing.T) {
	html := `<html><body>
		<div class="job-row"><a href="/careers/detail/50"><h3>Designer</h3></a></div>
		<div class="job-row"><a href="/careers/detail/51">Accountant</a></div>
	</body></html>`
	view := PageView{URL: "https://acme.example.com/careers", HTML: html}

	records := defaultStrategy{}.extract(view, nil, config.Company{})
	assert.Equal(t, []string{"https://acme.example.com/careers/detail/51"}, urls(records))
}

func TestPipelineCascade(t *testing.T) {
	p := NewPipeline()

	// custom configured but matching nothing falls through to default
	html := `<html><body><div class="job-listing"><a href="/jobs/5">Backend Engineer</a></div></body></html>`
	view := PageView{URL: "https://acme.example.com/careers", HTML: html}
	co := config.Company{Scraping: &config.Scraping{ContainerSelectors: []string{".missing"}}}
	records := p.Extract(view, nil, co)
	require.Len(t, records, 1)
	assert.Equal(t, "https://acme.example.com/jobs/5", records[0].URL)

	// custom match wins, default never runs
	html = `<html><body>
		<section class="cards"><div class="card"><a href="/jobs/1">Backend Engineer</a></div></section>
		<div class="job-listing"><a href="/jobs/8">Should Not Appear</a></div>
	</body></html>`
	view.HTML = html
	co.Scraping.ContainerSelectors = []string{".card"}
	records = p.Extract(view, nil, co)
	require.Len(t, records, 1)
	assert.Equal(t, "https://acme.example.com/jobs/1", records[0].URL)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Backend Engineer Berlin", cleanText("  Backend Engineer\n\t Berlin  "))
	assert.Equal(t, "", cleanText("  \n "))
}
