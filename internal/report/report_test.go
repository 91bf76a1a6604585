package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/history"
)

func classified() []history.Classified {
	return []history.Classified{
		{Record: domain.JobRecord{
			Company: "Acme", Title: "Backend Engineer",
			URL: "https://acme.example.com/jobs/1", MatchedKeywords: []string{"go", "backend"},
		}, IsNew: true},
		{Record: domain.JobRecord{
			Company: "Acme", Title: "Data Engineer",
			URL: "https://acme.example.com/jobs/2", MatchedKeywords: []string{"python"},
		}, IsNew: false},
		{Record: domain.JobRecord{
			Company: "Globex", Title: "Platform Engineer",
			URL: "https://globex.example.com/careers/7", MatchedKeywords: []string{"kubernetes"},
		}, IsNew: true},
	}
}

func TestRenderRoundTripsThroughHistory(t *testing.T) {
	html, err := Render(classified(), time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// the next run must be able to re-index every rendered job anchor
	index := history.BuildIndex(html)
	assert.Equal(t, 3, index.Cardinality())
	assert.True(t, index.Contains("https://acme.example.com/jobs/1"))
	assert.True(t, index.Contains("https://globex.example.com/careers/7"))

	assert.Contains(t, html, "3 match(es): 2 new, 1 previously found")
}

func TestRenderEmpty(t *testing.T) {
	html, err := Render(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, html, "No matching jobs found.")
}

func TestSummary(t *testing.T) {
	out := Summary(classified())
	assert.Contains(t, out, "Found 3 matching job(s): 2 new, 1 previously found")
	assert.Contains(t, out, "NEW MATCHES")
	assert.Contains(t, out, "PREVIOUSLY FOUND")
	// companies sorted within a section
	assert.Less(t, strings.Index(out, "Acme"), strings.Index(out, "Globex"))

	assert.Equal(t, "No matching jobs found.", Summary(nil))
}

func TestWriteAndReadPrior(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "job_matches.html")

	prior, err := ReadPrior(path)
	require.NoError(t, err)
	assert.Empty(t, prior)

	require.NoError(t, Write(path, "<html>run one</html>"))
	prior, err = ReadPrior(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>run one</html>", prior)
}
