package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

const priorReport = `<html><body>
	<h2>Acme</h2>
	<ul>
		<li><a class="job-link" href="https://acme.example.com/jobs/1?utm_source=mail">Backend Engineer</a></li>
		<li><a class="job-link" href="https://acme.example.com/jobs/2">Data Engineer</a></li>
	</ul>
	<a href="https://acme.example.com/jobs/3">not a job anchor</a>
</body></html>`

func TestBuildIndex(t *testing.T) {
	index := BuildIndex(priorReport)
	assert.Equal(t, 2, index.Cardinality())
	assert.True(t, index.Contains("https://acme.example.com/jobs/1"))
	assert.False(t, index.Contains("https://acme.example.com/jobs/3"))
}

func TestBuildIndexEmptyArtifact(t *testing.T) {
	assert.Zero(t, BuildIndex("").Cardinality())
	assert.Zero(t, BuildIndex("   \n").Cardinality())
}

func TestClassify(t *testing.T) {
	index := BuildIndex(priorReport)
	records := []domain.JobRecord{
		{Title: "Backend Engineer", URL: "https://acme.example.com/jobs/1"},
		// tracking params and fragment do not make a seen job new again
		{Title: "Data Engineer", URL: "https://acme.example.com/jobs/2?utm_campaign=x#apply"},
		{Title: "Platform Engineer", URL: "https://acme.example.com/jobs/9"},
	}

	got := Classify(records, index)
	require.Len(t, got, 3)
	assert.False(t, got[0].IsNew)
	assert.False(t, got[1].IsNew)
	assert.True(t, got[2].IsNew)
}

func TestClassifyFirstRunAllNew(t *testing.T) {
	got := Classify([]domain.JobRecord{{URL: "https://acme.example.com/jobs/1"}}, BuildIndex(""))
	require.Len(t, got, 1)
	assert.True(t, got[0].IsNew)
}
