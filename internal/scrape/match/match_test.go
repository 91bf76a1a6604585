package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

func TestMatchWordBoundaries(t *testing.T) {
	e := New([]string{"python", "go", "c++"})

	cases := []struct {
		text string
		want []string
	}{
		{"Senior Python Developer", []string{"python"}},
		{"MicroPython firmware engineer", nil},
		{"Go backend services", []string{"go"}},
		{"Django is written in Python.", []string{"python"}},
		{"Golang services", nil},
		{"", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.Match(tc.text), "text %q", tc.text)
	}
}

func TestMatchFoldsDiacritics(t *testing.T) {
	e := New([]string{"zurich", "ingénieur"})

	assert.Equal(t, []string{"zurich"}, e.Match("Backend Engineer, Zürich office"))
	assert.Equal(t, []string{"ingénieur"}, e.Match("Ingenieur logiciel senior"))
}

func TestFilterLocation(t *testing.T) {
	e := New([]string{"engineer"})
	records := []domain.JobRecord{
		{Title: "Platform Engineer", Description: "Remote, US"},
		{Title: "Platform Engineer", Description: "Remote, US, California"},
		{Title: "Platform Engineer", Description: "Berlin, Germany"},
	}
	lf := &config.LocationFilters{
		Include: []string{"remote, us"},
		Exclude: []string{"california"},
	}

	got := e.Filter(records, lf)
	assert.Len(t, got, 1)
	assert.Equal(t, "Remote, US", got[0].Description)
	assert.Equal(t, []string{"engineer"}, got[0].MatchedKeywords)
}

func TestFilterDropsZeroMatch(t *testing.T) {
	e := New([]string{"rust"})
	records := []domain.JobRecord{
		{Title: "Rust Engineer", Description: "Core systems"},
		{Title: "Sales Manager", Description: "EMEA region"},
	}

	got := e.Filter(records, nil)
	assert.Len(t, got, 1)
	assert.Equal(t, "Rust Engineer", got[0].Title)
}

func TestFilterNilFiltersKeepsAll(t *testing.T) {
	e := New([]string{"engineer"})
	records := []domain.JobRecord{{Title: "Engineer", Description: "Anywhere"}}
	assert.Len(t, e.Filter(records, nil), 1)
}
