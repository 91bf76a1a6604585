package domain

// JobRecord is one harvested job posting. URL is always absolute and acts
// as the dedup key within a company's result set and across the merged
// run output.
type JobRecord struct {
	Company         string
	Title           string
	URL             string
	Description     string
	MatchedKeywords []string
}

// DedupeByURL collapses records sharing a URL, keeping the first
// occurrence so document order survives the merge.
func DedupeByURL(records []JobRecord) []JobRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}
