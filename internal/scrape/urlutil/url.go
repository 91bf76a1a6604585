package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidURL marks a link that could not be resolved to a well-formed
// absolute http(s) URL. Fatal to the single record being built, never to
// the run.
var ErrInvalidURL = errors.New("invalid url")

// jobPathPatterns mark same-domain URLs that look like individual
// postings rather than listing/chrome pages.
var jobPathPatterns = []string{
	"/job/", "/jobs/",
	"/position/", "/positions/",
	"/career/", "/careers/",
	"/opening/", "/openings/",
	"/role/", "/roles/",
}

// Absolute resolves raw against base using standard URL-resolution
// semantics. raw may be absolute, scheme-relative, or path-relative.
func Absolute(raw, base string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty link", ErrInvalidURL)
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: base %q: %v", ErrInvalidURL, base, err)
	}
	u, err := b.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q resolved to %q", ErrInvalidURL, raw, u.String())
	}
	return u.String(), nil
}

// Canonicalize produces the comparison key used for dedup and history
// membership: lowercased scheme/host, no fragment, tracking params
// stripped, deterministic query order.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	// drop common tracking params
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "mc_cid" || lk == "mc_eid" ||
			lk == "mkt_tok" {
			q.Del(k)
		}
	}

	// linkedin job pages are identified by currentJobId alone
	if strings.Contains(u.Host, "linkedin.com") {
		keep := url.Values{}
		if v := q.Get("currentJobId"); v != "" {
			keep.Set("currentJobId", v)
		}
		q = keep
	}

	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// SameURL reports whether two URLs point at the same page once query
// strings and trailing slashes are ignored. Used to skip the listing page
// itself when harvesting its links.
func SameURL(a, b string) bool {
	return stripForCompare(a) == stripForCompare(b)
}

func stripForCompare(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return strings.TrimRight(u, "/")
}

// IsJobURL reports whether u plausibly points at a job posting. External
// domains pass (the board may hand off to an external ATS); same-domain
// URLs must carry a job-like path segment.
func IsJobURL(u, pageDomain string) bool {
	if !strings.HasPrefix(u, "http") {
		return false
	}
	if Domain(u) != pageDomain {
		return true
	}
	lu := strings.ToLower(u)
	for _, p := range jobPathPatterns {
		if strings.Contains(lu, p) {
			return true
		}
	}
	return false
}

// Domain returns the lowercased host of u, or "" if u does not parse.
func Domain(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}
