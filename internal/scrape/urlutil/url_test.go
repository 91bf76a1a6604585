package urlutil

import (
	"errors"
	"testing"
)

func TestAbsolute(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		base    string
		want    string
		wantErr bool
	}{
		{"path relative", "/jobs/123", "https://example.com/careers", "https://example.com/jobs/123", false},
		{"document relative", "jobs/123", "https://example.com/careers/", "https://example.com/careers/jobs/123", false},
		{"already absolute", "https://other.com/x", "https://example.com", "https://other.com/x", false},
		{"scheme relative", "//cdn.example.com/j/9", "https://example.com", "https://cdn.example.com/j/9", false},
		{"empty", "", "https://example.com", "", true},
		{"javascript scheme", "javascript:void(0)", "https://example.com", "", true},
		{"mailto", "mailto:jobs@example.com", "https://example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Absolute(tt.raw, tt.base)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("want ErrInvalidURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips fragment", "https://example.com/jobs/1#apply", "https://example.com/jobs/1"},
		{"strips tracking", "https://example.com/jobs/1?utm_source=x&gclid=y&id=7", "https://example.com/jobs/1?id=7"},
		{"lowercases host", "HTTPS://Example.COM/Jobs/1", "https://example.com/Jobs/1"},
		{"keeps meaningful query", "https://example.com/jobs?dept=eng", "https://example.com/jobs?dept=eng"},
		{"linkedin keeps only job id", "https://www.linkedin.com/jobs/search/?currentJobId=42&refresh=true&position=3", "https://www.linkedin.com/jobs/search/?currentJobId=42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSameURL(t *testing.T) {
	if !SameURL("https://example.com/careers/", "https://example.com/careers?page=1") {
		t.Error("trailing slash and query should not matter")
	}
	if SameURL("https://example.com/careers", "https://example.com/jobs/1") {
		t.Error("distinct paths must differ")
	}
}

func TestIsJobURL(t *testing.T) {
	tests := []struct {
		name   string
		u      string
		domain string
		want   bool
	}{
		{"same domain job path", "https://example.com/jobs/123", "example.com", true},
		{"same domain chrome page", "https://example.com/about", "example.com", false},
		{"external domain always allowed", "https://boards.greenhouse.io/acme/jobs/1", "example.com", true},
		{"not http", "ftp://example.com/jobs/1", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsJobURL(tt.u, tt.domain); got != tt.want {
				t.Errorf("IsJobURL(%q) = %v, want %v", tt.u, got, tt.want)
			}
		})
	}
}

func TestDomain(t *testing.T) {
	if got := Domain("https://Example.com/jobs/1"); got != "example.com" {
		t.Errorf("got %q", got)
	}
}
