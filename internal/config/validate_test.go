package config

import (
	"strings"
	"testing"
)

func baseConfig() Config {
	var cfg Config
	cfg.UniversalKeywords = []string{"engineer"}
	cfg.Companies = []Company{{
		Name:        "Acme",
		JobBoardURL: "https://acme.example.com/careers",
	}}
	return cfg
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	out, res := NormalizeAndValidate(baseConfig())
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	co := out.Companies[0]
	if co.TimeoutMS != DefaultTimeoutMS {
		t.Errorf("timeout_ms default: got %d", co.TimeoutMS)
	}
	if co.MaxPages != DefaultMaxPages {
		t.Errorf("max_pages default: got %d", co.MaxPages)
	}
	if co.WaitForLoadState != DefaultWaitState {
		t.Errorf("wait_for_load_state default: got %q", co.WaitForLoadState)
	}
	if out.App.Parallel != 1 {
		t.Errorf("parallel default: got %d", out.App.Parallel)
	}
	if out.App.Headless == nil || !*out.App.Headless {
		t.Errorf("headless default: got %v, want true", out.App.Headless)
	}
}

func TestExplicitHeadlessFalsePreserved(t *testing.T) {
	cfg := baseConfig()
	headed := false
	cfg.App.Headless = &headed

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if *out.App.Headless {
		t.Error("explicit headless: false was overridden")
	}
}

func TestActionDefaultsAndRepeatValidation(t *testing.T) {
	cfg := baseConfig()
	cfg.Companies[0].PreScrapeActions = []ActionStep{
		{Type: "click", Selector: "#load-more", RepeatUntilGone: true},
		{Type: "fill", Selector: "#search", Value: "go", RepeatUntilGone: true},
	}

	out, res := NormalizeAndValidate(cfg)

	a := out.Companies[0].PreScrapeActions[0]
	if a.WaitAfterMS != DefaultActionWaitMS || a.TimeoutMS != DefaultActionTimeout || a.MaxRepeats != DefaultMaxRepeats {
		t.Errorf("action defaults not applied: %+v", a)
	}

	// repeat_until_gone on a fill step must be rejected
	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, "repeat_until_gone") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected repeat_until_gone error, got %v", res.Errors)
	}
}

func TestUnknownActionTypeRejected(t *testing.T) {
	cfg := baseConfig()
	cfg.Companies[0].PreScrapeActions = []ActionStep{{Type: "drag", Selector: "#x"}}

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected error for unknown action type")
	}
}

func TestKeywordTrimAndDedup(t *testing.T) {
	cfg := baseConfig()
	cfg.UniversalKeywords = []string{" Python ", "python", "", "Go"}

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(out.UniversalKeywords) != 2 {
		t.Errorf("got %v", out.UniversalKeywords)
	}
}

func TestNoCompaniesIsError(t *testing.T) {
	_, res := NormalizeAndValidate(Config{})
	if res.OK() {
		t.Fatal("empty config must not validate")
	}
}
