package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var actionTypes = map[string]bool{
	"click": true, "fill": true, "select": true, "check": true,
	"uncheck": true, "press": true, "hover": true, "wait": true,
}

var waitStates = map[string]bool{
	"networkidle": true, "load": true, "domcontentloaded": true,
}

// NormalizeAndValidate fills defaults and returns a normalized copy plus
// the list of errors and warnings. A config with errors must not run.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.UniversalKeywords = trimList(out.UniversalKeywords)

	if out.App.Parallel <= 0 {
		out.App.Parallel = 1
	}
	if out.App.Output == "" {
		out.App.Output = "job_matches.html"
	}
	if out.App.Headless == nil {
		headless := true
		out.App.Headless = &headless
	}

	if len(out.Companies) == 0 {
		res.addErr("no companies configured")
	}

	for i := range out.Companies {
		co := &out.Companies[i]
		where := co.Name
		if where == "" {
			where = fmt.Sprintf("companies[%d]", i)
		}

		if strings.TrimSpace(co.Name) == "" {
			res.addErr("%s: name is required", where)
		}
		if strings.TrimSpace(co.JobBoardURL) == "" {
			res.addErr("%s: job_board_url is required", where)
		}

		co.Keywords = trimList(co.Keywords)
		if len(co.Keywords) == 0 && len(out.UniversalKeywords) == 0 {
			res.addWarn("%s: no keywords anywhere; every job will be dropped", where)
		}

		if co.TimeoutMS == 0 {
			co.TimeoutMS = DefaultTimeoutMS
		}
		if co.TimeoutMS < 0 {
			res.addErr("%s: timeout_ms must be > 0", where)
		}
		if co.MaxPages == 0 {
			co.MaxPages = DefaultMaxPages
		}
		if co.MaxPages < 1 {
			res.addErr("%s: max_pages must be >= 1", where)
		}
		if co.WaitForLoadState == "" {
			co.WaitForLoadState = DefaultWaitState
		}
		if !waitStates[co.WaitForLoadState] {
			res.addErr("%s: wait_for_load_state must be one of networkidle/load/domcontentloaded, got %q",
				where, co.WaitForLoadState)
		}

		if co.LocationFilters != nil {
			co.LocationFilters.Include = trimList(co.LocationFilters.Include)
			co.LocationFilters.Exclude = trimList(co.LocationFilters.Exclude)

			excl := map[string]bool{}
			for _, e := range co.LocationFilters.Exclude {
				excl[strings.ToLower(e)] = true
			}
			for _, in := range co.LocationFilters.Include {
				if excl[strings.ToLower(in)] {
					res.addWarn("%s: location pattern in both include and exclude: %q", where, in)
				}
			}
		}

		for j := range co.PreScrapeActions {
			a := &co.PreScrapeActions[j]
			if !actionTypes[a.Type] {
				res.addErr("%s: pre_scrape_actions[%d]: unknown action type %q", where, j, a.Type)
			}
			if strings.TrimSpace(a.Selector) == "" {
				res.addErr("%s: pre_scrape_actions[%d]: selector is required", where, j)
			}
			if a.RepeatUntilGone && a.Type != "click" {
				res.addErr("%s: pre_scrape_actions[%d]: repeat_until_gone is only valid for click actions", where, j)
			}
			if a.WaitAfterMS == 0 {
				a.WaitAfterMS = DefaultActionWaitMS
			}
			if a.WaitAfterMS < 0 {
				res.addErr("%s: pre_scrape_actions[%d]: wait_after_ms must be >= 0", where, j)
			}
			if a.TimeoutMS == 0 {
				a.TimeoutMS = DefaultActionTimeout
			}
			if a.TimeoutMS < 0 {
				res.addErr("%s: pre_scrape_actions[%d]: timeout_ms must be > 0", where, j)
			}
			if a.MaxRepeats == 0 {
				a.MaxRepeats = DefaultMaxRepeats
			}
			if a.MaxRepeats < 1 {
				res.addErr("%s: pre_scrape_actions[%d]: max_repeats must be >= 1", where, j)
			}
		}

		if co.Scraping != nil {
			if co.Scraping.UseJSNavigation && len(co.Scraping.ContainerSelectors) == 0 {
				res.addErr("%s: scraping.use_js_navigation requires container_selectors", where)
			}
		}
	}

	return out, res
}
