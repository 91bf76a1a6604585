// Package actions executes configured pre-scrape interactions against a
// live session. Missing or slow elements never abort the run: a cookie
// banner that fails to appear must not cost the harvest. Every step's
// outcome lands in the returned Report.
package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
)

// repeatProbeTimeout bounds the visibility check between repeated clicks.
const repeatProbeTimeout = 2 * time.Second

type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeTimeout     Outcome = "timeout"
	OutcomeRepeatLimit Outcome = "repeat_limit_reached"
)

type StepResult struct {
	Index    int
	Type     string
	Selector string
	Outcome  Outcome
	Repeats  int    // clicks performed for repeat_until_gone steps
	Detail   string // extra context for warnings
}

// Report lists one result per executed step, in execution order.
type Report []StepResult

// Warnings returns every step that did not complete cleanly.
func (r Report) Warnings() []StepResult {
	var out []StepResult
	for _, sr := range r {
		if sr.Outcome != OutcomeSuccess || sr.Detail != "" {
			out = append(out, sr)
		}
	}
	return out
}

// Failed reports whether any step missed its target outright.
func (r Report) Failed() bool {
	for _, sr := range r {
		if sr.Outcome == OutcomeNotFound || sr.Outcome == OutcomeTimeout {
			return true
		}
	}
	return false
}

// Run executes steps strictly in order. It returns an error only when the
// session itself breaks (or ctx is cancelled); per-step failures become
// report entries and execution continues.
func Run(ctx context.Context, s browser.Session, steps []config.ActionStep) (Report, error) {
	report := make(Report, 0, len(steps))

	for i, step := range steps {
		if step.RepeatUntilGone && step.Type == "click" {
			sr, err := runRepeatClick(ctx, s, i, step)
			report = append(report, sr)
			if err != nil {
				return report, err
			}
			continue
		}

		sr, err := runOnce(ctx, s, i, step)
		report = append(report, sr)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func runOnce(ctx context.Context, s browser.Session, index int, step config.ActionStep) (StepResult, error) {
	sr := StepResult{Index: index, Type: step.Type, Selector: step.Selector, Outcome: OutcomeSuccess}

	el, err := s.Find(ctx, step.Selector, msDur(step.TimeoutMS))
	if err != nil {
		switch {
		case browser.IsSessionError(err) || ctx.Err() != nil:
			sr.Outcome = OutcomeTimeout
			sr.Detail = err.Error()
			return sr, err
		case errors.Is(err, browser.ErrNotFound):
			sr.Outcome = OutcomeNotFound
		default:
			sr.Outcome = OutcomeTimeout
			sr.Detail = err.Error()
		}
		return sr, nil
	}

	if err := interact(ctx, el, step); err != nil {
		if browser.IsSessionError(err) || ctx.Err() != nil {
			sr.Outcome = OutcomeTimeout
			sr.Detail = err.Error()
			return sr, err
		}
		sr.Outcome = OutcomeTimeout
		sr.Detail = err.Error()
		return sr, nil
	}

	if step.WaitForNetworkIdle {
		if err := s.WaitForLoadState(ctx, browser.LoadStateNetworkIdle, msDur(step.TimeoutMS)); err != nil {
			if browser.IsSessionError(err) {
				return sr, err
			}
			// the page may simply keep polling; the click still landed
			sr.Detail = "network idle wait timed out"
		}
	} else if err := sleep(ctx, msDur(step.WaitAfterMS)); err != nil {
		return sr, err
	}

	return sr, nil
}

func interact(ctx context.Context, el browser.Element, step config.ActionStep) error {
	switch step.Type {
	case "click":
		return el.Click(ctx)
	case "fill":
		return el.Fill(ctx, step.Value)
	case "select":
		return el.SelectOption(ctx, step.Value)
	case "check":
		return el.Check(ctx)
	case "uncheck":
		return el.Uncheck(ctx)
	case "press":
		key := step.Value
		if key == "" {
			key = "Enter"
		}
		return el.Press(ctx, key)
	case "hover":
		return el.Hover(ctx)
	case "wait":
		// the visibility wait in Find is the whole action
		return nil
	default:
		return fmt.Errorf("unknown action type %q", step.Type)
	}
}

// runRepeatClick clicks the selector until it disappears or the repeat
// cap is hit, whichever comes first. Hitting the cap is a warning, not a
// failure: everything harvested up to that point is still valid.
func runRepeatClick(ctx context.Context, s browser.Session, index int, step config.ActionStep) (StepResult, error) {
	sr := StepResult{Index: index, Type: step.Type, Selector: step.Selector, Outcome: OutcomeSuccess}

	for sr.Repeats < step.MaxRepeats {
		el, err := s.Find(ctx, step.Selector, repeatProbeTimeout)
		if err != nil {
			if browser.IsSessionError(err) || ctx.Err() != nil {
				sr.Detail = err.Error()
				return sr, err
			}
			// gone: the loop's success condition
			return sr, nil
		}

		if err := el.Click(ctx); err != nil {
			if browser.IsSessionError(err) || ctx.Err() != nil {
				sr.Detail = err.Error()
				return sr, err
			}
			// element vanished mid-click; treat as gone
			return sr, nil
		}
		sr.Repeats++

		if err := sleep(ctx, msDur(step.WaitAfterMS)); err != nil {
			return sr, err
		}
	}

	sr.Outcome = OutcomeRepeatLimit
	sr.Detail = fmt.Sprintf("still present after %d clicks", sr.Repeats)
	return sr, nil
}

func msDur(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
