package browser

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Launcher owns the playwright driver and a single headless chromium;
// it hands out one page-backed Session per company.
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewLauncher(headless bool) (*Launcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, &SessionError{Op: "start playwright", Err: err}
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, &SessionError{Op: "launch chromium", Err: err}
	}
	return &Launcher{pw: pw, browser: b}, nil
}

func (l *Launcher) NewSession() (Session, error) {
	page, err := l.browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, &SessionError{Op: "new page", Err: err}
	}
	return &pwSession{page: page}, nil
}

func (l *Launcher) Close() error {
	var first error
	if err := l.browser.Close(); err != nil {
		first = err
	}
	if err := l.pw.Stop(); err != nil && first == nil {
		first = err
	}
	return first
}

type pwSession struct {
	page playwright.Page
}

func (s *pwSession) Navigate(ctx context.Context, url string, waitUntil LoadState, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: gotoState(waitUntil),
		Timeout:   playwright.Float(ms(timeout)),
	})
	return mapErr("navigate", err)
}

func (s *pwSession) URL() string { return s.page.URL() }

func (s *pwSession) Content() (string, error) {
	content, err := s.page.Content()
	return content, mapErr("content", err)
}

func (s *pwSession) Find(ctx context.Context, selector string, timeout time.Duration) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := s.page.Locator(selector).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, ErrNotFound
		}
		return nil, mapErr("find", err)
	}
	return &pwElement{loc: loc}, nil
}

func (s *pwSession) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locs, err := s.page.Locator(selector).All()
	if err != nil {
		return nil, mapErr("find all", err)
	}
	out := make([]Element, 0, len(locs))
	for _, loc := range locs {
		out = append(out, &pwElement{loc: loc})
	}
	return out, nil
}

func (s *pwSession) WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState(state),
		Timeout: playwright.Float(ms(timeout)),
	})
	return mapErr("wait for load state", err)
}

func (s *pwSession) Frames() ([]Frame, error) {
	main := s.page.MainFrame()
	var out []Frame
	for _, f := range s.page.Frames() {
		if f == main {
			continue
		}
		out = append(out, &pwFrame{frame: f})
	}
	return out, nil
}

func (s *pwSession) Close() error { return s.page.Close() }

type pwElement struct {
	loc playwright.Locator
}

func (e *pwElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapErr("click", e.loc.Click())
}

func (e *pwElement) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapErr("fill", e.loc.Fill(value))
}

func (e *pwElement) SelectOption(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	values := []string{value}
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{Values: &values})
	return mapErr("select", err)
}

func (e *pwElement) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapErr("check", e.loc.Check())
}

func (e *pwElement) Uncheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapErr("uncheck", e.loc.Uncheck())
}

func (e *pwElement) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapErr("press", e.loc.Press(key))
}

func (e *pwElement) Hover(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapErr("hover", e.loc.Hover())
}

func (e *pwElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.loc.TextContent()
	return text, mapErr("text", err)
}

func (e *pwElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	visible, err := e.loc.IsVisible()
	return visible, mapErr("visible", err)
}

type pwFrame struct {
	frame playwright.Frame
}

func (f *pwFrame) URL() string { return f.frame.URL() }

func (f *pwFrame) Content() (string, error) {
	content, err := f.frame.Content()
	return content, mapErr("frame content", err)
}

func (f *pwFrame) WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := f.frame.WaitForLoadState(playwright.FrameWaitForLoadStateOptions{
		State:   loadState(state),
		Timeout: playwright.Float(ms(timeout)),
	})
	return mapErr("frame wait for load state", err)
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

func gotoState(s LoadState) *playwright.WaitUntilState {
	switch s {
	case LoadStateLoad:
		return playwright.WaitUntilStateLoad
	case LoadStateDOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	case LoadStateCommit:
		return playwright.WaitUntilStateCommit
	default:
		return playwright.WaitUntilStateNetworkidle
	}
}

func loadState(s LoadState) *playwright.LoadState {
	switch s {
	case LoadStateLoad:
		return playwright.LoadStateLoad
	case LoadStateDOMContentLoaded:
		return playwright.LoadStateDomcontentloaded
	default:
		return playwright.LoadStateNetworkidle
	}
}

// mapErr folds playwright failures into the capability's error taxonomy:
// closed targets are session-fatal, timeouts are ErrTimeout, anything
// else passes through.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTargetClosed) {
		return &SessionError{Op: op, Err: err}
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return ErrTimeout
	}
	return err
}
