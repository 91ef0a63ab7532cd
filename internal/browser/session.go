// Package browser wraps chromedp behind the small capability surface
// the crawl components need: selector-keyed lookups with explicit
// absent results, scroll/click/type actions, tab handling and the
// randomized inter-action delay.
package browser

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"linkroster/internal/config"
)

const (
	keyCadence   = 300 * time.Millisecond
	typeSettle   = time.Second
	userAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0 Safari/537.36"
	windowWidth  = 1280
	windowHeight = 1024
)

// Options configures the browser process.
type Options struct {
	Headless bool
	// UserDataDir persists cookies between runs, which is what makes the
	// already-authenticated path possible.
	UserDataDir string
}

// Session is the chromedp-backed DOM implementation. One Session maps
// to one tab; OpenTab derives child sessions sharing the browser.
type Session struct {
	ctx      context.Context
	sel      *config.Selectors
	log      *zap.SugaredLogger
	min, max int
}

var _ DOM = (*Session)(nil)

// NewSession starts a browser and returns the session for its first tab
// plus a shutdown func.
func NewSession(parent context.Context, sel *config.Selectors, log *zap.SugaredLogger, opts Options) (*Session, func(), error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(windowWidth, windowHeight),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}
	if p := os.Getenv("CHROME_PATH"); p != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	shutdown := func() {
		tabCancel()
		allocCancel()
	}

	if err := chromedp.Run(tabCtx, chromedp.Navigate("about:blank")); err != nil {
		shutdown()
		return nil, nil, errors.Wrap(err, "starting browser")
	}

	min, max := sel.DelayBounds()
	return &Session{ctx: tabCtx, sel: sel, log: log, min: min, max: max}, shutdown, nil
}

// Navigate loads url and waits for the body to be ready.
func (s *Session) Navigate(url string) error {
	err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	return errors.Wrapf(err, "navigating to %s", url)
}

// Location returns the current tab URL.
func (s *Session) Location() (string, error) {
	var url string
	if err := chromedp.Run(s.ctx, chromedp.Location(&url)); err != nil {
		return "", errors.Wrap(err, "reading location")
	}
	return url, nil
}

type evalResult struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

const textJS = `(() => {
  let el = null;
  try {
    el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
  } catch (e) { return {found: false, value: ""}; }
  if (!el) return {found: false, value: ""};
  const t = el.innerText !== undefined ? el.innerText : el.textContent;
  return {found: true, value: t || ""};
})()`

const attrJS = `(() => {
  let el = null;
  try {
    el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
  } catch (e) { return {found: false, value: ""}; }
  if (!el) return {found: false, value: ""};
  const n = %q;
  let v = el[n];
  if (typeof v !== "string") { v = el.getAttribute(n); }
  if (v === null || v === undefined) return {found: false, value: ""};
  return {found: true, value: v};
})()`

const countJS = `(() => {
  try {
    return document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength;
  } catch (e) { return -1; }
})()`

const enabledJS = `(() => {
  let el = null;
  try {
    el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
  } catch (e) { return {found: false, value: ""}; }
  if (!el) return {found: false, value: ""};
  const off = el.disabled === true ||
    el.getAttribute("disabled") !== null ||
    el.getAttribute("aria-disabled") === "true";
  return {found: true, value: off ? "" : "enabled"};
})()`

const clickJS = `(() => {
  let el = null;
  try {
    el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
  } catch (e) { return false; }
  if (!el) return false;
  el.scrollIntoView({behavior: "instant", block: "center"});
  try { el.click(); } catch (e) { return false; }
  return true;
})()`

const scrollJS = `(() => {
  let el = null;
  try {
    el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
  } catch (e) { return false; }
  if (!el) return false;
  el.scrollIntoView({behavior: "instant", block: "center"});
  return true;
})()`

const focusJS = `(() => {
  let el = null;
  try {
    el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
  } catch (e) { return false; }
  if (!el) return false;
  el.scrollIntoView({behavior: "instant", block: "center"});
  el.focus();
  return true;
})()`

// locator resolves key inside scope, or "" when the key is not in the
// selector file.
func (s *Session) locator(scope Scope, key string) string {
	expr := s.sel.XPath(key)
	if expr == "" {
		s.log.Debugw("selector key not configured", "key", key)
		return ""
	}
	return scope.Resolve(expr)
}

// Text reads the rendered text of the first match of key.
func (s *Session) Text(scope Scope, key string) FieldResult[string] {
	xp := s.locator(scope, key)
	if xp == "" {
		return Absent[string]()
	}
	var res evalResult
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(textJS, xp), &res)); err != nil {
		s.log.Warnw("driver fault reading text, treating as absent", "key", key, "error", err)
		return Absent[string]()
	}
	if !res.Found {
		s.log.Debugw("element not found", "key", key)
		return Absent[string]()
	}
	return Present(strings.TrimSpace(res.Value))
}

// Attr reads attribute name of the first match of key. String DOM
// properties win over raw attributes so href comes back absolute.
func (s *Session) Attr(scope Scope, key, name string) FieldResult[string] {
	xp := s.locator(scope, key)
	if xp == "" {
		return Absent[string]()
	}
	var res evalResult
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(attrJS, xp, name), &res)); err != nil {
		s.log.Warnw("driver fault reading attribute, treating as absent", "key", key, "attr", name, "error", err)
		return Absent[string]()
	}
	if !res.Found {
		s.log.Debugw("attribute not found", "key", key, "attr", name)
		return Absent[string]()
	}
	return Present(res.Value)
}

// Count returns how many elements match key within scope. Zero is a
// present result; only a missing key or a driver fault is absent.
func (s *Session) Count(scope Scope, key string) FieldResult[int] {
	xp := s.locator(scope, key)
	if xp == "" {
		return Absent[int]()
	}
	var n int
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(countJS, xp), &n)); err != nil {
		s.log.Warnw("driver fault counting elements, treating as absent", "key", key, "error", err)
		return Absent[int]()
	}
	if n < 0 {
		s.log.Warnw("xpath evaluation failed", "key", key)
		return Absent[int]()
	}
	return Present(n)
}

// Enabled reports whether the first match of key accepts interaction.
func (s *Session) Enabled(scope Scope, key string) FieldResult[bool] {
	xp := s.locator(scope, key)
	if xp == "" {
		return Absent[bool]()
	}
	var res evalResult
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(enabledJS, xp), &res)); err != nil {
		s.log.Warnw("driver fault probing enabled state, treating as absent", "key", key, "error", err)
		return Absent[bool]()
	}
	if !res.Found {
		return Absent[bool]()
	}
	return Present(res.Value == "enabled")
}

// Click scrolls the first match of key into view and clicks it. False
// means the control is absent; click failures are swallowed too.
func (s *Session) Click(scope Scope, key string) bool {
	xp := s.locator(scope, key)
	if xp == "" {
		return false
	}
	var ok bool
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(clickJS, xp), &ok)); err != nil {
		s.log.Warnw("driver fault clicking, treating as absent", "key", key, "error", err)
		return false
	}
	if !ok {
		s.log.Debugw("click target not found", "key", key)
	}
	return ok
}

// ScrollTo scrolls the first match of key into view, which is what
// forces lazily rendered list rows to materialize.
func (s *Session) ScrollTo(scope Scope, key string) bool {
	xp := s.locator(scope, key)
	if xp == "" {
		return false
	}
	var ok bool
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(scrollJS, xp), &ok)); err != nil {
		s.log.Warnw("driver fault scrolling, treating as absent", "key", key, "error", err)
		return false
	}
	return ok
}

// Reveal scrolls the element at scope into view.
func (s *Session) Reveal(scope Scope) bool {
	if scope == Page {
		return false
	}
	var ok bool
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(scrollJS, string(scope)), &ok)); err != nil {
		s.log.Warnw("driver fault revealing element, treating as absent", "scope", string(scope), "error", err)
		return false
	}
	return ok
}

// TypeSlowly focuses the first match of key and types text one rune at
// a time, pacing keystrokes like a person would.
func (s *Session) TypeSlowly(scope Scope, key, text string) error {
	xp := s.locator(scope, key)
	if xp == "" {
		return errors.Newf("selector key %q not configured", key)
	}
	var ok bool
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(fmt.Sprintf(focusJS, xp), &ok)); err != nil {
		return errors.Wrapf(err, "focusing %s", key)
	}
	if !ok {
		return errors.Newf("input %s not found", key)
	}
	for _, r := range text {
		if err := chromedp.Run(s.ctx, chromedp.KeyEvent(string(r))); err != nil {
			return errors.Wrapf(err, "typing into %s", key)
		}
		time.Sleep(keyCadence)
	}
	time.Sleep(typeSettle)
	return nil
}

// Row scopes lookups to the i-th match of the list selector key.
func (s *Session) Row(scope Scope, key string, i int) Scope {
	expr := s.sel.XPath(key)
	if expr == "" {
		return scope
	}
	return scope.Nth(expr, i)
}

// OpenTab opens url in a fresh tab of the same browser. The returned
// close func shuts the tab; the receiver keeps pointing at the listing
// tab, so "switch back" is implicit.
func (s *Session) OpenTab(url string) (DOM, func(), error) {
	tabCtx, cancel := chromedp.NewContext(s.ctx)
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		cancel()
		return nil, nil, errors.Wrapf(err, "opening tab for %s", url)
	}
	tab := &Session{ctx: tabCtx, sel: s.sel, log: s.log, min: s.min, max: s.max}
	return tab, cancel, nil
}

// Pause sleeps a random whole-second duration inside the configured
// bounds. A throughput throttle, not a correctness mechanism.
func (s *Session) Pause() {
	d := s.min
	if s.max > s.min {
		d += rand.Intn(s.max - s.min + 1)
	}
	s.log.Debugf("sleeping %d seconds", d)
	time.Sleep(time.Duration(d) * time.Second)
}
