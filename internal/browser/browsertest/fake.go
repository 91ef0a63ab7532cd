// Package browsertest provides a scripted DOM implementation so the
// auth, extraction and crawl components can be exercised without a
// browser. Scopes are symbolic paths like "profiles_list[2]".
package browsertest

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"linkroster/internal/browser"
)

// Fake is a map-driven DOM. Register values with the Set* helpers using
// the same scope values the code under test will derive via Row.
type Fake struct {
	Texts     map[string]string
	Attrs     map[string]string
	Counts    map[string]int
	EnabledAt map[string]bool
	ClickOK   map[string]bool

	// Journals.
	Clicked    []string
	Scrolled   []string
	Typed      map[string]string
	Navigated  []string
	OpenedTabs []string
	ClosedTabs int
	Pauses     int

	// Tabs maps a URL to the fake served for that tab.
	Tabs map[string]*Fake

	CurrentURL  string
	NavigateErr error
	TypeErr     error
}

var _ browser.DOM = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Texts:     map[string]string{},
		Attrs:     map[string]string{},
		Counts:    map[string]int{},
		EnabledAt: map[string]bool{},
		ClickOK:   map[string]bool{},
		Typed:     map[string]string{},
		Tabs:      map[string]*Fake{},
	}
}

// At renders the lookup address for scope and key.
func At(scope browser.Scope, key string) string {
	if scope == browser.Page {
		return key
	}
	return string(scope) + "/" + key
}

// SetText registers the text read for key within scope.
func (f *Fake) SetText(scope browser.Scope, key, v string) { f.Texts[At(scope, key)] = v }

// SetAttr registers attribute name of key within scope.
func (f *Fake) SetAttr(scope browser.Scope, key, name, v string) {
	f.Attrs[At(scope, key)+"@"+name] = v
}

// SetCount registers the match count for a list key within scope.
func (f *Fake) SetCount(scope browser.Scope, key string, n int) { f.Counts[At(scope, key)] = n }

// SetEnabled registers the enabled probe for key within scope.
func (f *Fake) SetEnabled(scope browser.Scope, key string, on bool) {
	f.EnabledAt[At(scope, key)] = on
}

// SetClickable marks key within scope as a present click target.
func (f *Fake) SetClickable(scope browser.Scope, key string) { f.ClickOK[At(scope, key)] = true }

func (f *Fake) Navigate(url string) error {
	f.Navigated = append(f.Navigated, url)
	if f.NavigateErr != nil {
		return f.NavigateErr
	}
	f.CurrentURL = url
	return nil
}

func (f *Fake) Location() (string, error) { return f.CurrentURL, nil }

func (f *Fake) Text(scope browser.Scope, key string) browser.FieldResult[string] {
	if v, ok := f.Texts[At(scope, key)]; ok {
		return browser.Present(v)
	}
	return browser.Absent[string]()
}

func (f *Fake) Attr(scope browser.Scope, key, name string) browser.FieldResult[string] {
	if v, ok := f.Attrs[At(scope, key)+"@"+name]; ok {
		return browser.Present(v)
	}
	return browser.Absent[string]()
}

func (f *Fake) Count(scope browser.Scope, key string) browser.FieldResult[int] {
	if n, ok := f.Counts[At(scope, key)]; ok {
		return browser.Present(n)
	}
	return browser.Absent[int]()
}

func (f *Fake) Enabled(scope browser.Scope, key string) browser.FieldResult[bool] {
	if on, ok := f.EnabledAt[At(scope, key)]; ok {
		return browser.Present(on)
	}
	return browser.Absent[bool]()
}

func (f *Fake) Click(scope browser.Scope, key string) bool {
	addr := At(scope, key)
	if f.ClickOK[addr] {
		f.Clicked = append(f.Clicked, addr)
		return true
	}
	return false
}

func (f *Fake) ScrollTo(scope browser.Scope, key string) bool {
	addr := At(scope, key)
	f.Scrolled = append(f.Scrolled, addr)
	// Scroll succeeds whenever anything is scripted at the address.
	_, t := f.Texts[addr]
	_, c := f.Counts[addr]
	return t || c || f.ClickOK[addr]
}

func (f *Fake) Reveal(scope browser.Scope) bool {
	f.Scrolled = append(f.Scrolled, string(scope))
	return true
}

func (f *Fake) TypeSlowly(scope browser.Scope, key, text string) error {
	if f.TypeErr != nil {
		return f.TypeErr
	}
	f.Typed[At(scope, key)] = text
	return nil
}

func (f *Fake) Row(scope browser.Scope, key string, i int) browser.Scope {
	return browser.Scope(fmt.Sprintf("%s[%d]", At(scope, key), i))
}

func (f *Fake) OpenTab(url string) (browser.DOM, func(), error) {
	tab, ok := f.Tabs[url]
	if !ok {
		return nil, nil, errors.Newf("no tab scripted for %s", url)
	}
	f.OpenedTabs = append(f.OpenedTabs, url)
	return tab, func() { f.ClosedTabs++ }, nil
}

func (f *Fake) Pause() { f.Pauses++ }
