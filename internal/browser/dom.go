package browser

// DOM is the driver capability surface the crawl components run
// against. A *Session implements it over chromedp; tests use the
// scripted fake in browsertest.
//
// Lookup methods never fail for "element not found": that case, and any
// driver-level fault, resolves to an absent result (faults are also
// logged). Only navigation and typed input surface errors, since the
// crawler cannot make progress without them.
type DOM interface {
	// Navigate loads url in the current tab.
	Navigate(url string) error
	// Location returns the current tab's URL.
	Location() (string, error)

	// Text reads the visible text of the first match of key within scope.
	Text(scope Scope, key string) FieldResult[string]
	// Attr reads attribute name of the first match of key within scope.
	Attr(scope Scope, key, name string) FieldResult[string]
	// Count returns the number of matches of key within scope.
	Count(scope Scope, key string) FieldResult[int]
	// Enabled reports whether the first match of key is not disabled.
	Enabled(scope Scope, key string) FieldResult[bool]

	// Click scrolls the first match of key into view and clicks it.
	// Failures are swallowed: false means "control absent".
	Click(scope Scope, key string) bool
	// ScrollTo scrolls the first match of key into view.
	ScrollTo(scope Scope, key string) bool
	// Reveal scrolls the element at scope itself into view. Lazy lists
	// only attach link targets once their rows become visible.
	Reveal(scope Scope) bool
	// TypeSlowly focuses the first match of key and types text with a
	// human cadence.
	TypeSlowly(scope Scope, key, text string) error

	// Row returns the scope of the i-th (zero-based) match of the list
	// selector key within scope.
	Row(scope Scope, key string, i int) Scope

	// OpenTab opens url in a new tab and returns a DOM bound to it plus
	// a close func that shuts the tab and restores focus.
	OpenTab(url string) (DOM, func(), error)

	// Pause sleeps a random duration inside the configured delay bounds.
	Pause()
}
