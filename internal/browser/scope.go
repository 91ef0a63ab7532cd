package browser

import (
	"fmt"
	"strings"
)

// Scope narrows lookups to a DOM subtree. It is an absolute XPath
// prefix; the zero value means the whole document.
type Scope string

// Page is the whole-document scope.
const Page Scope = ""

// Resolve combines the scope with a selector expression. Relative
// expressions start with "." (the convention the selector file uses for
// keys that are read inside a row or role element).
func (s Scope) Resolve(expr string) string {
	if expr == "" {
		return ""
	}
	rel := strings.TrimPrefix(expr, ".")
	if s == Page {
		return rel
	}
	return string(s) + rel
}

// Nth returns the scope of the i-th (zero-based) match of expr within s.
// XPath positions are one-based.
func (s Scope) Nth(expr string, i int) Scope {
	return Scope(fmt.Sprintf("(%s)[%d]", s.Resolve(expr), i+1))
}
