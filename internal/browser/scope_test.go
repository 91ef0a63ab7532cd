package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeResolve(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		expr  string
		want  string
	}{
		{"page scope keeps absolute expr", Page, `//h1[@class="name"]`, `//h1[@class="name"]`},
		{"page scope strips relative dot", Page, `.//span`, `//span`},
		{"subtree scope prefixes relative expr", Scope(`(//li)[2]`), `.//span`, `(//li)[2]//span`},
		{"empty expr stays empty", Scope(`(//li)[2]`), ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Resolve(tt.expr))
		})
	}
}

func TestScopeNth(t *testing.T) {
	assert.Equal(t, Scope(`(//ul/li)[1]`), Page.Nth(`//ul/li`, 0))
	assert.Equal(t, Scope(`((//ul)[3]/li)[2]`), Scope(`(//ul)[3]`).Nth(`./li`, 1))
}
