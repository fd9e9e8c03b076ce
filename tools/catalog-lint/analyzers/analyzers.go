// Package analyzers provides all custom static analyzers for catalog-core.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/catalog-core/tools/catalog-lint/analyzers/loopcall"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
	}
}
