// catalog-lint is a custom static analyzer for catalog-core storage access patterns.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/catalog-core/tools/catalog-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
