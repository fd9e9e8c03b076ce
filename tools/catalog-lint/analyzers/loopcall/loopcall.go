// Package loopcall detects single-item catalog store and embedder calls
// inside loops when a batch variant exists.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports per-item lookups and embeddings made inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects single-item store and embedder calls inside loops that have a batch variant",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// batchVariants maps a single-item method to the batch method to use instead.
var batchVariants = map[string]string{
	// CatalogDB
	"FindEntity": "FindEntitiesByURNs",
	// Embedder
	"Embed": "EmbedBatch",
	// SearchIndex takes documents in bulk
	"Upsert": "a single Upsert with all documents",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Nested loops are visited by Preorder on their own.
			switch n.(type) {
			case *ast.RangeStmt, *ast.ForStmt, *ast.FuncLit:
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			methodName := sel.Sel.Name
			if batch, ok := batchVariants[methodName]; ok {
				pass.Reportf(call.Pos(),
					"potential N+1: %s called inside loop, use %s",
					methodName, batch)
			}

			return true
		})
	})

	return nil, nil
}
