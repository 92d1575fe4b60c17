package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// constLikePrefixes lists var name prefixes treated as constant-like per
// package.
var constLikePrefixes = map[string][]string{
	// tui: lipgloss styles (styleXxx) and palette colors (colorXxx) are
	// never reassigned after init.
	"tui": {"style", "color"},
}

// TestNoMutableGlobalState flags package-level vars in internal packages
// unless they are:
//   - blank compile-time checks (var _ T = ...)
//   - error sentinels (errors.New / fmt.Errorf)
//   - basic or composite literals
//   - named with a constant-like prefix for their package
//
// Browser state lives on Model and the settings stores; a global here would
// leak between models opened in the same process.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			fset := token.NewFileSet()
			for _, filePath := range goFilesIn(t, filepath.Join(dir, pkg)) {
				node, err := parser.ParseFile(fset, filePath, nil, 0)
				if err != nil {
					t.Fatalf("parsing %s: %v", filePath, err)
				}
				for _, name := range mutableGlobals(node, constLikePrefixes[pkg]) {
					t.Errorf("mutable global state in %s: var %s; use dependency injection or move to a function",
						filepath.Base(filePath), name)
				}
			}
		})
	}
}

// mutableGlobals returns the package-level var names in file that match none
// of the allowed patterns.
func mutableGlobals(file *ast.File, prefixes []string) []string {
	var bad []string
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				var val ast.Expr
				if i < len(vs.Values) {
					val = vs.Values[i]
				}
				if name.Name == "_" || hasPrefix(name.Name, prefixes) ||
					isErrorSentinel(vs.Type, val) || isLiteral(val) {
					continue
				}
				bad = append(bad, name.Name)
			}
		}
	}
	return bad
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// isErrorSentinel reports whether the declaration is typed error or is
// initialized by errors.New or fmt.Errorf.
func isErrorSentinel(typeExpr, val ast.Expr) bool {
	if ident, ok := typeExpr.(*ast.Ident); ok && ident.Name == "error" {
		return true
	}
	call, ok := val.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return (pkg.Name == "errors" && sel.Sel.Name == "New") ||
		(pkg.Name == "fmt" && sel.Sel.Name == "Errorf")
}

// isLiteral reports whether val is a basic literal or an inline composite
// literal such as a lookup table.
func isLiteral(val ast.Expr) bool {
	switch val.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	}
	return false
}

func TestMutableGlobalsDetection(t *testing.T) {
	t.Parallel()

	src := `package canary

import "errors"

var _ fmt.Stringer = (*T)(nil)
var ErrFoo = errors.New("foo")
var limit = 10
var table = map[string]int{"a": 1}
var styleTitle = lipgloss.NewStyle()
var registry = make(map[string]string)
var current *Model
`
	node, err := parser.ParseFile(token.NewFileSet(), "canary.go", src, 0)
	if err != nil {
		t.Fatalf("parsing canary source: %v", err)
	}

	got := mutableGlobals(node, []string{"style"})
	want := []string{"registry", "current"}
	if len(got) != len(want) {
		t.Fatalf("mutableGlobals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mutableGlobals[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
