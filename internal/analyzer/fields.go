package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// fieldReferences scans the method bodies of pkg for selections of a
// field directly on the receiver. The result maps each receiver type to
// its field names, and each field name to the selecting methods in
// declaration order.
func fieldReferences(pkg *packages.Package) map[*types.TypeName]map[string][]string {
	refs := make(map[*types.TypeName]map[string][]string)
	if pkg.TypesInfo == nil {
		return refs
	}
	info := pkg.TypesInfo
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || fd.Body == nil {
				continue
			}
			fn, ok := info.Defs[fd.Name].(*types.Func)
			if !ok {
				continue
			}
			recv := fn.Type().(*types.Signature).Recv()
			if recv == nil || recv.Name() == "" || recv.Name() == "_" {
				continue
			}
			owner := namedObj(recv.Type())
			if owner == nil {
				continue
			}

			seen := make(map[string]bool)
			ast.Inspect(fd.Body, func(n ast.Node) bool {
				sel, ok := n.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				id, ok := sel.X.(*ast.Ident)
				if !ok || info.Uses[id] != recv {
					return true
				}
				s, ok := info.Selections[sel]
				// Promoted fields belong to the embedded type.
				if !ok || s.Kind() != types.FieldVal || len(s.Index()) != 1 {
					return true
				}
				field := sel.Sel.Name
				if seen[field] {
					return true
				}
				seen[field] = true
				if refs[owner] == nil {
					refs[owner] = make(map[string][]string)
				}
				refs[owner][field] = append(refs[owner][field], fn.Name())
				return true
			})
		}
	}
	return refs
}
