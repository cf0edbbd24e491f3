package analyzer

import "github.com/olehluchkiv/gofeatures/internal/model"

// Result holds the complete analysis output.
type Result struct {
	Project    *model.ProjectDef
	ModulePath string   // module path from go.mod (e.g. "github.com/user/repo")
	Packages   []string // analyzed package paths, sorted
}

// PackageTypes returns the defined types declared in pkgPath, in
// registration order.
func (r *Result) PackageTypes(pkgPath string) []model.Type {
	var out []model.Type
	for _, t := range r.Project.Types() {
		if t.Package() == pkgPath {
			out = append(out, t)
		}
	}
	return out
}

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Filter            string // package path prefix filter
	IncludeStdlib     bool
	IncludeUnexported bool
}
