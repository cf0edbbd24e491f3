package analyzer

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/olehluchkiv/gofeatures/internal/model"
)

// stdlibPatterns are loaded alongside the module when IncludeStdlib is set,
// so their interfaces are matched even where the module does not import
// them.
var stdlibPatterns = []string{"fmt", "io", "io/fs", "encoding", "encoding/json", "sort", "hash", "context"}

// Analyze loads Go packages from dir and builds the project model: every
// named type of the module with its declared methods and fields, linked to
// the interfaces it implements and the types it embeds.
func Analyze(ctx context.Context, dir string, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedImports | packages.NeedModule,
		Dir:     dir,
		Context: ctx,
	}

	// One load keeps type identity consistent between the module and
	// the extra stdlib packages.
	patterns := []string{"./..."}
	if opts.IncludeStdlib {
		patterns = append(patterns, stdlibPatterns...)
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("packages loaded", "packages_count", len(pkgs))

	// Log packages with errors but continue
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	c := newCollector(opts, logger)
	var module []*packages.Package
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		if isStdlib(pkg.PkgPath) {
			c.addInterfaces(pkg.Types.Scope())
			continue
		}
		module = append(module, pkg)
	}
	sort.Slice(module, func(i, j int) bool { return module[i].PkgPath < module[j].PkgPath })

	result := &Result{Project: c.project}
	for _, pkg := range module {
		if result.ModulePath == "" && pkg.Module != nil {
			result.ModulePath = pkg.Module.Path
		}
		result.Packages = append(result.Packages, pkg.PkgPath)
		c.declare(pkg)
		for _, imp := range pkg.Imports {
			if imp.Types != nil {
				c.addInterfaces(imp.Types.Scope())
			}
		}
	}
	c.addError()

	for _, pkg := range module {
		refs := fieldReferences(pkg)
		for _, d := range c.byPkg[pkg.PkgPath] {
			c.describe(d, refs[d.obj])
		}
	}
	links := c.link()

	logger.Info("analysis complete",
		"types", len(c.project.Types()),
		"interfaces_matched", len(c.ifaces),
		"links", links)
	return result, nil
}

// declared is a named type of the module and its model definition.
type declared struct {
	obj   *types.TypeName
	named *types.Named
	def   *model.TypeDef
}

type collector struct {
	opts    AnalyzeOptions
	logger  *slog.Logger
	project *model.ProjectDef

	defs   map[*types.TypeName]*model.TypeDef
	byPkg  map[string][]*declared
	order  []*declared
	ifaces []*types.TypeName
	seen   map[*types.TypeName]bool

	methodSets typeutil.MethodSetCache
}

func newCollector(opts AnalyzeOptions, logger *slog.Logger) *collector {
	return &collector{
		opts:    opts,
		logger:  logger,
		project: model.NewProject(),
		defs:    make(map[*types.TypeName]*model.TypeDef),
		byPkg:   make(map[string][]*declared),
		seen:    make(map[*types.TypeName]bool),
	}
}

// declare registers the named types of pkg. Its interfaces become
// implementation candidates.
func (c *collector) declare(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		_, isIface := named.Underlying().(*types.Interface)
		def := c.project.Add(model.NewType(model.TypeSpec{
			PkgPath:   pkg.PkgPath,
			Name:      tn.Name(),
			Interface: isIface,
			External:  !c.opts.keep(pkg.PkgPath, tn.Name()),
		}))
		c.defs[tn] = def
		d := &declared{obj: tn, named: named, def: def}
		c.byPkg[pkg.PkgPath] = append(c.byPkg[pkg.PkgPath], d)
		c.order = append(c.order, d)
		if isIface {
			c.addInterface(tn)
		}
		c.logger.Debug("found type", "name", tn.Name(), "package", pkg.PkgPath,
			"interface", isIface, "position", position(pkg.Fset, tn.Pos()))
	}
}

// addInterfaces adds the non-generic, non-empty method-set interfaces of
// scope as implementation candidates.
func (c *collector) addInterfaces(scope *types.Scope) {
	for _, name := range scope.Names() {
		if tn, ok := scope.Lookup(name).(*types.TypeName); ok {
			c.addInterface(tn)
		}
	}
}

func (c *collector) addInterface(tn *types.TypeName) {
	if c.seen[tn] {
		return
	}
	named, ok := tn.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok || iface.Empty() || !iface.IsMethodSet() {
		return
	}
	c.seen[tn] = true
	c.ifaces = append(c.ifaces, tn)
}

// addError adds the builtin error interface.
func (c *collector) addError() {
	if tn, ok := types.Universe.Lookup("error").(*types.TypeName); ok {
		c.addInterface(tn)
	}
}

// typeOf returns the model type for tn, registering a type from outside
// the module on first use.
func (c *collector) typeOf(tn *types.TypeName) *model.TypeDef {
	if def, ok := c.defs[tn]; ok {
		return def
	}
	pkgPath := "builtin"
	if tn.Pkg() != nil {
		pkgPath = tn.Pkg().Path()
	}
	var funcs []*types.Func
	iface, isIface := tn.Type().Underlying().(*types.Interface)
	if isIface {
		for i := 0; i < iface.NumMethods(); i++ {
			funcs = append(funcs, iface.Method(i))
		}
	} else if named, ok := tn.Type().(*types.Named); ok {
		for i := 0; i < named.NumMethods(); i++ {
			funcs = append(funcs, named.Method(i))
		}
	}
	def := c.project.Add(model.NewType(model.TypeSpec{
		PkgPath:   pkgPath,
		Name:      tn.Name(),
		Interface: isIface,
		External:  true,
	}))
	for _, fn := range funcs {
		def.AddMethod(newMethod(fn))
	}
	c.defs[tn] = def
	return def
}

// describe adds the declared methods and fields of d, and links it to the
// types it embeds. refs maps a field name to the methods selecting it on
// the receiver.
func (c *collector) describe(d *declared, refs map[string][]string) {
	switch under := d.named.Underlying().(type) {
	case *types.Interface:
		for i := 0; i < under.NumExplicitMethods(); i++ {
			d.def.AddMethod(newMethod(under.ExplicitMethod(i)))
		}
		for i := 0; i < under.NumEmbeddeds(); i++ {
			if tn := namedObj(under.EmbeddedType(i)); tn != nil {
				model.Link(d.def, c.typeOf(tn))
			}
		}
		return
	case *types.Struct:
		for i := 0; i < under.NumFields(); i++ {
			f := under.Field(i)
			if f.Embedded() {
				if tn := namedObj(f.Type()); tn != nil {
					model.Link(d.def, c.typeOf(tn))
				}
				continue
			}
			c.addField(d.def, f, refs[f.Name()])
		}
	}
	for i := 0; i < d.named.NumMethods(); i++ {
		d.def.AddMethod(newMethod(d.named.Method(i)))
	}
}

func (c *collector) addField(def *model.TypeDef, f *types.Var, locations []string) {
	spec := model.FieldSpec{
		Name: f.Name(),
		// Fully qualified, so the signature resolves to exactly one type.
		TypeSignature: types.TypeString(f.Type(), nil),
		Resolved:      isResolved(f.Type()),
		ClassType:     namedObj(baseType(f.Type())) != nil,
	}
	if len(locations) == 0 {
		def.AddField(model.NewField(spec))
		return
	}
	for _, loc := range locations {
		spec.Location = loc
		def.AddField(model.NewField(spec))
	}
}

// link connects every concrete module type to the candidate interfaces it
// implements, by value or pointer receiver. An interface already
// satisfied through an embedded type is left to that type. It returns the
// number of links made.
func (c *collector) link() int {
	links := 0
	for _, d := range c.order {
		if d.def.IsInterface() {
			continue
		}
		mset := c.methodSets.MethodSet(types.NewPointer(d.named))
		for _, tn := range c.ifaces {
			iface := tn.Type().Underlying().(*types.Interface)
			if !matchesMethodSet(mset, iface) || c.viaEmbedded(d.named, iface) {
				continue
			}
			model.Link(d.def, c.typeOf(tn))
			links++
			c.logger.Debug("match found", "type", d.def.QualifiedName(), "interface", tn.Name())
		}
	}
	return links
}

func (c *collector) viaEmbedded(named *types.Named, iface *types.Interface) bool {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return false
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		t := f.Type()
		if _, isPtr := t.(*types.Pointer); !isPtr {
			t = types.NewPointer(t)
		}
		if matchesMethodSet(c.methodSets.MethodSet(t), iface) {
			return true
		}
	}
	return false
}

// matchesMethodSet reports whether mset has every method of iface with
// an identical signature.
func matchesMethodSet(mset *types.MethodSet, iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		sel := mset.Lookup(m.Pkg(), m.Name())
		if sel == nil || !types.Identical(sel.Obj().Type(), m.Type()) {
			return false
		}
	}
	return true
}

func newMethod(fn *types.Func) *model.MethodDef {
	sig := fn.Type().(*types.Signature)
	params := make([]model.Param, sig.Params().Len())
	for i := range params {
		p := sig.Params().At(i)
		typ := shortType(p.Type())
		if sig.Variadic() && i == len(params)-1 {
			typ = "..." + strings.TrimPrefix(typ, "[]")
		}
		params[i] = model.Param{Name: p.Name(), Type: typ}
	}
	results := make([]string, sig.Results().Len())
	for i := range results {
		results[i] = shortType(sig.Results().At(i).Type())
	}
	return model.NewMethod(fn.Name(), params, results...)
}

func shortType(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

// baseType strips pointers, slices, arrays, maps and channels down to the
// element type.
func baseType(t types.Type) types.Type {
	for {
		switch u := types.Unalias(t).(type) {
		case *types.Pointer:
			t = u.Elem()
		case *types.Slice:
			t = u.Elem()
		case *types.Array:
			t = u.Elem()
		case *types.Map:
			t = u.Elem()
		case *types.Chan:
			t = u.Elem()
		default:
			return u
		}
	}
}

// namedObj returns the type name behind t, or nil for unnamed and builtin
// types.
func namedObj(t types.Type) *types.TypeName {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil
	}
	return named.Origin().Obj()
}

func isResolved(t types.Type) bool {
	b, ok := baseType(t).(*types.Basic)
	return !ok || b.Kind() != types.Invalid
}

func position(fset *token.FileSet, pos token.Pos) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	return fset.Position(pos).String()
}
