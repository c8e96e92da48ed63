// Package refindex builds reference index artifacts from Go source trees.
//
// Indexing walks a profile entry's index roots and records every exported
// top-level declaration under a dotted object path. Scanning then walks the
// scan roots and records, per object, the declarations that reference it.
package refindex

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IndexGenerator = (*Generator)(nil)

// Generator implements ports.IndexGenerator using the Go parser.
type Generator struct {
	logger ports.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger ports.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// pendingAlias is an alias declaration whose target may live in a root
// that has not been indexed yet.
type pendingAlias struct {
	alias   string
	pkg     string
	name    string
	imports map[string]string
	prefix  string
}

// objectTable accumulates indexed declarations and the directory-to-prefix
// mapping needed to resolve imports during scanning.
type objectTable struct {
	// prefixes maps a slash-separated directory suffix to its dotted
	// object path prefix.
	prefixes map[string]string

	// objects holds every indexed object path.
	objects map[string]bool

	aliases []pendingAlias
}

func newObjectTable() *objectTable {
	return &objectTable{
		prefixes: make(map[string]string),
		objects:  make(map[string]bool),
	}
}

// resolveImport maps an import path to the dotted prefix of an indexed
// directory, matching the longest import path suffix.
func (t *objectTable) resolveImport(importPath string) (string, bool) {
	segments := strings.Split(importPath, "/")
	for i := range segments {
		suffix := strings.Join(segments[i:], "/")
		if prefix, ok := t.prefixes[suffix]; ok {
			return prefix, true
		}
	}
	return "", false
}

// Generate indexes the entry's index roots, then scans its scan roots for
// references. When no scan roots are configured the index roots are
// scanned instead.
func (g *Generator) Generate(ctx context.Context, entry domain.ProfileEntry, version string) (*domain.ReferenceIndex, error) {
	index := domain.NewReferenceIndex(version)
	table := newObjectTable()

	for _, root := range entry.Index {
		if err := g.indexRoot(ctx, root, index, table); err != nil {
			return nil, zerr.With(err, "root", root)
		}
	}

	// Aliases can point across roots, so they resolve only after every
	// root is indexed.
	for _, pending := range table.aliases {
		target, ok := resolveAliasTarget(pending, table)
		if !ok {
			continue
		}
		index.AddAlias(pending.alias, target)
	}

	scanRoots := entry.Scan
	if len(scanRoots) == 0 {
		scanRoots = entry.Index
	}
	for _, root := range scanRoots {
		if err := g.scanRoot(ctx, root, entry, index, table); err != nil {
			return nil, zerr.With(err, "root", root)
		}
	}

	g.logger.Debug(fmt.Sprintf(
		"indexed %s: %d objects, %d aliases",
		entry.Name, len(index.ObjectPathsToUses), len(index.Aliases),
	))

	return index, nil
}

// indexRoot registers the exported declarations of every package under root.
func (g *Generator) indexRoot(ctx context.Context, root string, index *domain.ReferenceIndex, table *objectTable) error {
	return walkGoFiles(ctx, root, func(dir, file string, parsed *ast.File) error {
		prefix := dottedPrefix(root, dir)
		table.prefixes[slashSuffix(root, dir)] = prefix

		imports := importMap(parsed)

		for _, decl := range parsed.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				indexFunc(d, prefix, index, table)
			case *ast.GenDecl:
				indexGenDecl(d, prefix, imports, index, table)
			}
		}
		return nil
	})
}

// indexFunc registers an exported function or method declaration.
func indexFunc(d *ast.FuncDecl, prefix string, index *domain.ReferenceIndex, table *objectTable) {
	if !d.Name.IsExported() {
		return
	}

	objectPath := prefix + "." + d.Name.Name
	if recv := receiverType(d); recv != "" {
		if !ast.IsExported(recv) {
			return
		}
		objectPath = prefix + "." + recv + "." + d.Name.Name
	}

	table.objects[objectPath] = true
	index.AddObject(objectPath)
}

// indexGenDecl registers exported types, vars and consts, collecting alias
// declarations for later resolution.
func indexGenDecl(d *ast.GenDecl, prefix string, imports map[string]string, index *domain.ReferenceIndex, table *objectTable) {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			if !s.Name.IsExported() {
				continue
			}
			objectPath := prefix + "." + s.Name.Name
			table.objects[objectPath] = true
			index.AddObject(objectPath)

			if s.Assign != token.NoPos && s.Assign.IsValid() {
				collectAlias(objectPath, s.Type, prefix, imports, table)
			}

		case *ast.ValueSpec:
			for i, name := range s.Names {
				if !name.IsExported() {
					continue
				}
				objectPath := prefix + "." + name.Name
				table.objects[objectPath] = true
				index.AddObject(objectPath)

				if d.Tok == token.VAR && i < len(s.Values) {
					collectAlias(objectPath, s.Values[i], prefix, imports, table)
				}
			}
		}
	}
}

// collectAlias records an alias candidate when the target expression is a
// plain identifier or a package-qualified selector.
func collectAlias(alias string, target ast.Expr, prefix string, imports map[string]string, table *objectTable) {
	switch t := target.(type) {
	case *ast.Ident:
		table.aliases = append(table.aliases, pendingAlias{
			alias:  alias,
			name:   t.Name,
			prefix: prefix,
		})
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return
		}
		table.aliases = append(table.aliases, pendingAlias{
			alias:   alias,
			pkg:     pkg.Name,
			name:    t.Sel.Name,
			imports: imports,
			prefix:  prefix,
		})
	}
}

// resolveAliasTarget maps a pending alias to the indexed path it targets.
func resolveAliasTarget(pending pendingAlias, table *objectTable) (string, bool) {
	if pending.pkg == "" {
		target := pending.prefix + "." + pending.name
		return target, table.objects[target]
	}

	importPath, ok := pending.imports[pending.pkg]
	if !ok {
		return "", false
	}
	prefix, ok := table.resolveImport(importPath)
	if !ok {
		return "", false
	}

	target := prefix + "." + pending.name
	return target, table.objects[target]
}

// scanRoot records references to indexed objects from every package under
// root. The entry's track flags widen the scan to out-of-scope packages
// and predeclared identifiers.
func (g *Generator) scanRoot(ctx context.Context, root string, entry domain.ProfileEntry, index *domain.ReferenceIndex, table *objectTable) error {
	return walkGoFiles(ctx, root, func(dir, file string, parsed *ast.File) error {
		sitePrefix := dottedPrefix(root, dir)
		imports := importMap(parsed)

		for _, decl := range parsed.Decls {
			site := declSite(decl, sitePrefix)
			ast.Inspect(decl, func(node ast.Node) bool {
				switch n := node.(type) {
				case *ast.CallExpr:
					if entry.TrackBuiltins {
						recordBuiltinUse(n, site, index)
					}
				case *ast.SelectorExpr:
					recordSelectorUse(n, site, entry, imports, index, table)
				}
				return true
			})
		}
		return nil
	})
}

// recordSelectorUse records a package-qualified reference. In-scope
// selectors resolve through the alias table; out-of-scope selectors are
// keyed on the dotted import path when the entry tracks third parties.
func recordSelectorUse(sel *ast.SelectorExpr, site string, entry domain.ProfileEntry, imports map[string]string, index *domain.ReferenceIndex, table *objectTable) {
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return
	}
	importPath, ok := imports[pkg.Name]
	if !ok {
		return
	}

	prefix, ok := table.resolveImport(importPath)
	if !ok {
		if entry.TrackThirdParty {
			target := strings.ReplaceAll(importPath, "/", ".") + "." + sel.Sel.Name
			index.AddUse(target, site)
		}
		return
	}

	target := index.Resolve(prefix + "." + sel.Sel.Name)
	if table.objects[target] && target != site {
		index.AddUse(target, site)
	}
}

// builtinNames are the predeclared functions recorded under "builtins.".
var builtinNames = map[string]bool{
	"append": true, "cap": true, "clear": true, "close": true,
	"complex": true, "copy": true, "delete": true, "imag": true,
	"len": true, "make": true, "max": true, "min": true, "new": true,
	"panic": true, "print": true, "println": true, "real": true,
	"recover": true,
}

// recordBuiltinUse records a call to a predeclared function. Parsing has
// no scope information, so shadowed names are recorded too.
func recordBuiltinUse(call *ast.CallExpr, site string, index *domain.ReferenceIndex) {
	fn, ok := call.Fun.(*ast.Ident)
	if !ok || !builtinNames[fn.Name] {
		return
	}
	index.AddUse("builtins."+fn.Name, site)
}

// declSite names the declaration a reference was found in. Methods carry a
// "()" suffix to distinguish them from fields of the same name.
func declSite(decl ast.Decl, sitePrefix string) string {
	fn, ok := decl.(*ast.FuncDecl)
	if !ok {
		return sitePrefix
	}

	if recv := receiverType(fn); recv != "" {
		return sitePrefix + "." + recv + "." + fn.Name.Name + "()"
	}
	return sitePrefix + "." + fn.Name.Name
}

// receiverType returns the receiver's base type name, or "" for functions.
func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}

	expr := fn.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// importMap maps local import names to import paths for one file.
func importMap(parsed *ast.File) map[string]string {
	imports := make(map[string]string, len(parsed.Imports))
	for _, imp := range parsed.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		name := path.Base(importPath)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = importPath
	}
	return imports
}

// walkGoFiles parses every non-test Go file under root and hands it to fn.
func walkGoFiles(ctx context.Context, root string, fn func(dir, file string, parsed *ast.File) error) error {
	fset := token.NewFileSet()

	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return zerr.Wrap(err, domain.ErrSourceParseFailed.Error())
		}

		if entry.IsDir() {
			if skipDir(entry.Name()) && p != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		parsed, err := parser.ParseFile(fset, p, nil, parser.SkipObjectResolution)
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrSourceParseFailed.Error())
			return zerr.With(parseErr, "file", p)
		}

		return fn(filepath.Dir(p), p, parsed)
	})
}

// skipDir reports whether a directory is never indexed or scanned.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	switch name {
	case "testdata", "vendor", "node_modules":
		return true
	}
	return false
}

// dottedPrefix derives the dotted object path prefix for a directory under
// root. The root's base name anchors the prefix.
func dottedPrefix(root, dir string) string {
	base := filepath.Base(filepath.Clean(root))

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return base
	}
	return base + "." + strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}

// slashSuffix is the slash-separated directory key used for import
// resolution.
func slashSuffix(root, dir string) string {
	base := filepath.Base(filepath.Clean(root))

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return base
	}
	return base + "/" + filepath.ToSlash(rel)
}
