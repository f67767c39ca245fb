package hooks

import (
	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/parser"
)

// CollectGlobal runs the single forward pass over a module's top-level
// items, building the import and export tables the hook transform consults
// when deciding how a free identifier should be re-imported into a
// synthesized module. It is read-only and does not recurse into statement
// bodies — only top-level import/export declarations are ever import or
// export bindings in an ES module.
func CollectGlobal(program *parser.Node) *domain.GlobalCollect {
	collect := domain.NewGlobalCollect()

	for _, item := range program.Body {
		switch item.Type {
		case parser.NodeImportDeclaration:
			collectImportDeclaration(item, collect)
		case parser.NodeExportNamedDeclaration:
			collectExportDeclaration(item, collect)
		}
	}

	return collect
}

func collectImportDeclaration(node *parser.Node, collect *domain.GlobalCollect) {
	source := stringValue(node.Source)

	for _, spec := range node.Specifiers {
		switch spec.Type {
		case parser.NodeImportDefaultSpecifier:
			collect.Imports[spec.Name] = domain.HookImportRecord{
				Local:  spec.Name,
				Kind:   domain.ImportSpecDefault,
				Source: source,
			}

		case parser.NodeImportNamespaceSpecifier:
			collect.Imports[spec.Name] = domain.HookImportRecord{
				Local:  spec.Name,
				Kind:   domain.ImportSpecNamespace,
				Source: source,
			}

		case parser.NodeImportSpecifier:
			remote := ""
			if spec.Imported != nil && spec.Imported.Name != spec.Name {
				remote = spec.Imported.Name
			}
			collect.Imports[spec.Name] = domain.HookImportRecord{
				Local:  spec.Name,
				Remote: remote,
				Kind:   domain.ImportSpecNamed,
				Source: source,
			}
		}
	}
}

func collectExportDeclaration(node *parser.Node, collect *domain.GlobalCollect) {
	// A re-export clause (`export { foo } from './other'`) carries a
	// Source and names nothing actually bound in this module — it is not
	// recorded, per the "re-exports without local binding" rule.
	if node.Source != nil {
		return
	}

	if node.Declaration != nil {
		for _, name := range boundNames(node.Declaration) {
			collect.Exports[name] = domain.HookExportRecord{Local: name, ExportedName: name}
		}
		return
	}

	for _, spec := range node.Specifiers {
		local := spec.Name
		exported := spec.Name
		if spec.Local != nil {
			local = spec.Local.Name
			exported = spec.Name
		}
		collect.Exports[local] = domain.HookExportRecord{Local: local, ExportedName: exported}
	}
}

// stringValue unquotes a string-literal node's raw source text. Returns ""
// for a nil node or one that isn't a quoted literal.
func stringValue(node *parser.Node) string {
	if node == nil {
		return ""
	}
	raw := node.Raw
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

// boundNames returns the identifiers a top-level declaration binds:
// one name for a function/class declaration, one per declarator for a
// variable declaration (destructured declarators are skipped — the
// transform only ever needs the plain-identifier case for export lookups).
func boundNames(decl *parser.Node) []string {
	switch decl.Type {
	case parser.NodeFunction, parser.NodeGeneratorFunction, parser.NodeClass:
		if decl.Name != "" {
			return []string{decl.Name}
		}
	case parser.NodeVariableDeclaration:
		var names []string
		for _, d := range decl.Declarations {
			if d.Name != "" {
				names = append(names, d.Name)
			}
		}
		return names
	}
	return nil
}
