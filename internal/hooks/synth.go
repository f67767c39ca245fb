package hooks

import (
	"strconv"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/parser"
)

// SynthesizeModule builds the synthetic module a single extracted hook is
// written to: one import declaration per free identifier the hook body
// references (resolved against the origin module's own import/export
// tables), followed by a single named export binding hook.Name to the
// hook's original (folded) expression. It is SynthesizeEntryModule for the
// common case of one hook per physical module (every strategy but Single
// and Manual's multi-member groups).
func SynthesizeModule(path domain.PathData, hook *domain.Hook, global *domain.GlobalCollect) *parser.Node {
	return SynthesizeEntryModule(path, []*domain.Hook{hook}, global)
}

// SynthesizeEntryModule builds one synthesized module shared by every hook
// the bundling policy routed to the same entry: their import declarations
// are merged (each free identifier imported at most once, in first-use
// order across the group) and each hook gets its own named export,
// appended in group order after every import.
func SynthesizeEntryModule(path domain.PathData, hooks []*domain.Hook, global *domain.GlobalCollect) *parser.Node {
	program := parser.NewNode(parser.NodeProgram)

	seen := make(map[string]bool)
	for _, hook := range hooks {
		for _, ident := range hook.LocalIdents {
			if seen[ident] {
				continue
			}
			if imp, ok := global.Imports[ident]; ok {
				program.Body = append(program.Body, importFromOther(hook, imp, ident))
				seen[ident] = true
				continue
			}
			if exp, ok := global.Exports[ident]; ok {
				program.Body = append(program.Body, importFromOrigin(path, hook, exp, ident))
				seen[ident] = true
			}
		}
	}

	for _, hook := range hooks {
		program.Body = append(program.Body, namedExportOf(hook))
	}
	return program
}

// importFromOther re-imports a free identifier the origin module itself
// imported from elsewhere, rewriting the import's source path relative to
// the hook's new home.
func importFromOther(hook *domain.Hook, imp domain.HookImportRecord, ident string) *parser.Node {
	resolvedSource, err := FixPath(hook.Origin, imp.Source)
	if err != nil {
		resolvedSource = imp.Source
	}

	decl := parser.NewNode(parser.NodeImportDeclaration)
	decl.Source = stringLiteralNode(resolvedSource)

	var spec *parser.Node
	switch imp.Kind {
	case domain.ImportSpecDefault:
		spec = parser.NewNode(parser.NodeImportDefaultSpecifier)
		spec.Name = ident
	case domain.ImportSpecNamespace:
		spec = parser.NewNode(parser.NodeImportNamespaceSpecifier)
		spec.Name = ident
	default:
		spec = parser.NewNode(parser.NodeImportSpecifier)
		spec.Name = ident
		if imp.Remote != "" && imp.Remote != ident {
			spec.Imported = identifierNode(imp.Remote)
		}
	}
	decl.Specifiers = []*parser.Node{spec}
	return decl
}

// importFromOrigin re-imports a free identifier that is one of the origin
// module's own top-level exports, by importing it back from the origin
// file (renamed to a sibling module living alongside the synthesized hook).
func importFromOrigin(path domain.PathData, hook *domain.Hook, exp domain.HookExportRecord, ident string) *parser.Node {
	resolvedSource, err := FixPath(hook.Origin, "./"+path.FileStem)
	if err != nil {
		resolvedSource = "./" + path.FileStem
	}

	decl := parser.NewNode(parser.NodeImportDeclaration)
	decl.Source = stringLiteralNode(resolvedSource)

	spec := parser.NewNode(parser.NodeImportSpecifier)
	spec.Name = ident
	if exp.ExportedName != "" && exp.ExportedName != ident {
		spec.Imported = identifierNode(exp.ExportedName)
	}
	decl.Specifiers = []*parser.Node{spec}
	return decl
}

func namedExportOf(hook *domain.Hook) *parser.Node {
	declarator := parser.NewNode(parser.NodeVariableDeclarator)
	declarator.Left = identifierNode(hook.Name)
	declarator.Name = hook.Name
	if exprNode, ok := hook.Expr.(*parser.Node); ok {
		declarator.Init = exprNode
	}

	decl := parser.NewNode(parser.NodeVariableDeclaration)
	decl.Kind = "const"
	decl.Declarations = []*parser.Node{declarator}

	export := parser.NewNode(parser.NodeExportNamedDeclaration)
	export.Declaration = decl
	return export
}

func identifierNode(name string) *parser.Node {
	n := parser.NewNode(parser.NodeIdentifier)
	n.Name = name
	n.Raw = name
	return n
}

func stringLiteralNode(value string) *parser.Node {
	n := parser.NewNode(parser.NodeStringLiteral)
	n.Raw = strconv.Quote(value)
	return n
}
