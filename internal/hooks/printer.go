package hooks

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/jscan/internal/parser"
)

// Print turns a parser.Node back into source text. A node that still
// carries its original source span (Node.Raw, set by every builder in
// internal/parser/ast_builder.go) prints verbatim; a node synthesized by
// this package (the stub call, import declarations, the named export
// wrapper) has no Raw text and is printed structurally instead, node type
// by node type.
//
// Calls listed in pureCallSites (the qComponent calls the transform
// recorded) are preceded by a pure-call annotation so a downstream bundler
// can tree-shake an unused component. The annotation is written only when
// the printer reaches the call itself; a call inside an ancestor that still
// prints verbatim from Raw (a statement the transform left unchanged) is
// printed without it.
func Print(node *parser.Node, pureCallSites []*parser.Node) string {
	var b strings.Builder
	pure := make(map[*parser.Node]bool, len(pureCallSites))
	for _, n := range pureCallSites {
		pure[n] = true
	}
	printNode(&b, node, pure)
	return b.String()
}

func printNode(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	if n == nil {
		return
	}

	if n.Type == parser.NodeProgram {
		printProgram(b, n, pure)
		return
	}

	if n.Raw != "" {
		if pure[n] {
			b.WriteString("/* @__PURE__ */ ")
		}
		b.WriteString(n.Raw)
		return
	}

	if pure[n] {
		b.WriteString("/* @__PURE__ */ ")
	}

	switch n.Type {
	case parser.NodeImportDeclaration:
		printImportDeclaration(b, n)
	case parser.NodeExportNamedDeclaration:
		printExportNamedDeclaration(b, n, pure)
	case parser.NodeVariableDeclaration:
		printVariableDeclaration(b, n, pure)
	case parser.NodeCallExpression:
		printCallExpression(b, n, pure)
	case parser.NodeArrowFunction:
		printArrowFunction(b, n, pure)
	case parser.NodeFunction, parser.NodeGeneratorFunction, parser.NodeFunctionExpression:
		printFunction(b, n, pure)
	case parser.NodeJSXOpeningElement:
		printJSXOpeningElement(b, n, pure)
	case parser.NodeJSXAttribute:
		printJSXAttribute(b, n, pure)
	case parser.NodeProperty:
		printProperty(b, n, pure)
	case parser.NodeReturnStatement:
		b.WriteString("return ")
		printNode(b, n.Argument, pure)
	case parser.NodeMemberExpression:
		printMemberExpression(b, n, pure)
	case parser.NodeBinaryExpression, parser.NodeLogicalExpression:
		printNode(b, n.Left, pure)
		fmt.Fprintf(b, " %s ", n.Operator)
		printNode(b, n.Right, pure)
	case parser.NodeIfStatement:
		b.WriteString("if (")
		printNode(b, n.Test, pure)
		b.WriteString(") ")
		printNode(b, n.Consequent, pure)
		if n.Alternate != nil {
			b.WriteString(" else ")
			printNode(b, n.Alternate, pure)
		}
	case parser.NodeBlockStatement:
		printBlockBody(b, n.Body, pure)
	case parser.NodeIdentifier:
		b.WriteString(n.Name)
	case parser.NodeStringLiteral:
		b.WriteString(n.Raw)
	default:
		// Anything else synthesized without a recognized template: fall
		// back to printing whatever children it carries in source order.
		for _, ch := range n.Children {
			printNode(b, ch, pure)
		}
	}
}

func printFunction(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	if n.Async {
		b.WriteString("async ")
	}
	b.WriteString("function ")
	if n.Generator {
		b.WriteString("*")
	}
	b.WriteString(n.Name)
	b.WriteString("(")
	for i, p := range n.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		printNode(b, p, pure)
	}
	b.WriteString(") ")
	printBlockBody(b, n.Body, pure)
}

func printBlockBody(b *strings.Builder, stmts []*parser.Node, pure map[*parser.Node]bool) {
	b.WriteString("{ ")
	for _, stmt := range stmts {
		printNode(b, stmt, pure)
		b.WriteString("; ")
	}
	b.WriteString("}")
}

func printJSXOpeningElement(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	b.WriteString("<")
	b.WriteString(n.Name)
	for _, attr := range n.Children {
		b.WriteString(" ")
		printNode(b, attr, pure)
	}
	b.WriteString(">")
}

func printJSXAttribute(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	b.WriteString(n.Name)
	if n.Right != nil {
		b.WriteString("=")
		printNode(b, n.Right, pure)
	}
}

func printProperty(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	printNode(b, n.Left, pure)
	b.WriteString(": ")
	printNode(b, n.Right, pure)
}

func printMemberExpression(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	printNode(b, n.Object, pure)
	if n.Computed {
		b.WriteString("[")
		printNode(b, n.Property, pure)
		b.WriteString("]")
	} else {
		b.WriteString(".")
		printNode(b, n.Property, pure)
	}
}

func printProgram(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	for i, item := range n.Body {
		if i > 0 {
			b.WriteString("\n")
		}
		printNode(b, item, pure)
		if !strings.HasSuffix(b.String(), ";") {
			b.WriteString(";")
		}
	}
	b.WriteString("\n")
}

func printImportDeclaration(b *strings.Builder, n *parser.Node) {
	b.WriteString("import ")
	for i, spec := range n.Specifiers {
		if i > 0 {
			b.WriteString(", ")
		}
		switch spec.Type {
		case parser.NodeImportDefaultSpecifier:
			b.WriteString(spec.Name)
		case parser.NodeImportNamespaceSpecifier:
			fmt.Fprintf(b, "* as %s", spec.Name)
		default:
			if spec.Imported != nil && spec.Imported.Name != spec.Name {
				fmt.Fprintf(b, "{ %s as %s }", spec.Imported.Name, spec.Name)
			} else {
				fmt.Fprintf(b, "{ %s }", spec.Name)
			}
		}
	}
	b.WriteString(" from ")
	printNode(b, n.Source, nil)
}

func printExportNamedDeclaration(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	b.WriteString("export ")
	printNode(b, n.Declaration, pure)
}

func printVariableDeclaration(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	kind := n.Kind
	if kind == "" {
		kind = "const"
	}
	b.WriteString(kind)
	b.WriteString(" ")
	for i, d := range n.Declarations {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Name)
		if d.Init != nil {
			b.WriteString(" = ")
			printNode(b, d.Init, pure)
		}
	}
}

func printCallExpression(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	printNode(b, n.Callee, pure)
	b.WriteString("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		printNode(b, arg, pure)
	}
	b.WriteString(")")
}

func printArrowFunction(b *strings.Builder, n *parser.Node, pure map[*parser.Node]bool) {
	b.WriteString("(")
	for i, p := range n.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		printNode(b, p, pure)
	}
	b.WriteString(") => ")
	if len(n.Body) == 1 && n.Body[0].Type == parser.NodeCallExpression {
		printNode(b, n.Body[0], pure)
		return
	}
	b.WriteString("{ ")
	for _, stmt := range n.Body {
		printNode(b, stmt, pure)
		b.WriteString("; ")
	}
	b.WriteString("}")
}
