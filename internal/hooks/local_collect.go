package hooks

import (
	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/parser"
)

// CollectHook runs the inward traversal over a single hook body expression,
// computing its local_decl (every identifier the body itself introduces)
// and local_idents (every identifier the body references that isn't one of
// its own bindings and that resolves to an import or export in global).
//
// local_decl is computed in a first pass over the whole body so that
// forward references to a later declaration (e.g. a hoisted function
// declared after its first use) are still recognized as bound rather than
// free; local_idents is then computed in a second pass against the
// complete declared set.
func CollectHook(body *parser.Node, global *domain.GlobalCollect) domain.HookCollect {
	c := &localCollector{
		declared: make(map[string]bool),
		seen:     make(map[string]bool),
		global:   global,
	}
	c.declarePass(body)
	c.referencePass(body)
	return domain.HookCollect{LocalDecl: c.declOrder, LocalIdents: c.identOrder}
}

type localCollector struct {
	declared map[string]bool
	declOrder []string

	seen      map[string]bool
	identOrder []string

	global *domain.GlobalCollect
}

func (c *localCollector) declare(name string) {
	if name == "" || c.declared[name] {
		return
	}
	c.declared[name] = true
	c.declOrder = append(c.declOrder, name)
}

func (c *localCollector) reference(name string) {
	if name == "" || c.declared[name] || c.seen[name] {
		return
	}
	if _, ok := c.global.Imports[name]; !ok {
		if _, ok := c.global.Exports[name]; !ok {
			return
		}
	}
	c.seen[name] = true
	c.identOrder = append(c.identOrder, name)
}

// bindPattern declares every identifier a binding pattern introduces:
// (a) function/arrow parameters, including destructured object/array
// patterns, (b) var/let/const declarators, (c) catch clause bindings.
// A pair_pattern's key is never a binding; an assignment_pattern's default
// value is a reference-bearing expression, not a binding, and is queued
// onto refExprs for the reference pass to walk normally.
func (c *localCollector) bindPattern(n *parser.Node, refExprs *[]*parser.Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case parser.NodeIdentifier:
		c.declare(n.Name)
	case parser.NodeObjectPattern, parser.NodeArrayPattern, parser.NodeRestPattern:
		for _, ch := range n.Children {
			c.bindPattern(ch, refExprs)
		}
	case parser.NodePairPattern:
		c.bindPattern(n.Right, refExprs)
	case parser.NodeAssignmentPattern:
		c.bindPattern(n.Left, refExprs)
		if refExprs != nil && n.Right != nil {
			*refExprs = append(*refExprs, n.Right)
		}
	default:
		for _, ch := range n.Children {
			c.bindPattern(ch, refExprs)
		}
	}
}

// declarePass walks the whole body registering every bound identifier:
// function/class declaration names, declarator bindings, parameter
// patterns, and catch-clause bindings. Default-value expressions found
// while binding parameters are parked for declarePass to keep descending
// into (they may themselves declare nothing, but may contain nested
// function expressions that do).
func (c *localCollector) declarePass(n *parser.Node) {
	if n == nil {
		return
	}

	switch n.Type {
	case parser.NodeVariableDeclaration:
		for _, d := range n.Declarations {
			var refExprs []*parser.Node
			c.bindPattern(d.Left, &refExprs)
			for _, e := range refExprs {
				c.declarePass(e)
			}
			c.declarePass(d.Init)
		}
		return

	case parser.NodeFunction, parser.NodeFunctionExpression, parser.NodeGeneratorFunction,
		parser.NodeArrowFunction, parser.NodeMethodDefinition:
		if n.Name != "" {
			c.declare(n.Name)
		}
		for _, p := range n.Params {
			var refExprs []*parser.Node
			c.bindPattern(p, &refExprs)
			for _, e := range refExprs {
				c.declarePass(e)
			}
		}
		for _, stmt := range n.Body {
			c.declarePass(stmt)
		}
		return

	case parser.NodeClass, parser.NodeClassExpression:
		if n.Name != "" {
			c.declare(n.Name)
		}
		for _, stmt := range n.Body {
			c.declarePass(stmt)
		}
		return

	case parser.NodeCatchClause:
		for _, p := range n.Params {
			var refExprs []*parser.Node
			c.bindPattern(p, &refExprs)
			for _, e := range refExprs {
				c.declarePass(e)
			}
		}
		for _, stmt := range n.Body {
			c.declarePass(stmt)
		}
		return
	}

	c.eachChild(n, c.declarePass)
}

// referencePass walks the whole body a second time, now against the
// complete declared set, recording every free identifier that resolves to
// an import or export of the enclosing module. A non-computed member
// expression's property is never a reference; only its object is.
func (c *localCollector) referencePass(n *parser.Node) {
	if n == nil {
		return
	}

	switch n.Type {
	case parser.NodeIdentifier:
		c.reference(n.Name)
		return

	case parser.NodeMemberExpression:
		c.referencePass(n.Object)
		if n.Computed {
			c.referencePass(n.Property)
		}
		return
	}

	c.eachChild(n, c.referencePass)
}

// eachChild visits every child-bearing field of n with visit, mirroring
// parser.Node.Walk's traversal order.
func (c *localCollector) eachChild(n *parser.Node, visit func(*parser.Node)) {
	for _, ch := range n.Children {
		visit(ch)
	}
	for _, p := range n.Params {
		visit(p)
	}
	for _, s := range n.Body {
		visit(s)
	}
	for _, cs := range n.Cases {
		visit(cs)
	}
	for _, h := range n.Handlers {
		visit(h)
	}
	for _, a := range n.Arguments {
		visit(a)
	}
	for _, d := range n.Declarations {
		visit(d)
	}
	for _, sp := range n.Specifiers {
		visit(sp)
	}
	visit(n.Test)
	visit(n.Consequent)
	visit(n.Alternate)
	visit(n.Init)
	visit(n.Update)
	visit(n.Handler)
	visit(n.Finalizer)
	visit(n.Left)
	visit(n.Right)
	visit(n.Argument)
	visit(n.Callee)
	visit(n.Object)
	visit(n.Property)
	visit(n.Source)
	visit(n.Declaration)
}
