package hooks

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/parser"
)

// TransformContext is shared across every file folded in a single run: it
// remembers every symbol name already handed out (so two hooks that would
// otherwise collide get distinguished) and holds the bundling policy that
// decides which entry module each extracted hook belongs to.
type TransformContext struct {
	HooksNames     map[string]struct{}
	BundlingPolicy EntryPolicy
}

func NewTransformContext(policy EntryPolicy) *TransformContext {
	return &TransformContext{
		HooksNames:     make(map[string]struct{}, 10),
		BundlingPolicy: policy,
	}
}

// HookTransform folds a single module, replacing every qHook(fn[, name])
// call site with a stub that dynamically imports the extracted body from
// its own synthesized module, and every qComponent(...) call site is
// recorded so the printer can annotate it pure.
type HookTransform struct {
	ctx      *TransformContext
	pathData domain.PathData
	global   *domain.GlobalCollect

	stackCtxt  []string
	moduleItem int
	rootSym    string

	hooks         []*domain.Hook
	pureCallSites []*parser.Node
	diagnostics   []domain.Diagnostic
}

func NewHookTransform(ctx *TransformContext, pathData domain.PathData, global *domain.GlobalCollect) *HookTransform {
	return &HookTransform{ctx: ctx, pathData: pathData, global: global}
}

func (t *HookTransform) Hooks() []*domain.Hook            { return t.hooks }
func (t *HookTransform) Diagnostics() []domain.Diagnostic { return t.diagnostics }
func (t *HookTransform) PureCallSites() []*parser.Node    { return t.pureCallSites }

// Transform folds every top-level item of program in place and returns it.
// Hooks are recorded in the order their module_index was assigned, then
// sorted descending so a later-declared hook (which may depend on an
// earlier one having already been written out) is processed first by
// callers that write one synthesized module per hook.
func (t *HookTransform) Transform(program *parser.Node) *parser.Node {
	for i, item := range program.Body {
		program.Body[i], _ = t.foldModuleItemC(item)
		t.moduleItem++
	}
	sort.SliceStable(t.hooks, func(i, j int) bool {
		return t.hooks[i].ModuleIndex > t.hooks[j].ModuleIndex
	})
	return program
}

func (t *HookTransform) foldModuleItemC(item *parser.Node) (*parser.Node, bool) {
	if item == nil {
		return nil, false
	}

	switch item.Type {
	case parser.NodeVariableDeclaration:
		return t.handleVarDecl(item)

	case parser.NodeExportNamedDeclaration:
		if item.Declaration == nil {
			return item, false
		}
		var changed bool
		switch item.Declaration.Type {
		case parser.NodeVariableDeclaration:
			item.Declaration, changed = t.handleVarDecl(item.Declaration)
		case parser.NodeClass:
			t.rootSym = item.Declaration.Name
			item.Declaration, changed = t.foldClassDecl(item.Declaration)
		case parser.NodeFunction, parser.NodeGeneratorFunction:
			t.rootSym = item.Declaration.Name
			item.Declaration, changed = t.foldFnDecl(item.Declaration)
		default:
			item.Declaration, changed = t.fold(item.Declaration)
		}
		if changed {
			item.Raw = ""
		}
		return item, changed

	default:
		return t.fold(item)
	}
}

// handleVarDecl tracks root_sym for each top-level declarator (the plain
// identifier a `const`/`let`/`var` binds a call expression to, used as a
// naming fallback), then folds each declarator's initializer.
func (t *HookTransform) handleVarDecl(node *parser.Node) (*parser.Node, bool) {
	changed := false
	for i, d := range node.Declarations {
		if d.Left != nil && d.Left.Type == parser.NodeIdentifier {
			t.rootSym = d.Left.Name
		} else {
			t.rootSym = ""
		}
		var c bool
		node.Declarations[i], c = t.foldVarDeclarator(d)
		changed = changed || c
	}
	if changed {
		node.Raw = ""
	}
	return node, changed
}

func (t *HookTransform) foldVarDeclarator(d *parser.Node) (*parser.Node, bool) {
	stacked := false
	if d.Left != nil && d.Left.Type == parser.NodeIdentifier {
		t.stackCtxt = append(t.stackCtxt, d.Left.Name)
		stacked = true
	}
	var changed bool
	d.Init, changed = t.fold(d.Init)
	if stacked {
		t.stackCtxt = t.stackCtxt[:len(t.stackCtxt)-1]
	}
	if changed {
		d.Raw = ""
	}
	return d, changed
}

func (t *HookTransform) foldFnDecl(n *parser.Node) (*parser.Node, bool) {
	t.stackCtxt = append(t.stackCtxt, n.Name)
	changed := t.foldChildren(n)
	t.stackCtxt = t.stackCtxt[:len(t.stackCtxt)-1]
	return n, changed
}

func (t *HookTransform) foldClassDecl(n *parser.Node) (*parser.Node, bool) {
	t.stackCtxt = append(t.stackCtxt, n.Name)
	changed := t.foldChildren(n)
	t.stackCtxt = t.stackCtxt[:len(t.stackCtxt)-1]
	return n, changed
}

func (t *HookTransform) foldJSXOpeningElement(n *parser.Node) (*parser.Node, bool) {
	stacked := false
	if n.Name != "" {
		t.stackCtxt = append(t.stackCtxt, n.Name)
		stacked = true
	}
	changed := t.foldChildren(n)
	if stacked {
		t.stackCtxt = t.stackCtxt[:len(t.stackCtxt)-1]
	}
	return n, changed
}

func (t *HookTransform) foldJSXAttribute(n *parser.Node) (*parser.Node, bool) {
	stacked := false
	if n.Name != "" {
		t.stackCtxt = append(t.stackCtxt, n.Name)
		stacked = true
	}
	var changed bool
	n.Right, changed = t.fold(n.Right)
	if stacked {
		t.stackCtxt = t.stackCtxt[:len(t.stackCtxt)-1]
	}
	if changed {
		n.Raw = ""
	}
	return n, changed
}

// foldProperty names the context after an object-literal key (`{ onMount:
// qHook(...) }` extracts as `onMount`, the same way a variable declarator
// or JSX attribute does).
func (t *HookTransform) foldProperty(n *parser.Node) (*parser.Node, bool) {
	stacked := false
	if n.Left != nil {
		switch n.Left.Type {
		case parser.NodeIdentifier:
			t.stackCtxt = append(t.stackCtxt, n.Left.Name)
			stacked = true
		case parser.NodeStringLiteral:
			t.stackCtxt = append(t.stackCtxt, stringValue(n.Left))
			stacked = true
		}
	}
	var changed bool
	n.Right, changed = t.fold(n.Right)
	if stacked {
		t.stackCtxt = t.stackCtxt[:len(t.stackCtxt)-1]
	}
	if changed {
		n.Raw = ""
	}
	return n, changed
}

// fold visits n and returns the (possibly replaced) node along with whether
// its subtree differs from what it was parsed as. A true result means n's
// own Raw (if any) has already been cleared, so the printer falls through to
// a structural template instead of the now-stale verbatim source span.
func (t *HookTransform) fold(n *parser.Node) (*parser.Node, bool) {
	if n == nil {
		return nil, false
	}

	switch n.Type {
	case parser.NodeFunction, parser.NodeGeneratorFunction:
		if n.Name != "" {
			return t.foldFnDecl(n)
		}
		changed := t.foldChildren(n)
		return n, changed

	case parser.NodeClass:
		if n.Name != "" {
			return t.foldClassDecl(n)
		}
		changed := t.foldChildren(n)
		return n, changed

	case parser.NodeVariableDeclaration:
		return t.handleVarDecl(n)

	case parser.NodeVariableDeclarator:
		return t.foldVarDeclarator(n)

	case parser.NodeJSXOpeningElement, parser.NodeJSXSelfClosingElement:
		return t.foldJSXOpeningElement(n)

	case parser.NodeJSXAttribute:
		return t.foldJSXAttribute(n)

	case parser.NodeProperty:
		return t.foldProperty(n)

	case parser.NodeCallExpression:
		return t.foldCallExpr(n)

	default:
		changed := t.foldChildren(n)
		return n, changed
	}
}

// foldChildren recurses into every child-bearing field of n, replacing each
// with its own folded result (mirrors parser.Node.Walk's field order), and
// reports whether any field actually changed. When it did, n.Raw — n's own
// verbatim source slice, now stale — is cleared so Print falls back to
// structural recursion for this node instead of reprinting pre-transform text.
func (t *HookTransform) foldChildren(n *parser.Node) bool {
	changed := false
	var c bool
	for i, ch := range n.Children {
		n.Children[i], c = t.fold(ch)
		changed = changed || c
	}
	for i, p := range n.Params {
		n.Params[i], c = t.fold(p)
		changed = changed || c
	}
	for i, s := range n.Body {
		n.Body[i], c = t.fold(s)
		changed = changed || c
	}
	for i, cs := range n.Cases {
		n.Cases[i], c = t.fold(cs)
		changed = changed || c
	}
	for i, h := range n.Handlers {
		n.Handlers[i], c = t.fold(h)
		changed = changed || c
	}
	for i, a := range n.Arguments {
		n.Arguments[i], c = t.fold(a)
		changed = changed || c
	}
	for i, d := range n.Declarations {
		n.Declarations[i], c = t.fold(d)
		changed = changed || c
	}
	for i, sp := range n.Specifiers {
		n.Specifiers[i], c = t.fold(sp)
		changed = changed || c
	}
	n.Test, c = t.fold(n.Test)
	changed = changed || c
	n.Consequent, c = t.fold(n.Consequent)
	changed = changed || c
	n.Alternate, c = t.fold(n.Alternate)
	changed = changed || c
	n.Init, c = t.fold(n.Init)
	changed = changed || c
	n.Update, c = t.fold(n.Update)
	changed = changed || c
	n.Handler, c = t.fold(n.Handler)
	changed = changed || c
	n.Finalizer, c = t.fold(n.Finalizer)
	changed = changed || c
	n.Left, c = t.fold(n.Left)
	changed = changed || c
	n.Right, c = t.fold(n.Right)
	changed = changed || c
	n.Argument, c = t.fold(n.Argument)
	changed = changed || c
	n.Callee, c = t.fold(n.Callee)
	changed = changed || c
	n.Object, c = t.fold(n.Object)
	changed = changed || c
	n.Property, c = t.fold(n.Property)
	changed = changed || c
	n.Source, c = t.fold(n.Source)
	changed = changed || c
	n.Declaration, c = t.fold(n.Declaration)
	changed = changed || c

	if changed {
		n.Raw = ""
	}
	return changed
}

func (t *HookTransform) foldCallExpr(n *parser.Node) (*parser.Node, bool) {
	if n.Callee != nil && n.Callee.Type == parser.NodeIdentifier {
		switch n.Callee.Name {
		case "qComponent":
			t.pureCallSites = append(t.pureCallSites, n)
			changed := t.foldChildren(n)
			return n, changed
		case "qHook":
			if isAlreadyExtractedStub(n) {
				break
			}
			return t.foldQHook(n), true
		}
	}
	changed := t.foldChildren(n)
	return n, changed
}

// isAlreadyExtractedStub recognizes the stub shape buildQHookStub produces
// (qHook(() => import("..."), "name")): a zero-argument arrow whose sole
// body expression is itself a call to the bare identifier import. No user
// hook body takes this exact shape, so re-running the transform over its
// own output leaves a previously extracted call site untouched.
func isAlreadyExtractedStub(n *parser.Node) bool {
	if len(n.Arguments) == 0 {
		return false
	}
	arrow := n.Arguments[0]
	if arrow.Type != parser.NodeArrowFunction || len(arrow.Params) != 0 || len(arrow.Body) != 1 {
		return false
	}
	call := arrow.Body[0]
	return call.Type == parser.NodeCallExpression && call.Callee != nil &&
		call.Callee.Type == parser.NodeIdentifier && call.Callee.Name == "import"
}

// foldQHook is the heart of the extraction: it names the hook from its
// declaration context (or a validated second-argument override), computes
// the canonical filename its synthesized module will use, folds the hook
// body itself (so a qHook nested inside another hook is extracted too),
// records the Hook, and replaces this call site with a stub that lazily
// imports the extracted module.
func (t *HookTransform) foldQHook(n *parser.Node) *parser.Node {
	symbolName := t.getContextName()

	if len(n.Arguments) > 1 {
		second := n.Arguments[1]
		if second.Type == parser.NodeStringLiteral {
			val := stringValue(second)
			if validateSym(val) {
				symbolName = val
			} else {
				t.diagnostics = append(t.diagnostics, domain.Diagnostic{
					Message:  "second argument should be the name of a valid identifier",
					Severity: domain.SeverityError,
					CodeHighlights: []domain.CodeHighlight{{
						Message: "invalid symbol name",
						Location: domain.SourceLocation{
							FilePath:  t.pathData.Path,
							StartLine: second.Location.StartLine,
							StartCol:  second.Location.StartCol,
							EndLine:   second.Location.EndLine,
							EndCol:    second.Location.EndCol,
						},
					}},
				})
			}
		}
	}

	canonicalFilename := strings.ToLower("h_" + t.pathData.FileStem + "_" + symbolName)

	// The stub only ever carries the extracted body; any second argument
	// (the custom name) has already been consumed above.
	if len(n.Arguments) > 1 {
		n.Arguments = n.Arguments[:1]
	}

	var folded *parser.Node
	if len(n.Arguments) > 0 {
		folded, _ = t.fold(n.Arguments[0])
		n.Arguments[0] = folded
	}

	hookCollect := CollectHook(folded, t.global)

	entry, ok := t.ctx.BundlingPolicy.GetEntryForSym(symbolName, t.pathData, t.stackCtxt, hookCollect)
	target := canonicalFilename
	if ok {
		target = entry
	}
	importPath, err := FixPath(t.pathData.Path, "./"+target)
	if err != nil {
		importPath = "./" + target
	}

	hookEntry := ""
	if ok {
		hookEntry = entry
	}

	t.hooks = append(t.hooks, &domain.Hook{
		Entry:             hookEntry,
		CanonicalFilename: canonicalFilename,
		Name:              symbolName,
		ModuleIndex:       t.moduleItem,
		Expr:              folded,
		LocalDecl:         hookCollect.LocalDecl,
		LocalIdents:       hookCollect.LocalIdents,
		Origin:            t.pathData.Path,
	})
	t.ctx.HooksNames[symbolName] = struct{}{}

	return buildQHookStub(importPath, symbolName)
}

// getContextName derives a hook's default symbol name from its declaration
// context (the stack of enclosing variable/function/class/JSX-tag/object-key
// names), falling back to "_h" with no surrounding context, and disambiguating
// a collision with an already-used name by appending the current hook count.
func (t *HookTransform) getContextName() string {
	ctx := strings.Join(t.stackCtxt, "_")
	if len(t.stackCtxt) == 0 {
		ctx += "_h"
	}
	ctx = escapeSym(ctx)
	if _, exists := t.ctx.HooksNames[ctx]; exists {
		ctx += strconv.Itoa(len(t.hooks))
	}
	return ctx
}

func buildQHookStub(importPath, symbolName string) *parser.Node {
	qhookIdent := parser.NewNode(parser.NodeIdentifier)
	qhookIdent.Name = "qHook"
	qhookIdent.Raw = "qHook"

	importIdent := parser.NewNode(parser.NodeIdentifier)
	importIdent.Name = "import"
	importIdent.Raw = "import"

	pathLit := parser.NewNode(parser.NodeStringLiteral)
	pathLit.Raw = strconv.Quote(importPath)

	importCall := parser.NewNode(parser.NodeCallExpression)
	importCall.Callee = importIdent
	importCall.Arguments = []*parser.Node{pathLit}

	arrow := parser.NewNode(parser.NodeArrowFunction)
	arrow.Body = []*parser.Node{importCall}

	symbolLit := parser.NewNode(parser.NodeStringLiteral)
	symbolLit.Raw = strconv.Quote(symbolName)

	stub := parser.NewNode(parser.NodeCallExpression)
	stub.Callee = qhookIdent
	stub.Arguments = []*parser.Node{arrow, symbolLit}
	return stub
}

var symRe = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]{0,30}$`)

func validateSym(sym string) bool {
	return symRe.MatchString(sym)
}

func escapeSym(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
