package hooks

import (
	"sort"
	"testing"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/parser"
)

func findHookBody(t *testing.T, ast *parser.Node) *parser.Node {
	t.Helper()
	var body *parser.Node
	ast.Walk(func(n *parser.Node) bool {
		if n.Type == parser.NodeArrowFunction || n.Type == parser.NodeFunctionExpression {
			body = n
			return false
		}
		return true
	})
	if body == nil {
		t.Fatal("no function/arrow node found in source")
	}
	return body
}

func sorted(xs []string) []string {
	out := append([]string(nil), xs...)
	sort.Strings(out)
	return out
}

func TestCollectHookParamsAndDeclaratorsAreNotReferences(t *testing.T) {
	ast := parseProgram(t, `
import { useStore } from "./lib";
export const useCount = () => {
  const state = useStore({ count: 0 });
  const { count, step = 1 } = state;
  return count + step;
};
`)
	global := CollectGlobal(ast)
	body := findHookBody(t, ast)

	got := CollectHook(body, global)

	decl := sorted(got.LocalDecl)
	wantDecl := []string{"count", "state", "step"}
	if len(decl) != len(wantDecl) {
		t.Fatalf("local_decl = %v, want %v", decl, wantDecl)
	}
	for i, name := range wantDecl {
		if decl[i] != name {
			t.Errorf("local_decl[%d] = %q, want %q (full: %v)", i, decl[i], name, decl)
		}
	}

	idents := sorted(got.LocalIdents)
	wantIdents := []string{"useStore"}
	if len(idents) != len(wantIdents) || idents[0] != wantIdents[0] {
		t.Errorf("local_idents = %v, want %v", idents, wantIdents)
	}
}

func TestCollectHookMemberExpressionPropertyNotCounted(t *testing.T) {
	ast := parseProgram(t, `
import { config } from "./config";
export const useFlag = () => {
  return config.flags.enabled;
};
`)
	global := CollectGlobal(ast)
	body := findHookBody(t, ast)

	got := CollectHook(body, global)

	idents := sorted(got.LocalIdents)
	if len(idents) != 1 || idents[0] != "config" {
		t.Errorf("local_idents = %v, want [config] (flags/enabled must not be counted)", idents)
	}
}

func TestCollectHookComputedMemberExpressionPropertyCounted(t *testing.T) {
	ast := parseProgram(t, `
import { config } from "./config";
import { key } from "./key";
export const useFlag = () => {
  return config[key];
};
`)
	global := CollectGlobal(ast)
	body := findHookBody(t, ast)

	got := CollectHook(body, global)

	idents := sorted(got.LocalIdents)
	want := []string{"config", "key"}
	if len(idents) != len(want) {
		t.Fatalf("local_idents = %v, want %v", idents, want)
	}
	for i, name := range want {
		if idents[i] != name {
			t.Errorf("local_idents[%d] = %q, want %q", i, idents[i], name)
		}
	}
}

func TestCollectHookIgnoresNonImportedNonExportedFreeNames(t *testing.T) {
	ast := parseProgram(t, `
export const useThing = () => {
  return globalThis.whatever;
};
`)
	global := CollectGlobal(ast)
	body := findHookBody(t, ast)

	got := CollectHook(body, global)

	if len(got.LocalIdents) != 0 {
		t.Errorf("local_idents = %v, want empty (globalThis is neither import nor export)", got.LocalIdents)
	}
}

func TestCollectHookDedupesRepeatedReferences(t *testing.T) {
	ast := parseProgram(t, `
import { helper } from "./helper";
export const useTwice = () => {
  helper();
  return helper();
};
`)
	global := CollectGlobal(ast)
	body := findHookBody(t, ast)

	got := CollectHook(body, global)

	if len(got.LocalIdents) != 1 || got.LocalIdents[0] != "helper" {
		t.Errorf("local_idents = %v, want [helper] deduplicated", got.LocalIdents)
	}
}

func TestCollectHookEmptyGlobalYieldsNoIdents(t *testing.T) {
	body := findHookBody(t, parseProgram(t, `const f = () => { return 1; };`))
	got := CollectHook(body, domain.NewGlobalCollect())
	if len(got.LocalIdents) != 0 {
		t.Errorf("local_idents = %v, want empty", got.LocalIdents)
	}
}
