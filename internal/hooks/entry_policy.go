package hooks

import (
	"fmt"

	"github.com/ludo-technologies/jscan/domain"
)

// EntryPolicy decides which synthesized entry module a given hook's stub
// should be attached to (grouping multiple hooks' dynamic imports into a
// shared chunk), or that the hook gets no forced entry at all.
type EntryPolicy interface {
	GetEntryForSym(symbolName string, path domain.PathData, context []string, collect domain.HookCollect) (entry string, ok bool)
}

const entryFallback = "entry-fallback"

// SingleStrategy bundles every extracted hook into one shared entry module.
type SingleStrategy struct{}

func (SingleStrategy) GetEntryForSym(string, domain.PathData, []string, domain.HookCollect) (string, bool) {
	return "entry_hooks", true
}

// PerHookStrategy assigns no forced entry: every hook keeps its own module
// as its own entry point.
type PerHookStrategy struct{}

func (PerHookStrategy) GetEntryForSym(string, domain.PathData, []string, domain.HookCollect) (string, bool) {
	return "", false
}

// PerComponentStrategy groups a hook with its enclosing component, named
// after the outermost entry in its declaration context.
type PerComponentStrategy struct{}

func (PerComponentStrategy) GetEntryForSym(_ string, _ domain.PathData, context []string, _ domain.HookCollect) (string, bool) {
	if len(context) > 0 {
		return "entry_" + context[0], true
	}
	return entryFallback, true
}

// SmartStrategy behaves like PerComponentStrategy, except any hook whose
// declaration context passes through an onMount lifecycle call is routed to
// a dedicated server-only entry instead, since onMount hooks never run on
// the client.
type SmartStrategy struct{}

func (SmartStrategy) GetEntryForSym(_ string, _ domain.PathData, context []string, _ domain.HookCollect) (string, bool) {
	for _, h := range context {
		if h == "onMount" {
			return "entry-server", true
		}
	}
	if len(context) > 0 {
		return "entry_" + context[0], true
	}
	return entryFallback, true
}

// ManualStrategy assigns each hook's entry from an explicit, user-supplied
// grouping of symbol names; a symbol absent from every group falls back to
// a shared catch-all entry.
type ManualStrategy struct {
	groups   map[string]string
	fallback string
}

func NewManualStrategy(groups [][]string) *ManualStrategy {
	m := &ManualStrategy{groups: make(map[string]string), fallback: entryFallback}
	for i, group := range groups {
		name := fmt.Sprintf("entry_%d", i)
		for _, sym := range group {
			m.groups[sym] = name
		}
	}
	return m
}

func (m *ManualStrategy) GetEntryForSym(symbolName string, _ domain.PathData, _ []string, _ domain.HookCollect) (string, bool) {
	if entry, ok := m.groups[symbolName]; ok {
		return entry, true
	}
	return m.fallback, true
}

// NewEntryPolicy builds the EntryPolicy named by kind, consulting groups
// only for EntryStrategyManual.
func NewEntryPolicy(kind domain.EntryStrategyKind, groups [][]string) EntryPolicy {
	switch kind {
	case domain.EntryStrategySingle:
		return SingleStrategy{}
	case domain.EntryStrategyPerHook:
		return PerHookStrategy{}
	case domain.EntryStrategyComponent:
		return PerComponentStrategy{}
	case domain.EntryStrategySmart:
		return SmartStrategy{}
	case domain.EntryStrategyManual:
		return NewManualStrategy(groups)
	default:
		return SmartStrategy{}
	}
}
