package hooks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/parser"
)

// TransformCode runs the complete hook-extraction pipeline over a single
// input file: parse, collect globals, fold every qHook/qComponent call
// site, synthesize one module per entry group, print every module, and
// (when opts.Minify requests it) minify each one. Mirrors
// parse.rs::transform_code's pass ordering: a transpile pre-pass (here,
// only the output extension changes — see DESIGN.md) runs before the hook
// transform, which always runs before minification.
func TransformCode(opts domain.TransformCodeOptions, minifier Minifier) (domain.TransformResult, error) {
	pathData := ParsePath(opts.Path)
	ext := outputExtension(pathData.Extension, opts.Transpile)

	ast, err := parser.ParseForLanguage(opts.Path, []byte(opts.Code))
	if err != nil {
		return domain.TransformResult{}, fmt.Errorf("optimize: parse %s: %w", opts.Path, err)
	}

	global := CollectGlobal(ast)
	policy := NewEntryPolicy(opts.EntryStrategy, opts.ManualGroups)
	ctx := NewTransformContext(policy)
	transform := NewHookTransform(ctx, pathData, global)
	transform.Transform(ast)

	result := domain.TransformResult{
		IsTypeScript: isTypeScriptExt(pathData.Extension),
		IsJSX:        isJSXExt(pathData.Extension),
	}
	result.Diagnostics = append(result.Diagnostics, transform.Diagnostics()...)
	if opts.Lint {
		result.Diagnostics = append(result.Diagnostics, LintHooks(transform.Hooks())...)
	}

	mainCode, err := ApplyMinify(opts.Minify, Print(ast, transform.PureCallSites()), minifier)
	if err != nil {
		return domain.TransformResult{}, fmt.Errorf("optimize: minify %s: %w", opts.Path, err)
	}
	result.Modules = append(result.Modules, domain.TransformModule{
		Path:    modulePath(pathData.Dir, pathData.FileStem, ext),
		Code:    mainCode,
		IsEntry: false,
	})

	for _, group := range groupHooksByTarget(transform.Hooks()) {
		hookProgram := SynthesizeEntryModule(pathData, group.hooks, global)
		code, err := ApplyMinify(opts.Minify, Print(hookProgram, nil), minifier)
		if err != nil {
			return domain.TransformResult{}, fmt.Errorf("optimize: minify %s: %w", group.target, err)
		}
		result.Modules = append(result.Modules, domain.TransformModule{
			Path:    modulePath(pathData.Dir, group.target, ext),
			Code:    code,
			IsEntry: group.isEntry,
		})
		for _, hook := range group.hooks {
			result.Hooks = append(result.Hooks, domain.HookAnalysis{
				Origin:            hook.Origin,
				Name:              hook.Name,
				Entry:             hook.Entry,
				CanonicalFilename: hook.CanonicalFilename,
				LocalDecl:         hook.LocalDecl,
				LocalIdents:       hook.LocalIdents,
			})
		}
	}

	return result, nil
}

// hookGroup is every hook the bundling policy routed to the same physical
// output module.
type hookGroup struct {
	target  string
	isEntry bool
	hooks   []*domain.Hook
}

// groupHooksByTarget partitions hooks by the module they were told to
// import from in foldQHook: hook.Entry when the policy assigned one,
// otherwise the hook's own CanonicalFilename. Group order follows each
// group's first member's ModuleIndex (hooks arrive already sorted
// descending by ModuleIndex; groups preserve that relative order).
func groupHooksByTarget(hooks []*domain.Hook) []hookGroup {
	index := make(map[string]int)
	var groups []hookGroup
	for _, hook := range hooks {
		target := hook.CanonicalFilename
		isEntry := false
		if hook.Entry != "" {
			target = hook.Entry
			isEntry = true
		}
		if i, ok := index[target]; ok {
			groups[i].hooks = append(groups[i].hooks, hook)
			continue
		}
		index[target] = len(groups)
		groups = append(groups, hookGroup{target: target, isEntry: isEntry, hooks: []*domain.Hook{hook}})
	}
	return groups
}

// modulePath joins a directory, a bare stem, and an extension back into a
// path, matching the "no slash means empty directory" convention ParsePath
// and FixPath already use.
func modulePath(dir, stem, ext string) string {
	name := stem + "." + ext
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// outputExtension is parse.rs's extension-driven output naming: a
// transpiled module is always written as plain JavaScript, regardless of
// the input file's own extension.
func outputExtension(sourceExt string, transpile bool) string {
	if transpile {
		return "js"
	}
	if sourceExt == "" {
		return "js"
	}
	return sourceExt
}

func isTypeScriptExt(ext string) bool {
	switch ext {
	case "ts", "tsx", "mts", "cts":
		return true
	default:
		return false
	}
}

func isJSXExt(ext string) bool {
	return ext == "tsx" || ext == "jsx"
}

// WriteToFS writes every module in result to outDir, creating parent
// directories as needed, matching parse.rs's write_to_fs convenience.
func WriteToFS(result domain.TransformResult, outDir string) error {
	for _, module := range result.Modules {
		fullPath := module.Path
		if outDir != "" {
			fullPath = filepath.Join(outDir, filepath.FromSlash(module.Path))
		}
		if dir := filepath.Dir(fullPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("optimize: create directory for %s: %w", module.Path, err)
			}
		}
		if err := os.WriteFile(fullPath, []byte(module.Code), 0o644); err != nil {
			return fmt.Errorf("optimize: write %s: %w", module.Path, err)
		}
	}
	return nil
}
