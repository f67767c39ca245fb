package domain

import "context"

// PathData is the parsed shape of an input file path, split into the
// components the path model and the stub rewriter both need.
type PathData struct {
	// Path is the original input path, unchanged.
	Path string `json:"path"`

	// Dir is the parent directory, or "" if the path has none.
	Dir string `json:"dir"`

	// FileStem is the file name with its final extension removed.
	FileStem string `json:"file_stem"`

	// Extension is the file name's final extension, without the dot, or ""
	// if the file name has no dot.
	Extension string `json:"extension"`

	// FileName is the last path segment, extension included.
	FileName string `json:"file_name"`

	// FilePrefix is FileName up to (not including) its first dot, or the
	// whole FileName if it contains no dot.
	FilePrefix string `json:"file_prefix"`
}

// ImportSpecKind is the binding form of an import table entry.
type ImportSpecKind string

const (
	ImportSpecDefault   ImportSpecKind = "default"
	ImportSpecNamed     ImportSpecKind = "named"
	ImportSpecNamespace ImportSpecKind = "all"
)

// HookImportRecord is one entry of the global collector's import table: a
// local binding name mapped to where it came from.
type HookImportRecord struct {
	// Local is the name bound in the importing module's scope.
	Local string `json:"local"`

	// Remote is the name as exported by Source; empty for default/namespace
	// bindings and for named imports that aren't renamed.
	Remote string `json:"remote,omitempty"`

	// Kind distinguishes default/named/namespace specifiers, since each
	// reproduces differently when a synthesized module re-imports it.
	Kind ImportSpecKind `json:"kind"`

	// Source is the module specifier the import came from.
	Source string `json:"source"`
}

// HookExportRecord is one entry of the global collector's export table: a
// top-level binding that the module re-exports under ExportedName.
type HookExportRecord struct {
	// Local is the bound identifier's name within the module.
	Local string `json:"local"`

	// ExportedName is the name under which Local is exported (same as Local
	// unless the export declaration renames it).
	ExportedName string `json:"exported_name"`
}

// GlobalCollect is the result of the single forward pass over a module's
// top-level items: every import binding and every export binding, keyed for
// O(1) lookup during hook extraction.
type GlobalCollect struct {
	// Imports maps a local identifier to its import record.
	Imports map[string]HookImportRecord `json:"imports"`

	// Exports maps a local identifier to its export record.
	Exports map[string]HookExportRecord `json:"exports"`
}

// NewGlobalCollect returns an empty, ready-to-populate GlobalCollect.
func NewGlobalCollect() *GlobalCollect {
	return &GlobalCollect{
		Imports: make(map[string]HookImportRecord),
		Exports: make(map[string]HookExportRecord),
	}
}

// HookCollect is the result of the inward traversal over a single hook
// body: every identifier it declares and the free identifiers it references
// that the origin module imports or exports.
type HookCollect struct {
	// LocalDecl is every identifier bound within the hook body (parameters,
	// destructured bindings, inner declarations) in traversal order.
	LocalDecl []string `json:"local_decl"`

	// LocalIdents is every identifier referenced in the hook body that is
	// not itself a binding in LocalDecl and that the origin module imports
	// or exports. Other free identifiers (globals such as console) are not
	// listed.
	LocalIdents []string `json:"local_idents"`
}

// Hook is one extracted hook record, assembled incrementally while folding
// a qHook call site.
type Hook struct {
	// Entry is the entry-group name the bundling policy assigned, or empty
	// if the hook gets a module of its own named after CanonicalFilename
	// (that module is not marked as an entry).
	Entry string `json:"entry,omitempty"`

	// CanonicalFilename is the lowercased, filesystem-safe stem derived
	// from the origin file's basename and Name.
	CanonicalFilename string `json:"canonical_filename"`

	// Name is the hook's final symbol name (see the naming algorithm).
	Name string `json:"name"`

	// ModuleIndex is the source-order position of the enclosing top-level
	// module item; used only to order the hook list before synthesis.
	ModuleIndex int `json:"module_index"`

	// Expr is the (possibly recursively folded) hook body expression.
	Expr TransformNode `json:"-"`

	// LocalDecl is the hook body's own bound identifiers (see HookCollect).
	LocalDecl []string `json:"local_decl"`

	// LocalIdents is the hook body's free identifiers that the origin
	// module imports or exports (see HookCollect).
	LocalIdents []string `json:"local_idents"`

	// Origin is the path of the file the hook was extracted from.
	Origin string `json:"origin"`

	// PureCall is not set by the hook transform: qComponent call sites never
	// become Hook records, and their pure-call annotation is tracked on the
	// call nodes themselves (HookTransform.PureCallSites in internal/hooks).
	PureCall bool `json:"pure_call,omitempty"`
}

// TransformNode is an opaque handle to a *parser.Node; domain stays free of
// a dependency on internal/parser, so the hook pipeline stores the folded
// expression behind this alias and type-asserts it back at the boundary.
type TransformNode = interface{}

// EntryStrategyKind selects one of the five code-splitting bundling
// policies a transform run can use.
type EntryStrategyKind string

const (
	EntryStrategySingle    EntryStrategyKind = "single"
	EntryStrategyPerHook   EntryStrategyKind = "hook"
	EntryStrategyComponent EntryStrategyKind = "component"
	EntryStrategySmart     EntryStrategyKind = "smart"
	EntryStrategyManual    EntryStrategyKind = "manual"
)

// MinifyMode controls whether (and how) the output passes through a
// minification pass after the hook transform runs.
type MinifyMode string

const (
	MinifyNone     MinifyMode = "none"
	MinifySimplify MinifyMode = "simplify"
	MinifyMinify   MinifyMode = "minify"
)

// DiagnosticSeverity classifies a Diagnostic as fatal or informational.
type DiagnosticSeverity string

const (
	SeverityError       DiagnosticSeverity = "error"
	SeverityWarning     DiagnosticSeverity = "warning"
	SeveritySourceError DiagnosticSeverity = "source_error"
)

// CodeHighlight attaches a message to a specific source span within a
// Diagnostic, the way a compiler underlines the offending token.
type CodeHighlight struct {
	Message  string         `json:"message"`
	Location SourceLocation `json:"location"`
}

// Diagnostic is a single transform-time finding: a message, zero or more
// highlighted spans, optional hints, and a severity.
type Diagnostic struct {
	Message          string             `json:"message"`
	CodeHighlights   []CodeHighlight    `json:"code_highlights,omitempty"`
	Hints            []string           `json:"hints,omitempty"`
	Severity         DiagnosticSeverity `json:"severity"`
	DocumentationURL string             `json:"documentation_url,omitempty"`
}

// TransformCodeOptions configures a single hook-extraction run over one
// input file.
type TransformCodeOptions struct {
	Path            string            `json:"path"`
	Code            string            `json:"code"`
	SourceMaps      bool              `json:"source_maps"`
	Minify          MinifyMode        `json:"minify"`
	Transpile       bool              `json:"transpile"`
	PrintAST        bool              `json:"print_ast"`
	EntryStrategy   EntryStrategyKind `json:"entry_strategy"`
	ManualGroups    [][]string        `json:"manual_groups,omitempty"`
	Lint            bool              `json:"lint"`
}

// TransformModule is one synthesized or rewritten output file.
type TransformModule struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Map     string `json:"map,omitempty"`
	IsEntry bool   `json:"is_entry"`
}

// HookAnalysis is the externally-visible summary of one extracted hook,
// independent of the AST node it was folded from.
type HookAnalysis struct {
	Origin            string `json:"origin"`
	Name              string `json:"name"`
	Entry             string `json:"entry,omitempty"`
	CanonicalFilename string `json:"canonical_filename"`
	LocalDecl         []string `json:"local_decl"`
	LocalIdents       []string `json:"local_idents"`
}

// TransformResult is the complete output of a transform run over one or
// more input files: the rewritten/synthesized modules, any diagnostics
// raised along the way, and a flat summary of every extracted hook.
type TransformResult struct {
	Modules      []TransformModule `json:"modules"`
	Diagnostics  []Diagnostic      `json:"diagnostics,omitempty"`
	Hooks        []HookAnalysis    `json:"hooks"`
	IsTypeScript bool              `json:"is_type_script"`
	IsJSX        bool              `json:"is_jsx"`
}

// Append merges another file's TransformResult into this one, used by the
// batch driver when optimize is given multiple input files.
func (r *TransformResult) Append(other TransformResult) {
	r.Modules = append(r.Modules, other.Modules...)
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
	r.Hooks = append(r.Hooks, other.Hooks...)
	r.IsTypeScript = r.IsTypeScript || other.IsTypeScript
	r.IsJSX = r.IsJSX || other.IsJSX
}

// OptimizeConfig is the user-facing configuration for the optimize
// subcommand, loaded through internal/config the same way every other
// subcommand's section is.
type OptimizeConfig struct {
	EntryStrategy EntryStrategyKind `json:"entryStrategy" mapstructure:"entry_strategy" yaml:"entry_strategy"`
	ManualGroups  [][]string        `json:"manualGroups,omitempty" mapstructure:"manual_groups" yaml:"manual_groups,omitempty"`
	Minify        MinifyMode        `json:"minify" mapstructure:"minify" yaml:"minify"`
	SourceMaps    bool              `json:"sourceMaps" mapstructure:"source_maps" yaml:"source_maps"`
	Transpile     bool              `json:"transpile" mapstructure:"transpile" yaml:"transpile"`
	Lint          bool              `json:"lint" mapstructure:"lint" yaml:"lint"`
	OutDir        string            `json:"outDir,omitempty" mapstructure:"out_dir" yaml:"out_dir,omitempty"`
}

// OptimizeRequest is the app-layer request to run the hook-extraction
// transform over a set of paths, mirroring ComplexityRequest.
type OptimizeRequest struct {
	Paths           []string          `json:"paths"`
	Recursive       bool              `json:"recursive"`
	OutputFormat    OutputFormat      `json:"output_format"`
	EntryStrategy   EntryStrategyKind `json:"entry_strategy"`
	ManualGroups    [][]string        `json:"manual_groups,omitempty"`
	Minify          MinifyMode        `json:"minify"`
	SourceMaps      bool              `json:"source_maps"`
	Transpile       bool              `json:"transpile"`
	Lint            bool              `json:"lint"`
	OutDir          string            `json:"out_dir,omitempty"`
	WriteToDisk     bool              `json:"write_to_disk"`
	IncludePatterns []string          `json:"include_patterns,omitempty"`
	ExcludePatterns []string          `json:"exclude_patterns,omitempty"`
}

// OptimizeResponse is the app-layer response wrapping a TransformResult
// with any top-level errors, mirroring ComplexityResponse.
type OptimizeResponse struct {
	Result *TransformResult `json:"result"`
	Errors []string         `json:"errors,omitempty"`
}

// OptimizeService defines the core business logic for hook extraction,
// mirroring ComplexityService's single-request/single-file split.
type OptimizeService interface {
	// Optimize runs the hook-extraction transform over every path in the
	// request, merging each file's TransformResult into one.
	Optimize(ctx context.Context, req OptimizeRequest) (*TransformResult, error)

	// OptimizeFile runs the transform over a single file.
	OptimizeFile(ctx context.Context, filePath string, req OptimizeRequest) (*TransformResult, error)
}
