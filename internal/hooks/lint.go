package hooks

import (
	"fmt"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/analyzer"
	"github.com/ludo-technologies/jscan/internal/config"
	"github.com/ludo-technologies/jscan/internal/parser"
)

// LintHooks runs the existing complexity and dead-code analyzers over each
// extracted hook's own body, the way jscan already runs them over whole
// files (service/complexity_service.go, service/dead_code_service.go), and
// turns their findings into optimize's own Diagnostic shape. Only runs when
// TransformCodeOptions.Lint is set; a hook body too small to contain a
// branch produces no findings.
func LintHooks(hooks []*domain.Hook) []domain.Diagnostic {
	cfg := config.DefaultConfig()
	var diagnostics []domain.Diagnostic
	for _, hook := range hooks {
		diagnostics = append(diagnostics, lintHook(hook, &cfg.Complexity)...)
	}
	return diagnostics
}

func lintHook(hook *domain.Hook, complexityCfg *config.ComplexityConfig) []domain.Diagnostic {
	exprNode, ok := hook.Expr.(*parser.Node)
	if !ok || exprNode == nil {
		return nil
	}

	builder := analyzer.NewCFGBuilder()
	cfg, err := builder.Build(exprNode)
	if err != nil {
		return nil
	}

	var diagnostics []domain.Diagnostic
	loc := hookLocation(hook, exprNode)

	complexity := analyzer.CalculateComplexityWithConfig(cfg, complexityCfg)
	if complexity != nil && complexityCfg.MaxComplexity > 0 && complexity.Complexity > complexityCfg.MaxComplexity {
		diagnostics = append(diagnostics, domain.Diagnostic{
			Message:  fmt.Sprintf("hook %q body complexity too high (%d > %d)", hook.Name, complexity.Complexity, complexityCfg.MaxComplexity),
			Severity: domain.SeverityWarning,
			CodeHighlights: []domain.CodeHighlight{{
				Message:  fmt.Sprintf("risk level: %s", complexity.RiskLevel),
				Location: loc,
			}},
		})
	}

	detector := analyzer.NewDeadCodeDetectorWithFilePath(cfg, hook.Origin)
	result := detector.Detect()
	if result != nil {
		for _, finding := range result.Findings {
			diagnostics = append(diagnostics, domain.Diagnostic{
				Message:  fmt.Sprintf("hook %q body is unreachable: %s", hook.Name, finding.Description),
				Severity: domain.SeverityWarning,
				CodeHighlights: []domain.CodeHighlight{{
					Message:  string(finding.Reason),
					Location: loc,
				}},
			})
		}
	}

	return diagnostics
}

func hookLocation(hook *domain.Hook, exprNode *parser.Node) domain.SourceLocation {
	return domain.SourceLocation{
		FilePath:  hook.Origin,
		StartLine: exprNode.Location.StartLine,
		StartCol:  exprNode.Location.StartCol,
		EndLine:   exprNode.Location.EndLine,
		EndCol:    exprNode.Location.EndCol,
	}
}
