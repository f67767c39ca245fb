package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ludo-technologies/jscan/domain"
)

// BuildAnalyzeSummary folds whichever per-dimension responses a unified
// analyze run enabled into a single domain.AnalyzeSummary and computes its
// health score. Every output format (JSON/YAML/CSV/text/HTML) builds its
// summary through this one function so the reported score never diverges
// between formats.
func BuildAnalyzeSummary(
	complexityResponse *domain.ComplexityResponse,
	deadCodeResponse *domain.DeadCodeResponse,
) *domain.AnalyzeSummary {
	summary := &domain.AnalyzeSummary{}

	if complexityResponse != nil {
		summary.ComplexityEnabled = true
		summary.TotalFunctions = complexityResponse.Summary.TotalFunctions
		summary.AverageComplexity = complexityResponse.Summary.AverageComplexity
		summary.HighComplexityCount = complexityResponse.Summary.HighRiskFunctions
		summary.MediumComplexityCount = complexityResponse.Summary.MediumRiskFunctions
		summary.AnalyzedFiles = complexityResponse.Summary.FilesAnalyzed
		if complexityResponse.Summary.FilesAnalyzed > summary.TotalFiles {
			summary.TotalFiles = complexityResponse.Summary.FilesAnalyzed
		}
	}

	if deadCodeResponse != nil {
		summary.DeadCodeEnabled = true
		summary.DeadCodeCount = deadCodeResponse.Summary.TotalFindings
		summary.CriticalDeadCode = deadCodeResponse.Summary.CriticalFindings
		summary.WarningDeadCode = deadCodeResponse.Summary.WarningFindings
		summary.InfoDeadCode = deadCodeResponse.Summary.InfoFindings
		if deadCodeResponse.Summary.TotalFiles > summary.TotalFiles {
			summary.TotalFiles = deadCodeResponse.Summary.TotalFiles
		}
	}

	_ = summary.CalculateHealthScore()
	return summary
}

// FormatCLISummary renders a compact, terminal-friendly rendition of an
// AnalyzeSummary, the way a CLI tail summary follows a machine-readable
// report so a human watching the run still sees the headline numbers.
func FormatCLISummary(summary *domain.AnalyzeSummary, duration time.Duration) string {
	if summary == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nHealth Score: %d/100 (Grade: %s) — analyzed in %s\n", summary.HealthScore, summary.Grade, duration.Round(time.Millisecond))

	if summary.ComplexityEnabled {
		fmt.Fprintf(&b, "  Complexity:   %3d/100  (%d functions, %d high-risk)\n",
			summary.ComplexityScore, summary.TotalFunctions, summary.HighComplexityCount)
	}
	if summary.DeadCodeEnabled {
		fmt.Fprintf(&b, "  Dead code:    %3d/100  (%d findings, %d critical)\n",
			summary.DeadCodeScore, summary.DeadCodeCount, summary.CriticalDeadCode)
	}

	return b.String()
}
