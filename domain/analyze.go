package domain

import (
	"math"
	"time"
)

// Score quality bands used by report formatters to color-code a 0-100
// score.
const (
	ScoreThresholdExcellent = 90
	ScoreThresholdGood      = 75
	ScoreThresholdFair      = 50
)

// AnalyzeSummary aggregates the results of every analysis kind (complexity,
// dead code) that a unified `analyze` run enabled, plus the derived
// per-dimension and overall health scores.
type AnalyzeSummary struct {
	TotalFiles    int `json:"total_files"`
	AnalyzedFiles int `json:"analyzed_files"`

	ComplexityEnabled     bool    `json:"complexity_enabled"`
	TotalFunctions        int     `json:"total_functions,omitempty"`
	AverageComplexity     float64 `json:"average_complexity,omitempty"`
	HighComplexityCount   int     `json:"high_complexity_count,omitempty"`
	MediumComplexityCount int     `json:"medium_complexity_count,omitempty"`
	ComplexityScore       int     `json:"complexity_score"`

	DeadCodeEnabled  bool `json:"dead_code_enabled"`
	DeadCodeCount    int  `json:"dead_code_count,omitempty"`
	CriticalDeadCode int  `json:"critical_dead_code,omitempty"`
	WarningDeadCode  int  `json:"warning_dead_code,omitempty"`
	InfoDeadCode     int  `json:"info_dead_code,omitempty"`
	DeadCodeScore    int  `json:"dead_code_score"`

	HealthScore int    `json:"health_score"`
	Grade       string `json:"grade"`
}

// AnalyzeResponse is the wire-level result of a unified analyze run,
// bundling whichever per-dimension responses were enabled alongside the
// aggregated AnalyzeSummary.
type AnalyzeResponse struct {
	Complexity  *ComplexityResponse `json:"complexity,omitempty"`
	DeadCode    *DeadCodeResponse   `json:"dead_code,omitempty"`
	Summary     AnalyzeSummary      `json:"summary"`
	GeneratedAt time.Time           `json:"generated_at"`
	Duration    int64               `json:"duration_ms"`
	Version     string              `json:"version"`
}

// CalculateHealthScore derives every per-dimension score and the overall
// HealthScore/Grade from the raw counts already populated on s. It never
// fails; the error return exists so callers can `_ =` it uniformly with
// every other scoring pass in the report pipeline.
func (s *AnalyzeSummary) CalculateHealthScore() error {
	var scores []int

	if s.ComplexityEnabled {
		s.ComplexityScore = complexityScore(s.AverageComplexity, s.HighComplexityCount, s.TotalFunctions)
		scores = append(scores, s.ComplexityScore)
	}

	if s.DeadCodeEnabled {
		s.DeadCodeScore = deadCodeScore(s.CriticalDeadCode, s.WarningDeadCode, s.InfoDeadCode, s.AnalyzedFiles)
		scores = append(scores, s.DeadCodeScore)
	}

	if len(scores) == 0 {
		s.HealthScore = 100
	} else {
		total := 0
		for _, sc := range scores {
			total += sc
		}
		s.HealthScore = total / len(scores)
	}
	s.Grade = scoreGrade(s.HealthScore)

	return nil
}

// complexityScore penalizes a high average cyclomatic complexity and a
// large share of high-risk functions.
func complexityScore(average float64, highCount, total int) int {
	penalty := average * 4
	if total > 0 {
		penalty += float64(highCount) / float64(total) * 40
	}
	return clampScore(100 - penalty)
}

// deadCodeScore penalizes critical findings most heavily, warnings less,
// informational findings least, normalized by files analyzed so a large
// project isn't penalized more than a small one with the same density.
func deadCodeScore(critical, warning, info, filesAnalyzed int) int {
	if filesAnalyzed == 0 {
		filesAnalyzed = 1
	}
	density := (float64(critical)*3 + float64(warning) + float64(info)*0.25) / float64(filesAnalyzed)
	return clampScore(100 - density*10)
}

// clampScore rounds and clamps a raw penalty-adjusted score into [0, 100].
func clampScore(raw float64) int {
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// scoreGrade maps a 0-100 health score onto a letter grade.
func scoreGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
