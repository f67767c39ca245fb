package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/config"
	"github.com/ludo-technologies/jscan/internal/version"
	"github.com/ludo-technologies/jscan/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMaxComplexity  int
	checkAllowDeadCode  bool
	checkSelectAnalyses []string
	checkVerbose        bool
	checkJSON           bool
	checkConfigPath     string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality check for CI/CD pipelines",
		Long: `Run quality checks against configurable thresholds for CI/CD integration.

Exit codes:
  0 - All checks pass
  1 - Quality threshold(s) violated
  2 - Analysis error (file not found, parse error, etc.)

Examples:
  # Basic check with defaults
  jscan check src/

  # Strict complexity check
  jscan check --max-complexity 10 src/

  # Allow dead code findings without failing
  jscan check --allow-dead-code src/

  # JSON output for machine parsing
  jscan check --json src/

  # Select specific analyses
  jscan check --select complexity src/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().IntVar(&checkMaxComplexity, "max-complexity", 10,
		"Maximum allowed cyclomatic complexity per function")
	cmd.Flags().BoolVar(&checkAllowDeadCode, "allow-dead-code", false,
		"Allow dead code findings without failing")
	cmd.Flags().StringSliceVarP(&checkSelectAnalyses, "select", "s",
		[]string{"complexity", "deadcode"},
		"Analyses to run: complexity,deadcode")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	startTime := time.Now()

	// Load configuration
	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	// Apply config values for flags not explicitly set on CLI
	if !cmd.Flags().Changed("max-complexity") && cfg.Complexity.MaxComplexity > 0 {
		checkMaxComplexity = cfg.Complexity.MaxComplexity
	}

	// Collect JavaScript/TypeScript files (using exclude patterns from config)
	var files []string
	for _, path := range args {
		pathFiles, err := collectJSFiles(path, cfg.Analysis.ExcludePatterns)
		if err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to collect files from %s: %v", path, err)}
		}
		files = append(files, pathFiles...)
	}

	if len(files) == 0 {
		return &CheckExitError{Code: 2, Message: "no JavaScript/TypeScript files found"}
	}

	// Create progress manager (auto-disabled for JSON output or non-TTY/CI)
	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	// Initialize result
	result := &domain.CheckResult{
		Passed:     true,
		ExitCode:   0,
		Violations: []domain.CheckViolation{},
		Summary: domain.CheckSummary{
			FilesAnalyzed: len(files),
		},
	}

	ctx := context.Background()

	// Run selected analyses
	if contains(checkSelectAnalyses, "complexity") {
		if err := checkComplexity(ctx, files, cfg, result, pm); err != nil {
			return &CheckExitError{Code: 2, Message: err.Error()}
		}
	}

	if contains(checkSelectAnalyses, "deadcode") {
		if err := checkDeadCode(ctx, files, cfg, result, pm); err != nil {
			return &CheckExitError{Code: 2, Message: err.Error()}
		}
	}

	return outputCheckResult(result, startTime)
}

func checkComplexity(ctx context.Context, files []string, cfg *config.Config, result *domain.CheckResult, pm domain.ProgressManager) error {
	result.Summary.ComplexityChecked = true

	svc := service.NewComplexityServiceWithProgress(&cfg.Complexity, pm)
	req := domain.ComplexityRequest{
		Paths:           files,
		LowThreshold:    cfg.Complexity.LowThreshold,
		MediumThreshold: cfg.Complexity.MediumThreshold,
		SortBy:          domain.SortByComplexity,
	}

	resp, err := svc.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("complexity analysis failed: %w", err)
	}

	// Check each function against threshold
	for _, fn := range resp.Functions {
		if fn.Metrics.Complexity > checkMaxComplexity {
			result.Passed = false
			result.Summary.HighComplexityFunctions++
			result.Violations = append(result.Violations, domain.CheckViolation{
				Category:  "complexity",
				Rule:      "max-complexity",
				Severity:  "error",
				Message:   fmt.Sprintf("Function '%s' has complexity %d", fn.Name, fn.Metrics.Complexity),
				Location:  fmt.Sprintf("%s:%d", fn.FilePath, fn.StartLine),
				Actual:    strconv.Itoa(fn.Metrics.Complexity),
				Threshold: strconv.Itoa(checkMaxComplexity),
			})
		}
	}

	return nil
}

func checkDeadCode(_ context.Context, files []string, cfg *config.Config, result *domain.CheckResult, pm domain.ProgressManager) error {
	result.Summary.DeadCodeChecked = true

	resp, err := runDeadCodeAnalysis(files, cfg, pm)
	if err != nil {
		return fmt.Errorf("dead code analysis failed: %w", err)
	}

	result.Summary.DeadCodeFindings = resp.Summary.TotalFindings

	if !checkAllowDeadCode && resp.Summary.TotalFindings > 0 {
		result.Passed = false

		// Add violation for critical findings
		if resp.Summary.CriticalFindings > 0 {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Category:  "deadcode",
				Rule:      "no-dead-code",
				Severity:  "error",
				Message:   fmt.Sprintf("Found %d critical dead code issues", resp.Summary.CriticalFindings),
				Actual:    strconv.Itoa(resp.Summary.CriticalFindings),
				Threshold: "0",
			})
		}

		// Add violation for warnings
		if resp.Summary.WarningFindings > 0 {
			result.Violations = append(result.Violations, domain.CheckViolation{
				Category:  "deadcode",
				Rule:      "no-dead-code",
				Severity:  "warning",
				Message:   fmt.Sprintf("Found %d warning-level dead code issues", resp.Summary.WarningFindings),
				Actual:    strconv.Itoa(resp.Summary.WarningFindings),
				Threshold: "0",
			})
		}
	}

	return nil
}

func outputCheckResult(result *domain.CheckResult, startTime time.Time) error {
	result.Duration = time.Since(startTime).Milliseconds()
	result.GeneratedAt = time.Now().Format(time.RFC3339)
	result.Version = version.Version
	result.ExitCode = 0
	if !result.Passed {
		result.ExitCode = 1
	}
	result.Summary.TotalViolations = len(result.Violations)

	if checkJSON {
		return outputCheckJSON(result)
	}

	return outputCheckText(result)
}

func outputCheckText(result *domain.CheckResult) error {
	if result.Passed {
		fmt.Println("PASS: All quality checks passed")
		if checkVerbose {
			fmt.Printf("  Files analyzed: %d\n", result.Summary.FilesAnalyzed)
			fmt.Printf("  Duration: %dms\n", result.Duration)
			if result.Summary.ComplexityChecked {
				fmt.Printf("  Complexity: checked (max: %d)\n", checkMaxComplexity)
			}
			if result.Summary.DeadCodeChecked {
				fmt.Printf("  Dead code: checked\n")
			}
		}
		return nil
	}

	fmt.Println("FAIL: Quality check failed")
	fmt.Printf("  Violations: %d\n", result.Summary.TotalViolations)

	// Print violations
	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Printf("  [%s] %s: %s\n", severity, v.Category, v.Message)
		if checkVerbose && v.Location != "" {
			fmt.Printf("         at %s\n", v.Location)
		}
	}

	if checkVerbose {
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Files: %d\n", result.Summary.FilesAnalyzed)
		if result.Summary.ComplexityChecked {
			fmt.Printf("  High complexity functions: %d\n", result.Summary.HighComplexityFunctions)
		}
		if result.Summary.DeadCodeChecked {
			fmt.Printf("  Dead code findings: %d\n", result.Summary.DeadCodeFindings)
		}
		fmt.Printf("  Duration: %dms\n", result.Duration)
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *domain.CheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
