package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ludo-technologies/jscan/app"
	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/config"
	"github.com/ludo-technologies/jscan/internal/parser"
	"github.com/ludo-technologies/jscan/service"
	"github.com/spf13/cobra"
)

var (
	optimizeEntryStrategy string
	optimizeManualGroups  []string
	optimizeMinify        string
	optimizeSourceMaps    bool
	optimizeTranspile     bool
	optimizePrintAST      bool
	optimizeOutDir        string
	optimizeJSON          bool
	optimizeConfigPath    string
	optimizeLint          bool
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [path...]",
		Short: "Extract qHook callbacks into lazy-loadable modules",
		Long: `Extract every qHook call's callback body into its own
synthesized module, rewriting the call site into a stub that lazily
imports it. qComponent calls stay in place. Mirrors the entry-grouping
bundling strategies of a resumable-framework optimizer.

Examples:
  jscan optimize src/                                  # Print one module per hook to stdout
  jscan optimize --entry-strategy single src/           # Bundle all hooks into one entry
  jscan optimize --entry-strategy manual \
    --manual-group useA,useB --manual-group useC src/    # Hand-picked groups
  jscan optimize --minify minify -o dist/ src/           # Minify and write to dist/
  jscan optimize --json src/                             # Output JSON to stdout`,
		RunE: runOptimize,
	}

	cmd.Flags().StringVar(&optimizeEntryStrategy, "entry-strategy", "hook",
		"Bundling strategy: single, hook, component, smart, manual")
	cmd.Flags().StringArrayVar(&optimizeManualGroups, "manual-group", nil,
		"Comma-separated hook names forming one manual group (repeatable, requires --entry-strategy manual)")
	cmd.Flags().StringVar(&optimizeMinify, "minify", "none",
		"Minification mode: none, simplify, minify")
	cmd.Flags().BoolVar(&optimizeSourceMaps, "source-maps", false,
		"Accepted for configuration; no source map is generated for any output module")
	cmd.Flags().BoolVar(&optimizeTranspile, "transpile", false,
		"Force every output module's extension to .js")
	cmd.Flags().BoolVar(&optimizePrintAST, "print-ast", false,
		"Print the parsed AST instead of running the transform")
	cmd.Flags().StringVarP(&optimizeOutDir, "outdir", "o", "",
		"Directory to write output modules to (default: print to stdout)")
	cmd.Flags().BoolVar(&optimizeJSON, "json", false,
		"Output the transform result as JSON to stdout")
	cmd.Flags().StringVarP(&optimizeConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&optimizeLint, "lint", false,
		"Run complexity and dead-code analysis over each extracted hook body")

	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfigWithTarget(optimizeConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if optimizeConfigPath != "" && !optimizeJSON {
		fmt.Printf("Using config: %s\n", optimizeConfigPath)
	}

	if !cmd.Flags().Changed("entry-strategy") && cfg.Optimize.EntryStrategy != "" {
		optimizeEntryStrategy = string(cfg.Optimize.EntryStrategy)
	}
	if !cmd.Flags().Changed("minify") && cfg.Optimize.Minify != "" {
		optimizeMinify = string(cfg.Optimize.Minify)
	}
	if !cmd.Flags().Changed("lint") && cfg.Optimize.Lint {
		optimizeLint = true
	}

	entryStrategy := domain.EntryStrategyKind(optimizeEntryStrategy)
	manualGroups := cfg.Optimize.ManualGroups
	if len(optimizeManualGroups) > 0 {
		manualGroups = nil
		for _, group := range optimizeManualGroups {
			manualGroups = append(manualGroups, strings.Split(group, ","))
		}
	}

	var files []string
	for _, path := range args {
		pathFiles, err := collectJSFiles(path, cfg.Analysis.ExcludePatterns)
		if err != nil {
			return fmt.Errorf("failed to collect files from %s: %w", path, err)
		}
		files = append(files, pathFiles...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no JavaScript/TypeScript files found")
	}

	if optimizePrintAST {
		return printASTForFiles(files)
	}

	pm := service.NewProgressManager(!optimizeJSON)
	defer pm.Close()

	optimizeService := service.NewOptimizeServiceWithProgress(pm)
	useCase := app.NewOptimizeUseCase(optimizeService)

	req := domain.OptimizeRequest{
		Paths:         files,
		Recursive:     cfg.Analysis.Recursive,
		EntryStrategy: entryStrategy,
		ManualGroups:  manualGroups,
		Minify:        domain.MinifyMode(optimizeMinify),
		SourceMaps:    optimizeSourceMaps,
		Transpile:     optimizeTranspile,
		Lint:          optimizeLint,
		OutDir:        optimizeOutDir,
		WriteToDisk:   optimizeOutDir != "",
	}

	result, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	if optimizeJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	if req.WriteToDisk {
		fmt.Printf("Wrote %d module(s) to %s\n", len(result.Modules), optimizeOutDir)
	} else {
		for _, module := range result.Modules {
			fmt.Printf("// %s\n%s\n\n", module.Path, module.Code)
		}
	}
	fmt.Printf("Extracted %d hook(s) from %d file(s)\n", len(result.Hooks), len(files))
	for _, diag := range result.Diagnostics {
		fmt.Printf("  %s: %s\n", diag.Severity, diag.Message)
	}

	return nil
}

// printASTForFiles parses every file and prints its AST instead of running
// the transform, for debugging the parser/transform boundary.
func printASTForFiles(files []string) error {
	for _, file := range files {
		code, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		ast, err := parser.ParseForLanguage(file, code)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
		fmt.Printf("// %s\n", file)
		ast.Walk(func(n *parser.Node) bool {
			fmt.Println(n.String())
			return true
		})
	}
	return nil
}
