package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/jscan/domain"
)

func TestNewOptimizeService(t *testing.T) {
	svc := NewOptimizeService()
	if svc == nil {
		t.Fatal("NewOptimizeService should not return nil")
	}
	if svc.progress != nil {
		t.Error("progress should be nil when not provided")
	}
}

func TestNewOptimizeServiceWithProgress(t *testing.T) {
	pm := NewProgressManager(false)
	svc := NewOptimizeServiceWithProgress(pm)
	if svc.progress == nil {
		t.Error("progress should not be nil")
	}
}

func TestOptimizeService_Optimize_EmptyPaths(t *testing.T) {
	svc := NewOptimizeService()
	_, err := svc.Optimize(context.Background(), domain.OptimizeRequest{})
	if err == nil {
		t.Fatal("expected an error for an empty path list")
	}
}

func TestOptimizeService_Optimize_ExtractsHook(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => { return 1; });\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	svc := NewOptimizeService()
	result, err := svc.Optimize(context.Background(), domain.OptimizeRequest{
		Paths:         []string{file},
		EntryStrategy: domain.EntryStrategyPerHook,
	})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("got %d modules, want 2 (main + hook)", len(result.Modules))
	}
	if len(result.Hooks) != 1 || result.Hooks[0].Name != "useCount" {
		t.Fatalf("got hooks %+v, want single useCount hook", result.Hooks)
	}
}

func TestOptimizeService_Optimize_WritesToDisk(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	file := filepath.Join(srcDir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => 1);\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	svc := NewOptimizeService()
	result, err := svc.Optimize(context.Background(), domain.OptimizeRequest{
		Paths:         []string{file},
		EntryStrategy: domain.EntryStrategyPerHook,
		WriteToDisk:   true,
		OutDir:        outDir,
	})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	for _, module := range result.Modules {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(module.Path))); err != nil {
			t.Errorf("expected %s to be written to disk: %v", module.Path, err)
		}
	}
}

func TestOptimizeService_Optimize_ContinuesPastUnreadableFile(t *testing.T) {
	svc := NewOptimizeService()
	result, err := svc.Optimize(context.Background(), domain.OptimizeRequest{
		Paths:         []string{"/nonexistent/does-not-exist.tsx"},
		EntryStrategy: domain.EntryStrategyPerHook,
	})
	if err != nil {
		t.Fatalf("Optimize should tolerate a missing file, got error: %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if result.Diagnostics[0].Severity != domain.SeverityError {
		t.Errorf("diagnostic severity = %q, want %q", result.Diagnostics[0].Severity, domain.SeverityError)
	}
}

func TestOptimizeService_OptimizeFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => 1);\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	svc := NewOptimizeService()
	result, err := svc.OptimizeFile(context.Background(), file, domain.OptimizeRequest{
		EntryStrategy: domain.EntryStrategyPerHook,
	})
	if err != nil {
		t.Fatalf("OptimizeFile returned error: %v", err)
	}
	if len(result.Hooks) != 1 {
		t.Fatalf("got %d hooks, want 1", len(result.Hooks))
	}
}
