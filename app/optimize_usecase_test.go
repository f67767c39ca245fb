package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/jscan/domain"
)

type mockOptimizeService struct {
	calls int
	paths []string
}

func (m *mockOptimizeService) Optimize(ctx context.Context, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	m.calls++
	m.paths = req.Paths
	return &domain.TransformResult{
		Modules: []domain.TransformModule{{Path: "out.js", Code: "// ok"}},
	}, nil
}

func (m *mockOptimizeService) OptimizeFile(ctx context.Context, filePath string, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	req.Paths = []string{filePath}
	return m.Optimize(ctx, req)
}

func TestOptimizeUseCase_Execute_ResolvesDirectoryIntoFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => 1);\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	mock := &mockOptimizeService{}
	uc := NewOptimizeUseCase(mock)

	result, err := uc.Execute(context.Background(), domain.OptimizeRequest{
		Paths:         []string{dir},
		Recursive:     true,
		EntryStrategy: domain.EntryStrategyPerHook,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected the service to be called once, got %d", mock.calls)
	}
	if len(mock.paths) != 1 || mock.paths[0] != file {
		t.Errorf("expected resolved paths %v, got %v", []string{file}, mock.paths)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("expected the mock's result to pass through unchanged, got %+v", result)
	}
}

func TestOptimizeUseCase_Execute_NoPaths(t *testing.T) {
	uc := NewOptimizeUseCase(&mockOptimizeService{})
	_, err := uc.Execute(context.Background(), domain.OptimizeRequest{})
	if err == nil {
		t.Fatal("expected an error for an empty path list")
	}
}

func TestOptimizeUseCase_Execute_ManualStrategyRequiresGroups(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => 1);\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	uc := NewOptimizeUseCase(&mockOptimizeService{})
	_, err := uc.Execute(context.Background(), domain.OptimizeRequest{
		Paths:         []string{file},
		EntryStrategy: domain.EntryStrategyManual,
	})
	if err == nil {
		t.Fatal("expected an error when manual strategy has no groups")
	}
}

func TestOptimizeUseCase_Execute_WriteToDiskRequiresOutDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => 1);\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	uc := NewOptimizeUseCase(&mockOptimizeService{})
	_, err := uc.Execute(context.Background(), domain.OptimizeRequest{
		Paths:       []string{file},
		WriteToDisk: true,
	})
	if err == nil {
		t.Fatal("expected an error when write-to-disk has no OutDir")
	}
}

func TestOptimizeUseCase_OptimizeFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "widget.tsx")
	if err := os.WriteFile(file, []byte("export const useCount = qHook(() => 1);\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	mock := &mockOptimizeService{}
	uc := NewOptimizeUseCase(mock)
	_, err := uc.OptimizeFile(context.Background(), file, domain.OptimizeRequest{})
	if err != nil {
		t.Fatalf("OptimizeFile returned error: %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected the service to be called once, got %d", mock.calls)
	}
}

func TestOptimizeUseCase_OptimizeFile_RejectsNonJSFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	uc := NewOptimizeUseCase(&mockOptimizeService{})
	_, err := uc.OptimizeFile(context.Background(), file, domain.OptimizeRequest{})
	if err == nil {
		t.Fatal("expected an error for a non-JS/TS file")
	}
}

func TestNewOptimizeUseCaseBuilder(t *testing.T) {
	builder := NewOptimizeUseCaseBuilder()
	if builder == nil {
		t.Fatal("NewOptimizeUseCaseBuilder should not return nil")
	}
}

func TestOptimizeUseCaseBuilder_BuildWithoutService(t *testing.T) {
	builder := NewOptimizeUseCaseBuilder()
	_, err := builder.Build()
	if err == nil {
		t.Error("Build without service should return error")
	}
}

func TestOptimizeUseCaseBuilder_WithFileHelper(t *testing.T) {
	mock := &mockOptimizeService{}
	fileHelper := NewFileHelper()

	builder := NewOptimizeUseCaseBuilder().
		WithService(mock).
		WithFileHelper(fileHelper)

	uc, err := builder.Build()
	if err != nil {
		t.Fatalf("Build should not return error: %v", err)
	}
	if uc == nil {
		t.Fatal("UseCase should not be nil")
	}
}
