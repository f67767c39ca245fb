package service

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/jscan/domain"
	"github.com/ludo-technologies/jscan/internal/hooks"
)

// OptimizeServiceImpl implements the OptimizeService interface by running
// the hook-extraction pipeline over every requested file and merging their
// results, mirroring ComplexityServiceImpl's per-file/merge shape.
type OptimizeServiceImpl struct {
	minifier hooks.Minifier
	progress domain.ProgressManager
}

// NewOptimizeService creates a new optimize service implementation.
func NewOptimizeService() *OptimizeServiceImpl {
	return &OptimizeServiceImpl{minifier: hooks.NoopMinifier{}}
}

// NewOptimizeServiceWithProgress creates an optimize service with progress
// reporting attached.
func NewOptimizeServiceWithProgress(pm domain.ProgressManager) *OptimizeServiceImpl {
	return &OptimizeServiceImpl{minifier: hooks.NoopMinifier{}, progress: pm}
}

// Optimize runs the hook-extraction transform over every path in req,
// merging each file's TransformResult into one.
func (s *OptimizeServiceImpl) Optimize(ctx context.Context, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no paths to optimize", nil)
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if s.progress != nil {
		task = s.progress.StartTask("Extracting hooks", len(req.Paths))
	}
	defer task.Complete()

	result := &domain.TransformResult{}
	for _, filePath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("optimize cancelled: %w", ctx.Err())
		default:
		}

		fileResult, err := s.optimizeFile(filePath, req)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
				Message:  fmt.Sprintf("%s: %v", filePath, err),
				Severity: domain.SeverityError,
			})
			task.Increment(1)
			continue
		}

		result.Append(*fileResult)
		if req.WriteToDisk {
			if err := hooks.WriteToFS(*fileResult, req.OutDir); err != nil {
				return nil, domain.NewOptimizeError(fmt.Sprintf("writing output for %s", filePath), err)
			}
		}
		task.Increment(1)
	}

	return result, nil
}

// OptimizeFile runs the transform over a single file.
func (s *OptimizeServiceImpl) OptimizeFile(ctx context.Context, filePath string, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	singleFileReq := req
	singleFileReq.Paths = []string{filePath}
	return s.Optimize(ctx, singleFileReq)
}

func (s *OptimizeServiceImpl) optimizeFile(filePath string, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	code, err := os.ReadFile(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}

	result, err := hooks.TransformCode(domain.TransformCodeOptions{
		Path:          filePath,
		Code:          string(code),
		SourceMaps:    req.SourceMaps,
		Minify:        req.Minify,
		Transpile:     req.Transpile,
		EntryStrategy: req.EntryStrategy,
		ManualGroups:  req.ManualGroups,
		Lint:          req.Lint,
	}, s.minifier)
	if err != nil {
		return nil, domain.NewOptimizeError(fmt.Sprintf("transforming %s", filePath), err)
	}
	return &result, nil
}
