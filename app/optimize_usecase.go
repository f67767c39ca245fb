package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/jscan/domain"
)

// OptimizeUseCase orchestrates the hook-extraction workflow: resolve the
// requested paths into concrete files, then hand them to the service.
type OptimizeUseCase struct {
	service    domain.OptimizeService
	fileHelper *FileHelper
}

// NewOptimizeUseCase creates a new optimize use case.
func NewOptimizeUseCase(service domain.OptimizeService) *OptimizeUseCase {
	return &OptimizeUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the complete hook-extraction workflow.
func (uc *OptimizeUseCase) Execute(ctx context.Context, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no JavaScript/TypeScript files found in the specified paths", nil)
	}

	req.Paths = files

	result, err := uc.service.Optimize(ctx, req)
	if err != nil {
		return nil, domain.NewOptimizeError("hook extraction failed", err)
	}

	return result, nil
}

// OptimizeFile runs the transform over a single file.
func (uc *OptimizeUseCase) OptimizeFile(ctx context.Context, filePath string, req domain.OptimizeRequest) (*domain.TransformResult, error) {
	if !uc.fileHelper.IsValidJSFile(filePath) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a valid JavaScript/TypeScript file: %s", filePath), nil)
	}

	exists, err := uc.fileHelper.FileExists(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return nil, domain.NewFileNotFoundError(filePath, fmt.Errorf("file does not exist"))
	}

	req.Paths = []string{filePath}
	return uc.service.OptimizeFile(ctx, filePath, req)
}

func (uc *OptimizeUseCase) validateRequest(req domain.OptimizeRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	switch req.EntryStrategy {
	case domain.EntryStrategySingle, domain.EntryStrategyPerHook, domain.EntryStrategyComponent,
		domain.EntryStrategySmart, domain.EntryStrategyManual, "":
	default:
		return fmt.Errorf("unknown entry strategy: %s", req.EntryStrategy)
	}

	if req.EntryStrategy == domain.EntryStrategyManual && len(req.ManualGroups) == 0 {
		return fmt.Errorf("manual entry strategy requires at least one group")
	}

	switch req.Minify {
	case domain.MinifyNone, domain.MinifySimplify, domain.MinifyMinify, "":
	default:
		return fmt.Errorf("unknown minify mode: %s", req.Minify)
	}

	if req.WriteToDisk && req.OutDir == "" {
		return fmt.Errorf("writing to disk requires an output directory")
	}

	return nil
}

// OptimizeUseCaseBuilder provides a builder pattern for creating
// OptimizeUseCase, mirroring ComplexityUseCaseBuilder.
type OptimizeUseCaseBuilder struct {
	service    domain.OptimizeService
	fileHelper *FileHelper
}

// NewOptimizeUseCaseBuilder creates a new builder.
func NewOptimizeUseCaseBuilder() *OptimizeUseCaseBuilder {
	return &OptimizeUseCaseBuilder{}
}

// WithService sets the optimize service.
func (b *OptimizeUseCaseBuilder) WithService(service domain.OptimizeService) *OptimizeUseCaseBuilder {
	b.service = service
	return b
}

// WithFileHelper sets the file helper.
func (b *OptimizeUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *OptimizeUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// Build creates the OptimizeUseCase with the configured dependencies.
func (b *OptimizeUseCaseBuilder) Build() (*OptimizeUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("optimize service is required")
	}

	uc := &OptimizeUseCase{
		service:    b.service,
		fileHelper: b.fileHelper,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
