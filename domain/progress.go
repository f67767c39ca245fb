package domain

import "context"

// ExecutableTask is one unit of work a ParallelExecutor can run concurrently
// alongside others — e.g. one file's worth of analysis or hook extraction.
type ExecutableTask interface {
	// Name identifies the task in error messages and progress output.
	Name() string

	// Execute runs the task, returning its result or an error.
	Execute(ctx context.Context) (interface{}, error)

	// IsEnabled reports whether this task should run at all; a disabled
	// task is skipped rather than executed.
	IsEnabled() bool
}

// ProgressManager creates and tracks progress tasks for long-running,
// multi-file operations (complexity analysis, hook extraction, ...).
// Implementations may render an interactive bar or do nothing at all,
// depending on whether the caller is attached to a terminal.
type ProgressManager interface {
	// StartTask begins tracking a task with the given description and
	// total unit count (e.g. number of files to process).
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether this manager renders visible output.
	IsInteractive() bool

	// Close finishes every outstanding task.
	Close()
}

// TaskProgress tracks progress of a single task started via
// ProgressManager.StartTask.
type TaskProgress interface {
	// Increment advances the task by n units.
	Increment(n int)

	// Describe updates the task's description, e.g. to name the file
	// currently being processed.
	Describe(description string)

	// Complete marks the task as finished.
	Complete()
}
