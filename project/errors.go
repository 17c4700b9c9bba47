package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/utkarsh5026/projsim/triangular"
)

var (
	// ErrInvalidParameters reports a malformed triangular distribution.
	ErrInvalidParameters = triangular.ErrInvalidParameters

	// ErrInvalidArgument reports a bad simulation argument or cost rate.
	ErrInvalidArgument = triangular.ErrInvalidArgument

	// ErrInvalidGraph reports a structural problem other than a cycle or unknown reference.
	ErrInvalidGraph = errors.New("invalid task graph")

	// ErrCycle reports a dependency cycle.
	ErrCycle = errors.New("cycle detected")

	// ErrUnknownTask reports a reference to a task ID the graph does not contain.
	ErrUnknownTask = errors.New("unknown task")
)

// GraphError wraps deterministic graph validation failures.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

// TaskError attaches the offending task ID to a validation or sampling failure.
type TaskError struct {
	TaskID string
	Err    error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q: %v", e.TaskID, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return &GraphError{Kind: ErrInvalidGraph, Msg: fmt.Sprintf(format, args...)}
}

func unknownf(format string, args ...any) error {
	return &GraphError{Kind: ErrUnknownTask, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &GraphError{Kind: ErrCycle, Msg: msg}
}
