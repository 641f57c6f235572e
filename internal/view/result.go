// Package view holds the small state types page templates render.
package view

// State is the lifecycle of a data screen.
type State int

const (
	Loading State = iota
	Success
	Failure
)

// Result is what a data screen renders: the value on success, a message
// on failure. A successful result with no value is the "not found" state.
type Result[T any] struct {
	State State
	Value T
	Found bool
	Error string
}

// Ok returns a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{State: Success, Value: v, Found: true}
}

// NotFound returns a successful result with nothing to show.
func NotFound[T any]() Result[T] {
	return Result[T]{State: Success}
}

// Fail returns a failed result carrying msg.
func Fail[T any](msg string) Result[T] {
	return Result[T]{State: Failure, Error: msg}
}

func (r Result[T]) IsLoading() bool { return r.State == Loading }
func (r Result[T]) IsSuccess() bool { return r.State == Success }
func (r Result[T]) IsFailure() bool { return r.State == Failure }
