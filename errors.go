package kenlmgo

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when a Model operation is invoked after Close.
	ErrClosed = errors.New("model is closed")

	// ErrPoolClosed is returned when a Pool operation is invoked after Close.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrEmptySequence is returned when a scoring call receives no tokens.
	// The engine requires at least one token; this is checked here rather
	// than trusted to the boundary.
	ErrEmptySequence = errors.New("token sequence must not be empty")
)

// LoadError indicates that a Model could not be constructed.
//
// Use errors.Is with engine.ErrLibraryNotFound or engine.ErrModelRejected to
// tell "can't find the engine" from "engine rejected the model file".
type LoadError struct {
	Path  string
	cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %q: %v", e.Path, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }

// ErrCapacityExceeded indicates a Pool write larger than the pool's id slots.
type ErrCapacityExceeded struct {
	Capacity int // total slots, including the count slot
	Count    int // ids requested
}

func (e *ErrCapacityExceeded) Error() string {
	return fmt.Sprintf("pool capacity exceeded: %d ids, capacity %d (max %d)",
		e.Count, e.Capacity, e.Capacity-1)
}

// ErrIndexOutOfRange indicates an out-of-range suffix start index.
type ErrIndexOutOfRange struct {
	Index  int
	Length int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("suffix start %d out of range [0,%d)", e.Index, e.Length)
}
