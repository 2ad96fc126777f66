// Package engine defines the foreign-function boundary to the native KenLM
// scoring engine and provides the default dynamically loaded implementation.
//
// The engine performs no validation of its own: a stale handle, an oversized
// buffer, or an out-of-range index faults or corrupts memory native-side.
// Every precondition is therefore checked by the client layer before a call
// crosses this boundary; implementations of Engine may assume arguments are
// already valid.
package engine

import "errors"

// ModelHandle identifies one loaded model instance inside the native engine.
// The zero value is the "unset" sentinel and must never reach the engine.
type ModelHandle uintptr

// PoolHandle identifies one scratch-buffer pool inside the native engine.
// The zero value is the "unset" sentinel and must never reach the engine.
type PoolHandle uintptr

var (
	// ErrLibraryNotFound is returned when the native shared library cannot
	// be located or loaded for the running platform.
	ErrLibraryNotFound = errors.New("native library not found")

	// ErrSymbolMissing is returned when the loaded library does not export
	// a required entry point.
	ErrSymbolMissing = errors.New("native library is missing a required symbol")

	// ErrModelRejected is returned when the engine refuses to construct a
	// model from the given file (missing or malformed).
	ErrModelRejected = errors.New("engine rejected model file")

	// ErrPoolRejected is returned when the engine fails to create a pool.
	ErrPoolRejected = errors.New("engine rejected pool buffer")
)

// Engine is the entry-point contract of the native scoring engine.
//
// Implementations must be safe for concurrent use with distinct handles.
// Concurrent calls on the same ModelHandle are safe only for read-only
// queries; RegisterWord, Destroy and anything touching a shared PoolHandle
// must be serialized by the caller.
type Engine interface {
	// Construct loads a model file (binary or ARPA) and returns its handle.
	Construct(path string) (ModelHandle, error)

	// Destroy releases a model. It must be called exactly once per handle.
	Destroy(h ModelHandle)

	// Order returns the model's n-gram order.
	Order(h ModelHandle) int

	// RegisterWord associates an external numeric id with a vocabulary word
	// for subsequent integer-keyed queries. Reports whether the engine
	// accepted the registration.
	RegisterWord(h ModelHandle, word string, id int32) bool

	// Prob returns the log-probability of a non-empty id sequence.
	Prob(h ModelHandle, ids []int32) float32

	// ProbForWords returns the log-probability of a non-empty word sequence.
	ProbForWords(h ModelHandle, words []string) float32

	// ProbSuffix scores the suffix of ids beginning at start.
	// 0 <= start < len(ids).
	ProbSuffix(h ModelHandle, ids []int32, start int) float32

	// IsKnownWord reports whether word is in the model vocabulary.
	IsKnownWord(h ModelHandle, word string) bool

	// IsOOV reports whether the id has never been registered.
	IsOOV(h ModelHandle, id int32) bool

	// CreatePool registers buf as a scratch buffer for ProbRule calls and
	// returns its handle. The engine keeps a pointer into buf, so the caller
	// must keep buf alive and unmoved until DestroyPool.
	CreatePool(buf []int64) (PoolHandle, error)

	// DestroyPool releases a pool. It must be called exactly once per handle.
	DestroyPool(p PoolHandle)

	// ProbRule scores the n-gram ids currently written into the pool buffer
	// (slot 0 = count) and returns the packed state/probability value
	// decoded by package codec.
	ProbRule(h ModelHandle, p PoolHandle) uint64

	// EstimateRule returns a stateless probability estimate for a non-empty
	// pre-assembled n-gram id sequence.
	EstimateRule(h ModelHandle, ids []int64) float32
}
