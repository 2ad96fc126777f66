// Package modelstore abstracts where model files come from.
//
// The native loader only accepts a local file path, so remote stores fetch
// into a local cache directory rather than exposing readers to the engine.
package modelstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a model does not exist in the store.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for fetching immutable model files.
type Store interface {
	// Fetch opens the named model for reading.
	Fetch(ctx context.Context, name string) (io.ReadCloser, error)
}
