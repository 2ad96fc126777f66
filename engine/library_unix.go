//go:build !windows

package engine

import (
	"fmt"

	"github.com/ebitengine/purego"
)

func loadLibrary(path string) (uintptr, error) {
	libh, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, path, err)
	}
	if libh == 0 {
		return 0, fmt.Errorf("%w: %s: nil handle after load", ErrLibraryNotFound, path)
	}
	return libh, nil
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	if err := purego.Dlclose(handle); err != nil {
		return fmt.Errorf("close library: %w", err)
	}
	return nil
}
