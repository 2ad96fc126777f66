//go:build windows

package engine

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func loadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil || handle == 0 {
		return 0, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, path, err)
	}
	return uintptr(handle), nil
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	if err := windows.FreeLibrary(windows.Handle(handle)); err != nil {
		return fmt.Errorf("close library: %w", err)
	}
	return nil
}
