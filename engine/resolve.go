package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EnvLibraryPath overrides library resolution with an explicit file path.
const EnvLibraryPath = "KENLM_LIB_PATH"

const libBase = "kenlm"

// LibraryName returns the platform-qualified shared library file name.
func LibraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "lib" + libBase + ".dylib"
	case "windows":
		return libBase + ".dll"
	default:
		return "lib" + libBase + ".so"
	}
}

// Resolve locates the native library for the running platform.
// Search order:
//  1. KENLM_LIB_PATH environment variable (explicit override)
//  2. dir, if non-empty
//  3. lib/ relative to the executable
//  4. the bare platform name, delegated to the system loader's search path
//
// Only the bare-name fallback defers existence checking to the loader; the
// other candidates must exist on disk.
func Resolve(dir string) (string, error) {
	if envPath := os.Getenv(EnvLibraryPath); envPath != "" {
		info, err := os.Stat(envPath)
		if err != nil {
			return "", fmt.Errorf("%w: %s=%q: %v", ErrLibraryNotFound, EnvLibraryPath, envPath, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s=%q is a directory", ErrLibraryNotFound, EnvLibraryPath, envPath)
		}
		return envPath, nil
	}

	name := LibraryName()

	if dir != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, path)
		}
		return path, nil
	}

	if exePath, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(exePath), "lib", name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return name, nil
}
