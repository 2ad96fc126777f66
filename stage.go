package kenlmgo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// stageModel prepares a model file for the native loader, which needs a
// plain file path. Gzip-compressed models are decompressed into cacheDir
// (or the OS temp directory) first; the staged file lives until Model.Close
// because the engine may map the file rather than read it eagerly.
//
// Returns the path to hand to the construct call and the staging path to
// remove on close ("" when the input needed no staging).
func stageModel(path, cacheDir string) (string, string, error) {
	if !strings.HasSuffix(path, ".gz") {
		return path, "", nil
	}

	in, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return "", "", fmt.Errorf("decompress %s: %w", path, err)
	}
	defer zr.Close()

	if cacheDir == "" {
		cacheDir = os.TempDir()
	}
	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	out, err := os.CreateTemp(cacheDir, base+"-*")
	if err != nil {
		return "", "", err
	}

	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		_ = os.Remove(out.Name())
		return "", "", fmt.Errorf("decompress %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", "", err
	}
	return out.Name(), out.Name(), nil
}
