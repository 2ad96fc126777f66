package kenlmgo

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/kenlmgo/modelstore"
)

// NewFromStore fetches a model from store into the cache directory (see
// WithCacheDir) and constructs a Model from the local copy. A model already
// present in the cache is reused without touching the store.
//
// The cached file is keyed by the model name and kept across Close so
// repeated process starts skip the fetch.
func NewFromStore(ctx context.Context, store modelstore.Store, name string, opts ...Option) (*Model, error) {
	o := applyOptions(opts...)

	cacheDir := o.cacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "kenlmgo-models")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, &LoadError{Path: name, cause: err}
	}

	local := filepath.Join(cacheDir, filepath.Base(name))
	if _, err := os.Stat(local); err != nil {
		if err := fetchTo(ctx, store, name, local); err != nil {
			return nil, &LoadError{Path: name, cause: err}
		}
	}
	return New(local, opts...)
}

// fetchTo downloads a model into dst. The download goes through a temp file
// renamed into place so a crashed fetch never leaves a truncated model the
// cache would later trust.
func fetchTo(ctx context.Context, store modelstore.Store, name, dst string) error {
	rc, err := store.Fetch(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
