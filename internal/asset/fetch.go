package asset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scrollscene/internal/archive"
	"scrollscene/internal/download"
)

// FileFetcher resolves local paths, http(s) URLs and zipped bundles to a local
// model file. Downloads and extracted bundles go under CacheDir.
type FileFetcher struct {
	CacheDir string
	Client   *download.Client
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context, src string, progress func(float64)) (string, error) {
	local := src
	if download.IsRemote(src) {
		path, err := f.Client.Download(ctx, src, filepath.Join(f.CacheDir, "remote"), func(loaded, total int64) {
			if total > 0 {
				progress(float64(loaded) / float64(total))
			}
		})
		if err != nil {
			return "", fmt.Errorf("asset: %w", err)
		}
		local = path
	} else {
		info, err := os.Stat(src)
		if err != nil {
			return "", fmt.Errorf("asset: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("asset: %s is a directory", src)
		}
		progress(1)
	}

	if !archive.IsZip(local) {
		return local, nil
	}
	name := strings.TrimSuffix(filepath.Base(local), filepath.Ext(local))
	dest := filepath.Join(f.CacheDir, "bundles", name)
	if _, err := archive.Unzip(ctx, local, dest); err != nil {
		return "", fmt.Errorf("asset: %w", err)
	}
	model, err := archive.FindModel(dest)
	if err != nil {
		return "", fmt.Errorf("asset: %s: %w", src, err)
	}
	return model, nil
}
