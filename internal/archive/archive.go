// Package archive unpacks zipped model bundles (a model file plus its textures, the
// layout most model marketplaces ship) and locates the model inside.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoModel is returned by FindModel when a directory holds no loadable model.
var ErrNoModel = errors.New("archive: no model file found")

// modelRank orders model formats by preference; lower wins.
var modelRank = map[string]int{".glb": 0, ".gltf": 1, ".obj": 2, ".iqm": 3, ".m3d": 4, ".vox": 5}

// IsZip reports whether path names a zip file.
func IsZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Unzip extracts zipPath into destDir, preserving directory structure and skipping
// entries that would escape destDir. It returns the extracted file paths.
func Unzip(ctx context.Context, zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()

	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return extracted, fmt.Errorf("unzip: %w", err)
		}
		dest := filepath.Join(absDir, f.Name)
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return extracted, fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return extracted, fmt.Errorf("unzip: %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// FindModel walks dir and returns the best model file: preferred format first, then
// the shallowest path, then lexical order.
func FindModel(dir string) (string, error) {
	var found []string
	err := filepath.Walk(filepath.Clean(dir), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, ok := modelRank[strings.ToLower(filepath.Ext(path))]; ok {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("find model: %w", err)
	}
	if len(found) == 0 {
		return "", ErrNoModel
	}
	sort.Slice(found, func(i, j int) bool {
		ri := modelRank[strings.ToLower(filepath.Ext(found[i]))]
		rj := modelRank[strings.ToLower(filepath.Ext(found[j]))]
		if ri != rj {
			return ri < rj
		}
		di := strings.Count(filepath.ToSlash(found[i]), "/")
		dj := strings.Count(filepath.ToSlash(found[j]), "/")
		if di != dj {
			return di < dj
		}
		return found[i] < found[j]
	})
	return found[0], nil
}
