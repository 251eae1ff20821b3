// Package fonts finds font files under assets/fonts and fetches missing families
// from the Google Fonts repository.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories, so fonts are found whether run from
// the repo root or from cmd/scrollscene.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns paths, relative to dir and with forward slashes, of all font
// files under dir. A missing dir yields no fonts.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Find returns the full path of the font to use for page text. name, when set, must
// appear in the font's path (case-insensitive, spaces ignored); among candidates a
// "Regular" face wins. Returns os.ErrNotExist when nothing matches.
func Find(name string, dirs ...string) (string, error) {
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	want := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	var first string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			lower := strings.ToLower(rel)
			if want != "" && !strings.Contains(strings.ReplaceAll(lower, " ", ""), want) {
				continue
			}
			full := filepath.Join(base, filepath.FromSlash(rel))
			if strings.Contains(lower, "regular") {
				return full, nil
			}
			if first == "" {
				first = full
			}
		}
	}
	if first == "" {
		return "", os.ErrNotExist
	}
	return first, nil
}
