package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"scrollscene/internal/download"
)

// Google Fonts families are folders under ofl/ in the google/fonts repository.
const (
	DefaultAPIBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

// Remote looks fonts up in the Google Fonts repository. The zero value talks to GitHub.
type Remote struct {
	HTTP *http.Client
	// APIBase lists a family folder; RawPrefix is the only host prefix a download
	// URL may have.
	APIBase   string
	RawPrefix string
}

type repoFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Folders returns the folder names a family may live under: "Open Sans" gives
// "opensans" and "open-sans".
func Folders(family string) []string {
	lower := strings.ToLower(strings.TrimSpace(family))
	if lower == "" {
		return nil
	}
	joined := strings.ReplaceAll(lower, " ", "")
	out := []string{joined}
	if hyphen := strings.ReplaceAll(lower, " ", "-"); hyphen != joined {
		out = append(out, hyphen)
	}
	return out
}

func (r *Remote) client() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (r *Remote) apiBase() string {
	if r.APIBase != "" {
		return r.APIBase
	}
	return DefaultAPIBase
}

func (r *Remote) rawPrefix() string {
	if r.RawPrefix != "" {
		return r.RawPrefix
	}
	return DefaultRawPrefix
}

// URL returns the download URL of an upright face of family, trying every folder
// name from Folders.
func (r *Remote) URL(ctx context.Context, family string) (string, error) {
	folders := Folders(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var lastErr error
	for _, folder := range folders {
		u, err := r.folderURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (r *Remote) folderURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.apiBase()+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := r.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fonts: %q not found on Google Fonts", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: %s: HTTP %d", folder, resp.StatusCode)
	}
	var files []repoFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}

	var italic string
	for _, f := range files {
		if f.Type != "file" || !strings.HasPrefix(f.DownloadURL, r.rawPrefix()) || !isFont(f.Name) {
			continue
		}
		if strings.Contains(strings.ToLower(f.Name), "italic") {
			if italic == "" {
				italic = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if italic != "" {
		return italic, nil
	}
	return "", fmt.Errorf("fonts: no .ttf/.otf file for %q", folder)
}

// Fetch downloads family into dir/<folder> and returns the saved path. A family
// already present under dir is not downloaded again.
func (r *Remote) Fetch(ctx context.Context, family, dir string) (string, error) {
	if path, err := Find(family, dir); err == nil {
		return path, nil
	}
	u, err := r.URL(ctx, family)
	if err != nil {
		return "", err
	}
	folders := Folders(family)
	c := &download.Client{HTTP: r.client()}
	return c.Download(ctx, u, filepath.Join(dir, folders[0]), nil)
}
