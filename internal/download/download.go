// Package download fetches remote assets over HTTP into a local cache directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const userAgent = "scrollscene/1.0"

// DefaultTimeout bounds a whole download, body included.
const DefaultTimeout = 2 * time.Minute

// Progress is called as bytes arrive. total is -1 when the server did not send a length.
type Progress func(loaded, total int64)

// Client downloads assets. The zero value uses a client with DefaultTimeout.
type Client struct {
	HTTP *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c != nil && c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// Download fetches url into destDir and returns the saved path. The file name comes
// from Content-Disposition or the URL path; the extension from the URL or
// Content-Type. A partial file is removed on error.
func (c *Client) Download(ctx context.Context, url, destDir string, progress Progress) (savedPath string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}

	ext := extensionFromURL(url)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(url)
	}
	name = sanitizeFilename(name)
	if ext != "" && !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(destDir, name)
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	body := io.Reader(resp.Body)
	if progress != nil {
		body = &countingReader{r: resp.Body, total: resp.ContentLength, fn: progress}
	}
	_, copyErr := io.Copy(out, body)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download: %w", copyErr)
	}
	return savedPath, nil
}

type countingReader struct {
	r      io.Reader
	loaded int64
	total  int64
	fn     Progress
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.loaded += int64(n)
		c.fn(c.loaded, c.total)
	}
	return n, err
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

// assetExts are the extensions kept from a URL as-is.
var assetExts = map[string]bool{
	".glb": true, ".gltf": true, ".obj": true, ".iqm": true, ".vox": true, ".m3d": true,
	".zip": true, ".png": true, ".jpg": true, ".jpeg": true, ".ttf": true, ".otf": true,
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch ct {
	case "model/gltf-binary":
		return ".glb"
	case "model/gltf+json":
		return ".gltf"
	case "model/obj":
		return ".obj"
	case "application/zip", "application/x-zip-compressed":
		return ".zip"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "font/ttf":
		return ".ttf"
	case "font/otf":
		return ".otf"
	}
	return ""
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

func extensionFromURL(url string) string {
	ext := strings.ToLower(filepath.Ext(stripQuery(url)))
	if assetExts[ext] {
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	base := filepath.Base(stripQuery(url))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "asset"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
