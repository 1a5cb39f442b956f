package config

import (
	"os"
	"path/filepath"
	"strings"
)

// The service owns three directories: generated blog HTML, resume uploads
// and the frontend project root. The first two default to subdirectories
// next to the binary so a shared-hosting deployment can run in place; the
// web dir has no sane default and stays empty unless configured.

// StaticDir is where pre-rendered blog pages and the index.html template live.
func (c *AppConfig) StaticDir() string {
	if c == nil {
		return anchoredDir("", "static")
	}
	return anchoredDir(c.Paths.Static, "static")
}

// UploadDir stores submitted resumes.
func (c *AppConfig) UploadDir() string {
	if c == nil {
		return anchoredDir("", "uploads")
	}
	return anchoredDir(c.Paths.Uploads, "uploads")
}

// WebDir is the frontend project root whose vite.config.ts and .htaccess
// carry generated blog route blocks. Empty means those files are skipped.
func (c *AppConfig) WebDir() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Paths.Web)
}

// anchoredDir resolves a configured directory, falling back to a subdir
// name and anchoring relative paths at the binary's directory.
func anchoredDir(raw, fallback string) string {
	dir := strings.TrimSpace(raw)
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(binaryDir(), dir))
}

func binaryDir() string {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil && wd != "" {
			return wd
		}
		return "."
	}
	if resolved, resolveErr := filepath.EvalSymlinks(exe); resolveErr == nil && resolved != "" {
		exe = resolved
	}
	return filepath.Dir(exe)
}
