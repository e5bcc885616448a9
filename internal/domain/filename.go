package domain

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// allowedExts is the extension allow-list for uploaded files.
var allowedExts = map[string]bool{
	".pdf": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename normalizes a client-supplied filename so it is safe to
// use when constructing storage paths and object keys: any directory
// components are stripped (both / and \ separators) and characters outside
// [A-Za-z0-9._-] collapse to underscores. Returns "" when nothing safe
// remains, which callers must treat as a rejection.
func SanitizeFilename(name string) string {
	// Drop any path component a hostile client smuggled in.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	return name
}

// AllowedExtension reports whether the filename carries an allow-listed
// extension (case-insensitive) and returns that extension in lowercase.
func AllowedExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, allowedExts[ext]
}
