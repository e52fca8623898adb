// Package fileutil provides shared file-handling constants and helpers for
// materializing generated output.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OwnerReadWrite is the file permission mode for files containing potentially
// sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for generated source code files
// intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the directory permission mode for generated output
// directories.
const DirReadableByAll os.FileMode = 0o755

// SafeJoin joins rel onto root and verifies the result stays inside root.
// It guards against path traversal via ".." segments in generated names.
func SafeJoin(root, rel string) (string, error) {
	joined := filepath.Join(root, rel)
	cleanRoot := filepath.Clean(root)
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes output root %q", rel, root)
	}
	return joined, nil
}
