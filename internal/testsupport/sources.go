package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteSourceList writes lines to path joined by newlines, creating parents.
func WriteSourceList(t testing.TB, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source list %s: %v", path, err)
	}
}
