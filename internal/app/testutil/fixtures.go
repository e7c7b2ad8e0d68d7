package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateAudioFiles writes placeholder files under dir and returns their paths in argument order.
// Content is not real audio; only names and extensions matter to collection.
func CreateAudioFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte("fake audio: "+name), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// ResolvedTempDir returns t.TempDir() with symlinks resolved, matching collected paths on macOS.
func ResolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return dir
}
