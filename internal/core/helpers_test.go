package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

// writeFiles creates files under root. Keys are slash-separated relative paths.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// markRepositoryRoot creates a .git directory in dir.
func markRepositoryRoot(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// nestedTree builds three nested index documents. C lists two children,
// B has a one-entry nested reference to C and A references B and C.
// Returns the directory of A.
func nestedTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "A")
	writeFiles(t, root, map[string]string{
		"README.md": "# A\n" +
			"\n" +
			"- [B](B/README.md)\n" +
			"  - [C](B/C/README.md)\n" +
			"    - [C1](B/C/C1/README.md)\n" +
			"  - [D](B/D/README.md)\n",
		"B/README.md": "# B\n" +
			"\n" +
			"- [C](C/README.md)\n" +
			"  - [C1](C/C1/README.md)\n",
		"B/C/README.md": "# C\n" +
			"\n" +
			"- [C1](C1/README.md)\n" +
			"- [C2](C2/README.md)\n",
	})
	markRepositoryRoot(t, root)
	return root
}
