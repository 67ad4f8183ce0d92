package cases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte("cases: []\n"), 0644))
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		"suites/regression.yaml",
		"suites/smoke.yml",
		"sheets/IT3040_TestCases.xlsx",
		"sheets/~$IT3040_TestCases.xlsx",
		"node_modules/pkg/cases.yaml",
		".git/config.yaml",
		"README.md",
	)

	scanner := NewScanner([]string{"node_modules"})

	t.Run("finds fixture files sorted by path", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(tmpDir, "sheets/IT3040_TestCases.xlsx"),
			filepath.Join(tmpDir, "suites/regression.yaml"),
			filepath.Join(tmpDir, "suites/smoke.yml"),
		}, results)
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		assert.Error(t, err)
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "README.md"))
		assert.Error(t, err)
	})
}
