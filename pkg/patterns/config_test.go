package patterns_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/patterns"
)

func TestLoadFileAndOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	contents := `
ticket:
  jira_key:
    pattern: "[A-Z]{2,10}-[0-9]+"
    description: "Jira-style issue key"
    priority: high
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	extra, err := patterns.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, extra, 1)
	assert.Equal(t, "jira_key", extra[0].Name)
	assert.Equal(t, "ticket", extra[0].Category)
	assert.Equal(t, patterns.PriorityHigh, extra[0].Priority)

	reg := patterns.BuildDefaultWithOverlay(extra)
	require.Empty(t, reg.Failures)
	assert.Contains(t, reg.Categories(), "ticket")

	matches := reg.Scan("See ENG-1234 for details.", "ticket")
	require.Len(t, matches, 1)
	assert.Equal(t, "ENG-1234", matches[0].SurfaceText)
}

func TestLoadFileMissingPathErrors(t *testing.T) {
	_, err := patterns.LoadFile("/nonexistent/patterns.yaml")
	assert.Error(t, err)
}
