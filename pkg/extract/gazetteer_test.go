package extract_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/extract"
)

func TestLoadGazetteersEmptyDirYieldsEmptySets(t *testing.T) {
	automaton, err := extract.LoadGazetteers("")
	require.NoError(t, err)
	require.NotNil(t, automaton)
	assert.True(t, automaton.HasSet(extract.OrgGazetteerSet))

	matches, _ := automaton.Scan("Acme Corp")
	assert.Empty(t, matches)
}

func TestLoadGazetteersParsesPipeDelimitedAliases(t *testing.T) {
	dir := t.TempDir()
	contents := "# comment line\nAcme Corp|Acme|ACME\n\nGlobex Corporation\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orgs.txt"), []byte(contents), 0o644))

	automaton, err := extract.LoadGazetteers(dir)
	require.NoError(t, err)

	matches, _ := automaton.Scan("Acme Corp works with ACME and Globex Corporation.", extract.OrgGazetteerSet)
	assert.NotEmpty(t, matches)
}

func TestLoadGazetteersMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	_, err := extract.LoadGazetteers(dir)
	assert.NoError(t, err)
}
