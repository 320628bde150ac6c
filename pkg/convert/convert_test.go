package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/convert"
)

func TestMarkdownPassthroughReturnsBytesVerbatim(t *testing.T) {
	text, meta, err := convert.MarkdownPassthrough{}.Convert("notes.md", []byte("# Title\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "# Title\nbody", text)
	assert.Equal(t, "passthrough", meta.Engine)
	assert.Equal(t, "markdown", meta.Format)
}

func TestSelectDispatchesByExtension(t *testing.T) {
	assert.IsType(t, convert.PDFConverter{}, convert.Select("report.PDF"))
	assert.IsType(t, convert.MarkdownPassthrough{}, convert.Select("notes.md"))
	assert.IsType(t, convert.MarkdownPassthrough{}, convert.Select("notes.txt"))
}

func TestPDFConverterRejectsInvalidData(t *testing.T) {
	_, _, err := convert.PDFConverter{}.Convert("bad.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}
