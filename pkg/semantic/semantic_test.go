package semantic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/semantic"
)

func TestNoOpExtractReturnsEmptyResult(t *testing.T) {
	var extractor semantic.Extractor = semantic.NoOp{}
	result, err := extractor.Extract(context.Background(), "some clean body text")
	require.NoError(t, err)
	assert.Empty(t, result.Facts)
	assert.Empty(t, result.Rules)
	assert.Empty(t, result.Relationships)
}
