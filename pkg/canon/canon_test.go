package canon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/pkg/canon"
	"github.com/entityfusion/fusion/pkg/document"
)

func TestCanonicalizeGroupsOrgMentionsAndPicksLongestSurface(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "Acme", Kind: document.KindOrg, Span: document.Span{Start: 0, End: 4}},
		{Surface: "Acme Corp", Kind: document.KindOrg, Span: document.Span{Start: 20, End: 29}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "Acme", entities[0].Canonical) // legal suffix stripped
	assert.Equal(t, 2, entities[0].Count)
	assert.Contains(t, entities[0].Aliases, "Acme")
	assert.Contains(t, entities[0].Aliases, "Acme Corp")
}

func TestCanonicalizeGovernmentOrgGetsGovPrefix(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "Department of Transportation", Kind: document.KindOrg, Span: document.Span{Start: 0, End: 10}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "gov1", entities[0].ID)
	assert.Equal(t, true, entities[0].Metadata["government"])
}

func TestCanonicalizeUnparsableDateKeepsEntityWithError(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "not-a-real-date", Kind: document.KindDate, Span: document.Span{Start: 0, End: 10}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Contains(t, entities[0].Metadata, "parseError")
}

func TestCanonicalizeEmailLowercases(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "  Hello@Example.COM ", Kind: document.KindEmail, Span: document.Span{Start: 0, End: 5}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "hello@example.com", entities[0].Canonical)
}

func TestCanonicalizeAssignsStableSequentialIDs(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "Acme", Kind: document.KindOrg, Span: document.Span{Start: 0, End: 4}},
		{Surface: "Globex", Kind: document.KindOrg, Span: document.Span{Start: 10, End: 16}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 2)
	assert.ElementsMatch(t, []string{"org1", "org2"}, []string{entities[0].ID, entities[1].ID})
}

func TestCanonicalizeMoneyAppliesMagnitudeWordAndFormats(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "$2.5 million", Kind: document.KindMoney, Span: document.Span{Start: 0, End: 12}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "2500000", entities[0].Canonical)
	assert.Equal(t, "2500000", entities[0].Metadata["amount"])
	assert.Equal(t, "USD", entities[0].Metadata["currency"])
	assert.Equal(t, "million", entities[0].Metadata["magnitude"])
	assert.Equal(t, int64(1_000_000), entities[0].Metadata["multiplier"])
	originalValue, ok := entities[0].Metadata["original_value"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, originalValue.Equal(decimal.NewFromFloat(2.5)))
	assert.Contains(t, entities[0].Metadata["display"], "2,500,000")
}

func TestCanonicalizeMoneyUnparsableKeepsEntityWithError(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "a lot of money", Kind: document.KindMoney, Span: document.Span{Start: 0, End: 10}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Contains(t, entities[0].Metadata, "parseError")
}

func TestCanonicalizeMeasurementConvertsToSIBaseUnit(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "6 feet", Kind: document.KindMeasurement, Span: document.Span{Start: 0, End: 6}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "length", entities[0].Metadata["category"])
	assert.Equal(t, "m", entities[0].Metadata["si_unit"])
	assert.Equal(t, "1.8288", entities[0].Canonical)

	originalValue, ok := entities[0].Metadata["original_value"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, originalValue.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "feet", entities[0].Metadata["original_unit"])

	siValue, ok := entities[0].Metadata["si_value"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, siValue.Equal(decimal.NewFromFloat(1.8288)))
}

func TestCanonicalizeDateRangeProducesStartEndAndDuration(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "August 15-20, 2024", Kind: document.KindDate, Span: document.Span{Start: 0, End: 18}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "2024-08-15 to 2024-08-20", entities[0].Canonical)
	assert.Equal(t, "2024-08-15", entities[0].Metadata["start_date"])
	assert.Equal(t, "2024-08-20", entities[0].Metadata["end_date"])
	assert.Equal(t, 6, entities[0].Metadata["duration_days"])
}

func TestCanonicalizePhoneParsesE164AndTollFreeType(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "800-555-1234", Kind: document.KindPhone, Span: document.Span{Start: 0, End: 12}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "+18005551234", entities[0].Canonical)
	assert.Equal(t, "(800) 555-1234", entities[0].Metadata["national_format"])
	assert.Equal(t, "toll_free", entities[0].Metadata["phone_type"])
}

func TestCanonicalizeRegulationParsesCFRCitation(t *testing.T) {
	mentions := []document.Mention{
		{Surface: "29 CFR 1910.95", Kind: document.KindRegulation, Span: document.Span{Start: 0, End: 14}},
	}
	entities := canon.Canonicalize(mentions, canon.DefaultConfig())
	require.Len(t, entities, 1)
	assert.Equal(t, "CFR-29-1910-95", entities[0].Canonical)
	assert.Equal(t, "Department of Labor", entities[0].Metadata["authority"])
	assert.Equal(t, "CFR", entities[0].Metadata["regulation_type"])
}
