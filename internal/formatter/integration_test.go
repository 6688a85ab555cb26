package formatter

import (
	"testing"

	"github.com/mcncl/jsonnorm/internal/normalizer"
	"github.com/mcncl/jsonnorm/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ParserNormalizerFormatter(t *testing.T) {
	// Parser -> Normalizer -> Formatter
	jsonInput := `{
		"users": [
			{"name": "bob", "id": 2, "email": null},
			{"name": "alice", "id": 1, "email": "a@example.com"}
		],
		"version": 3,
		"meta": null
	}`

	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	normalized, err := normalizer.New(normalizer.Options{
		SortKeys:     true,
		SortArraysBy: []string{"id"},
	}).Normalize(doc.Root)
	require.NoError(t, err)

	formatted, err := NewFormatterWithOptions(Options{Indent: DefaultIndent, RemoveNulls: true}).Format(normalized)
	require.NoError(t, err)

	expected := `{
  "users": [
    {
      "email": "a@example.com",
      "id": 1,
      "name": "alice"
    },
    {
      "id": 2,
      "name": "bob"
    }
  ],
  "version": 3
}
`
	assert.Equal(t, expected, string(formatted))
}

func TestIntegration_RoundTripPreservesOrder(t *testing.T) {
	jsonInput := `{"z":1,"a":[3,1,2],"m":{"y":null,"b":"x"}}`

	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	formatted, err := NewFormatterWithOptions(Options{}).Format(normalizer.Normalize(doc.Root, false, nil))
	require.NoError(t, err)

	assert.Equal(t, jsonInput+"\n", string(formatted))
}
