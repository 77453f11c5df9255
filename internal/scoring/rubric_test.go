package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func maxScore(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestValidateDefinitionNormalizesFields(t *testing.T) {
	fields, err := ValidateDefinition([]FieldInput{
		{Key: "greeting", Label: "Opening and greeting", Kind: "number", MaxScore: maxScore("5")},
		{Key: "closing", Label: "Closing announcement", Kind: "Boolean", MaxScore: maxScore("10")},
	})
	require.NoError(t, err)
	require.Len(t, fields, 2)

	require.Equal(t, "greeting", fields[0].Key, "declared order must be preserved")
	require.Equal(t, FieldKindBoolean, fields[1].Kind)
	require.True(t, fields.MaxPoints().Equal(decimal.RequireFromString("15")))

	spec, ok := fields.Lookup("closing")
	require.True(t, ok)
	require.Equal(t, "Closing announcement", spec.Label)
}

func TestValidateDefinitionRejectsEmptyList(t *testing.T) {
	_, err := ValidateDefinition(nil)
	require.ErrorIs(t, err, ErrEmptyFields)

	_, err = ValidateDefinition([]FieldInput{})
	require.ErrorIs(t, err, ErrEmptyFields)
}

func TestValidateDefinitionRejectsMissingAttributes(t *testing.T) {
	cases := []struct {
		name      string
		field     FieldInput
		attribute string
	}{
		{"missing key", FieldInput{Label: "Empathy", Kind: "number", MaxScore: maxScore("5")}, "key"},
		{"missing label", FieldInput{Key: "empathy", Kind: "number", MaxScore: maxScore("5")}, "label"},
		{"missing type", FieldInput{Key: "empathy", Label: "Empathy", MaxScore: maxScore("5")}, "type"},
		{"missing max_score", FieldInput{Key: "empathy", Label: "Empathy", Kind: "number"}, "max_score"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateDefinition([]FieldInput{tc.field})
			var missing MissingAttributeError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, tc.attribute, missing.Attribute)
			require.Equal(t, 0, missing.Index)
		})
	}
}

func TestValidateDefinitionRejectsNonPositiveMaxScore(t *testing.T) {
	for _, value := range []string{"0", "-3", "-0.01"} {
		_, err := ValidateDefinition([]FieldInput{
			{Key: "tone", Label: "Tone of voice", Kind: "number", MaxScore: maxScore(value)},
		})
		var invalid InvalidMaxScoreError
		require.ErrorAs(t, err, &invalid, "max_score %s must be rejected", value)
		require.Equal(t, "tone", invalid.Key)
	}
}

func TestValidateDefinitionRejectsUnsupportedKind(t *testing.T) {
	_, err := ValidateDefinition([]FieldInput{
		{Key: "tone", Label: "Tone of voice", Kind: "percentage", MaxScore: maxScore("5")},
	})
	var invalid InvalidKindError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "percentage", invalid.Kind)
}

func TestValidateDefinitionRejectsDuplicateKeys(t *testing.T) {
	_, err := ValidateDefinition([]FieldInput{
		{Key: "tone", Label: "Tone of voice", Kind: "number", MaxScore: maxScore("5")},
		{Key: "tone", Label: "Tone again", Kind: "number", MaxScore: maxScore("10")},
	})
	var dup DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "tone", dup.Key)
}

func TestValidateDefinitionIsIdempotent(t *testing.T) {
	input := []FieldInput{
		{Key: "greeting", Label: "Opening and greeting", Kind: "number", MaxScore: maxScore("5")},
		{Key: "empathy", Label: "Empathy", Kind: "number", MaxScore: maxScore("15")},
	}

	first, err := ValidateDefinition(input)
	require.NoError(t, err)
	second, err := ValidateDefinition(input)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
