package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sheetFromScores(t *testing.T, fields FieldList, raw map[string]RawScore) ScoreSheet {
	t.Helper()
	sheet, err := ValidateScores(fields, raw)
	require.NoError(t, err)
	return sheet
}

func TestTotalRoundsHalfUp(t *testing.T) {
	fields := testFields(t)
	sheet := sheetFromScores(t, fields, map[string]RawScore{
		"field_1": {Score: decimal.RequireFromString("8")},
		"field_2": {Score: decimal.RequireFromString("18")},
	})

	// 26/30 = 86.666... rounds up, not to even.
	require.Equal(t, "86.67", sheet.Total().StringFixed(2))
}

func TestTotalMissingFieldCountsAsZero(t *testing.T) {
	fields, err := ValidateDefinition([]FieldInput{
		{Key: "a", Label: "A", Kind: "number", MaxScore: maxScore("10")},
		{Key: "b", Label: "B", Kind: "number", MaxScore: maxScore("10")},
	})
	require.NoError(t, err)

	sheet := sheetFromScores(t, fields, map[string]RawScore{
		"a": {Score: decimal.RequireFromString("7")},
	})
	require.Equal(t, "35.00", sheet.Total().StringFixed(2))
}

func TestTotalDegenerateSheetIsZero(t *testing.T) {
	require.Equal(t, "0.00", ScoreSheet{}.Total().StringFixed(2))

	// A zero-max sheet cannot come out of ValidateDefinition, but the
	// engine must not divide by it.
	sheet := ScoreSheet{{Key: "a", Label: "A"}}
	require.Equal(t, "0.00", sheet.Total().StringFixed(2))
}

func TestTotalNormalizesIndependentlyOfScale(t *testing.T) {
	small, err := ValidateDefinition([]FieldInput{
		{Key: "a", Label: "A", Kind: "number", MaxScore: maxScore("10")},
	})
	require.NoError(t, err)
	large, err := ValidateDefinition([]FieldInput{
		{Key: "a", Label: "A", Kind: "number", MaxScore: maxScore("12")},
		{Key: "b", Label: "B", Kind: "number", MaxScore: maxScore("8")},
	})
	require.NoError(t, err)

	smallSheet := sheetFromScores(t, small, map[string]RawScore{
		"a": {Score: decimal.RequireFromString("10")},
	})
	largeSheet := sheetFromScores(t, large, map[string]RawScore{
		"a": {Score: decimal.RequireFromString("12")},
		"b": {Score: decimal.RequireFromString("8")},
	})

	require.Equal(t, "100.00", smallSheet.Total().StringFixed(2))
	require.Equal(t, "100.00", largeSheet.Total().StringFixed(2))
}

func TestTotalStaysExactAcrossManyFields(t *testing.T) {
	inputs := make([]FieldInput, 0, 30)
	raw := make(map[string]RawScore, 30)
	third := decimal.RequireFromString("0.1")
	for i := 0; i < 30; i++ {
		key := string(rune('a'+i%26)) + string(rune('0'+i/26))
		inputs = append(inputs, FieldInput{Key: key, Label: "Field " + key, Kind: "number", MaxScore: maxScore("0.3")})
		raw[key] = RawScore{Score: third}
	}
	fields, err := ValidateDefinition(inputs)
	require.NoError(t, err)

	sheet := sheetFromScores(t, fields, raw)

	// 30*0.1 / 30*0.3 with binary floats drifts; decimals do not.
	require.Equal(t, "33.33", sheet.Total().StringFixed(2))
}
