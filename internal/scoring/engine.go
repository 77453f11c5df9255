package scoring

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Total computes the normalized percentage score for the sheet:
// the sum of awarded points over the sum of achievable points,
// scaled to 100 and rounded half-up to two decimal places. All
// arithmetic stays in exact decimals; 26/30 rounds to 86.67.
//
// A sheet whose maxima sum to zero is unreachable through
// ValidateDefinition, but returns zero rather than dividing by it.
func (s ScoreSheet) Total() decimal.Decimal {
	totalPoints := decimal.Zero
	maxPoints := decimal.Zero

	for _, entry := range s {
		totalPoints = totalPoints.Add(entry.Score)
		maxPoints = maxPoints.Add(entry.MaxScore)
	}

	if maxPoints.Sign() <= 0 {
		return decimal.Zero.Round(2)
	}

	return totalPoints.Div(maxPoints).Mul(hundred).Round(2)
}
