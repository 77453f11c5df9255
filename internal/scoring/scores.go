package scoring

import "github.com/shopspring/decimal"

// RawScore is one submitted per-field value.
type RawScore struct {
	Score decimal.Decimal `json:"score"`
}

// ScoreEntry pairs a submitted score with the rubric field it answers.
// Entries keep the label and maximum alongside the score so stored
// evaluations remain auditable even if the rubric changes later.
type ScoreEntry struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Score    decimal.Decimal `json:"score"`
	MaxScore decimal.Decimal `json:"max_score"`
}

// ScoreSheet holds the validated scores for every rubric field, in
// rubric order. Fields the evaluator did not submit carry a zero.
type ScoreSheet []ScoreEntry

// ValidateScores checks submitted raw scores against the rubric's
// declared fields and maxima and expands them into a full score
// sheet. Unknown keys and out-of-range values reject the whole
// submission; rubric fields missing from the input default to zero.
func ValidateScores(fields FieldList, raw map[string]RawScore) (ScoreSheet, error) {
	for key := range raw {
		if _, ok := fields.Lookup(key); !ok {
			return nil, UnknownFieldError{Key: key}
		}
	}

	sheet := make(ScoreSheet, 0, len(fields))
	for _, field := range fields {
		score := decimal.Zero
		if submitted, ok := raw[field.Key]; ok {
			score = submitted.Score
		}

		if score.Sign() < 0 || score.GreaterThan(field.MaxScore) {
			return nil, ScoreOutOfRangeError{Key: field.Key, Score: score, MaxScore: field.MaxScore}
		}

		sheet = append(sheet, ScoreEntry{
			Key:      field.Key,
			Label:    field.Label,
			Score:    score,
			MaxScore: field.MaxScore,
		})
	}

	return sheet, nil
}
