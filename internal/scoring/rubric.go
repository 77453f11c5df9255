package scoring

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FieldInput is the wire-level form of a rubric field: a list entry
// carrying its own key. The pointer max score distinguishes an absent
// attribute from an explicit zero so both can be reported precisely.
type FieldInput struct {
	Key      string
	Label    string
	Kind     string
	MaxScore *decimal.Decimal
}

// ValidateDefinition checks a candidate rubric's structural
// correctness and normalizes it into the canonical FieldList. It is
// pure and idempotent; uniqueness of the rubric name against the
// store is the caller's concern.
func ValidateDefinition(fields []FieldInput) (FieldList, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyFields
	}

	normalized := make(FieldList, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for i, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return nil, MissingAttributeError{Index: i, Attribute: "key"}
		}
		if strings.TrimSpace(field.Label) == "" {
			return nil, MissingAttributeError{Index: i, Attribute: "label"}
		}
		if strings.TrimSpace(field.Kind) == "" {
			return nil, MissingAttributeError{Index: i, Attribute: "type"}
		}
		if field.MaxScore == nil {
			return nil, MissingAttributeError{Index: i, Attribute: "max_score"}
		}

		kind := FieldKind(strings.ToLower(strings.TrimSpace(field.Kind)))
		if kind != FieldKindNumber && kind != FieldKindBoolean {
			return nil, InvalidKindError{Key: key, Kind: field.Kind}
		}

		max := *field.MaxScore
		if max.Sign() <= 0 {
			return nil, InvalidMaxScoreError{Key: key, MaxScore: max}
		}

		if _, dup := seen[key]; dup {
			return nil, DuplicateKeyError{Key: key}
		}
		seen[key] = struct{}{}

		normalized = append(normalized, FieldSpec{
			Key:      key,
			Label:    strings.TrimSpace(field.Label),
			Kind:     kind,
			MaxScore: max,
		})
	}

	return normalized, nil
}
