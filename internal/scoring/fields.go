// Package scoring implements the rubric validation and score
// normalization core: admin-defined evaluation forms are validated
// into a canonical ordered field list, submitted raw scores are
// checked against the declared maxima, and the final percentage is
// computed in exact decimal arithmetic.
package scoring

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Scores travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// FieldKind enumerates the supported rubric field types.
type FieldKind string

const (
	// FieldKindNumber is a numeric field scored between 0 and its max_score.
	FieldKindNumber FieldKind = "number"
	// FieldKindBoolean is a yes/no field worth either 0 or its max_score.
	FieldKindBoolean FieldKind = "boolean"
)

// FieldSpec is one scorable rubric dimension.
type FieldSpec struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Kind     FieldKind       `json:"type"`
	MaxScore decimal.Decimal `json:"max_score"`
}

// FieldList is the canonical stored rubric schema: an ordered
// collection of field specs addressed by key. Declared order is
// preserved so evaluation forms render the way admins built them.
type FieldList []FieldSpec

// Lookup returns the spec for the given key.
func (l FieldList) Lookup(key string) (FieldSpec, bool) {
	for _, field := range l {
		if field.Key == key {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// MaxPoints sums the maximum achievable score across all fields.
func (l FieldList) MaxPoints() decimal.Decimal {
	total := decimal.Zero
	for _, field := range l {
		total = total.Add(field.MaxScore)
	}
	return total
}

// Value serializes the field list as JSON for database storage.
func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rubric fields: %w", err)
	}
	return string(data), nil
}

// Scan restores the field list from its JSON database representation.
func (l *FieldList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported rubric fields column type %T", value)
	}

	return json.Unmarshal(data, l)
}
