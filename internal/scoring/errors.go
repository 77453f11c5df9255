package scoring

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrEmptyFields indicates a rubric definition arrived without any fields.
var ErrEmptyFields = errors.New("rubric fields must be a non-empty list")

// MissingAttributeError reports a rubric field entry that lacks a required attribute.
type MissingAttributeError struct {
	Index     int
	Attribute string
}

func (e MissingAttributeError) Error() string {
	return fmt.Sprintf("rubric field %d: missing required attribute %q", e.Index, e.Attribute)
}

// InvalidKindError reports a rubric field with a type outside number/boolean.
type InvalidKindError struct {
	Key  string
	Kind string
}

func (e InvalidKindError) Error() string {
	return fmt.Sprintf("rubric field %q: unsupported type %q", e.Key, e.Kind)
}

// InvalidMaxScoreError reports a rubric field whose max_score is not strictly positive.
type InvalidMaxScoreError struct {
	Key      string
	MaxScore decimal.Decimal
}

func (e InvalidMaxScoreError) Error() string {
	return fmt.Sprintf("rubric field %q: max_score must be a positive number, got %s", e.Key, e.MaxScore)
}

// DuplicateKeyError reports a rubric definition containing the same field key twice.
type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("rubric field %q: duplicate key", e.Key)
}

// UnknownFieldError reports a submitted score keyed by a field the rubric does not declare.
type UnknownFieldError struct {
	Key string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("score %q: field not present in rubric", e.Key)
}

// ScoreOutOfRangeError reports a submitted score outside [0, max_score].
type ScoreOutOfRangeError struct {
	Key      string
	Score    decimal.Decimal
	MaxScore decimal.Decimal
}

func (e ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score %q: %s is outside the allowed range [0, %s]", e.Key, e.Score, e.MaxScore)
}
