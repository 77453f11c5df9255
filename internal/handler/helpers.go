package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/faikerkan/QuailtyHUB/internal/scoring"
	"github.com/faikerkan/QuailtyHUB/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	result := uint(parsed)
	return &result, nil
}

// sendScoringError maps rubric and score validation failures onto 400
// responses with a machine-readable detail block. Returns false when
// the error is not a scoring one.
func sendScoringError(c *fiber.Ctx, err error) (bool, error) {
	var (
		missing    scoring.MissingAttributeError
		kind       scoring.InvalidKindError
		maxScore   scoring.InvalidMaxScoreError
		duplicate  scoring.DuplicateKeyError
		unknown    scoring.UnknownFieldError
		outOfRange scoring.ScoreOutOfRangeError
	)

	switch {
	case errors.Is(err, scoring.ErrEmptyFields):
		return true, utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &missing):
		return true, utils.SendErrorWithDetails(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"index": missing.Index, "attribute": missing.Attribute})
	case errors.As(err, &kind):
		return true, utils.SendErrorWithDetails(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"key": kind.Key})
	case errors.As(err, &maxScore):
		return true, utils.SendErrorWithDetails(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"key": maxScore.Key})
	case errors.As(err, &duplicate):
		return true, utils.SendErrorWithDetails(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"key": duplicate.Key})
	case errors.As(err, &unknown):
		return true, utils.SendErrorWithDetails(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"key": unknown.Key})
	case errors.As(err, &outOfRange):
		return true, utils.SendErrorWithDetails(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"key": outOfRange.Key})
	}

	return false, nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
