package config

import (
	"errors"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

// evalCondition evaluates an expanded onlyIf expression: "a == b", "a != b" or a boolean.
// An empty expression is true.
func evalCondition(expr string) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true, nil
	}
	if l, r, ok := strings.Cut(expr, "!="); ok {
		return strings.TrimSpace(l) != strings.TrimSpace(r), nil
	}
	if l, r, ok := strings.Cut(expr, "=="); ok {
		return strings.TrimSpace(l) == strings.TrimSpace(r), nil
	}
	v, err := strconv.ParseBool(expr)
	if err != nil {
		return false, errors.Join(domain.ErrInvalidCondition, zerr.With(zerr.Wrap(err, "condition is not a boolean"), "condition", expr))
	}
	return v, nil
}
