package handler

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"
	"strings"

	domainerrors "tasker/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// partialUpdate is a JSON object whose keys were checked against an allowlist.
type partialUpdate map[string]json.RawMessage

// bindPartialUpdate decodes the body as an object and rejects it when any key
// is outside allowed. Nothing is applied on rejection.
func bindPartialUpdate(c echo.Context, allowed []string) (partialUpdate, error) {
	var fields partialUpdate
	if err := c.Echo().JSONSerializer.Deserialize(c, &fields); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request body must be a JSON object")
	}

	var unknown []string
	for key := range fields {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)

		return nil, errors.WithStack(domainerrors.ErrInvalidUpdates.WithDetails("unknown fields: " + strings.Join(unknown, ", ")))
	}

	return fields, nil
}

// optionalField decodes key when present. A null or wrongly typed value is a
// validation failure.
func optionalField[T any](fields partialUpdate, key string) (*T, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}

	var value T
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &value) != nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(key + ": has an invalid type"))
	}

	return &value, nil
}
