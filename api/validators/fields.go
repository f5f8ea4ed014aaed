package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// FormValue returns the trimmed form field.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// OptionalString returns nil for an empty form field.
func OptionalString(r *http.Request, key string) *string {
	value := FormValue(r, key)
	if value == "" {
		return nil
	}
	return &value
}

// OptionalDate parses a yyyy-mm-dd form field, nil when empty.
func OptionalDate(r *http.Request, key string) (*time.Time, error) {
	raw := FormValue(r, key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a valid date").WithDetails(map[string]any{"field": key})
	}
	return &parsed, nil
}

// RequiredDate parses a yyyy-mm-dd form field and rejects empty values.
func RequiredDate(r *http.Request, key string) (time.Time, error) {
	parsed, err := OptionalDate(r, key)
	if err != nil {
		return time.Time{}, err
	}
	if parsed == nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, key+" is required").WithDetails(map[string]any{"field": key})
	}
	return *parsed, nil
}

// OptionalFloat parses a numeric form field, nil when empty.
func OptionalFloat(r *http.Request, key string) (*float64, error) {
	raw := FormValue(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, key+" must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// OptionalDecimal parses a money form field, nil when empty.
func OptionalDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := FormValue(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a valid amount").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// RequiredDecimal parses a money form field and rejects empty values.
func RequiredDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	value, err := OptionalDecimal(r, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if value == nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, key+" is required").WithDetails(map[string]any{"field": key})
	}
	return *value, nil
}

// RequiredInt parses an integer form field and rejects empty values.
func RequiredInt(r *http.Request, key string) (int, error) {
	raw := FormValue(r, key)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" is required").WithDetails(map[string]any{"field": key})
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be an integer").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// FormUint parses an identifier form field.
func FormUint(r *http.Request, key string) (uint, error) {
	raw := FormValue(r, key)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a valid id").WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}

// IDParam parses a positive integer route parameter.
func IDParam(r *http.Request, key string) (uint, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "invalid identifier")
	}
	return uint(value), nil
}

// ParseQueryInt parses a bounded integer query parameter with a default.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
