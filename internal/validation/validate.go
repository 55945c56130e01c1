// ABOUTME: Validate checks one field against the rule table and returns its sanitized value.
// ABOUTME: ValidateObject checks every field of a record and collects all errors.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harperreed/yoroi/internal/models"
)

var (
	scriptBlock  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Result is the outcome of validating one field.
type Result struct {
	Valid bool
	Error string
	Value any
}

// ObjectResult is the outcome of validating a whole record.
// Sanitized holds the cleaned value of every field that passed.
type ObjectResult struct {
	Valid     bool
	Errors    map[string]string
	Sanitized map[string]any
}

// Validate checks value against the rule registered for field.
// Unknown fields are accepted unchanged.
func Validate(field string, value any) Result {
	rule, ok := rules[field]
	if !ok {
		return Result{Valid: true, Value: value}
	}

	value = indirect(value)
	if isEmpty(value) {
		if rule.Required {
			return Result{Error: messageOr(rule, field+" est requis")}
		}
		return Result{Valid: true, Value: value}
	}

	switch rule.Kind {
	case KindNumber:
		return validateNumber(value, rule)
	case KindString:
		return validateString(value, rule)
	case KindEmail:
		return validateEmail(value, rule)
	case KindDate:
		return validateDate(value, rule)
	default:
		return Result{Valid: true, Value: value}
	}
}

// ValidateObject validates each field of record. It does not stop at the
// first failure.
func ValidateObject(record map[string]any) ObjectResult {
	res := ObjectResult{
		Errors:    make(map[string]string),
		Sanitized: make(map[string]any),
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		r := Validate(k, record[k])
		if !r.Valid {
			res.Errors[k] = r.Error
			continue
		}
		res.Sanitized[k] = r.Value
	}
	res.Valid = len(res.Errors) == 0
	return res
}

// Sanitize strips script blocks and then any remaining markup from s.
func Sanitize(s string) string {
	s = scriptBlock.ReplaceAllString(s, "")
	return anyTag.ReplaceAllString(s, "")
}

// ValidateHydrationAmount checks one hydration entry in millilitres.
// Negative amounts are corrections and are checked by magnitude against the
// amount rule. Value holds the amount as an int.
func ValidateHydrationAmount(value any) Result {
	rule := rules["amount"]
	n, ok := toFloat(indirect(value))
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return Result{Error: messageOr(rule, "Nombre invalide")}
	}
	if n != math.Trunc(n) {
		return Result{Error: "La quantité doit être un nombre entier de ml"}
	}
	if r := validateNumber(math.Abs(n), rule); !r.Valid {
		return r
	}
	return Result{Valid: true, Value: int(n)}
}

func validateNumber(value any, rule Rule) Result {
	n, ok := toFloat(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return Result{Error: messageOr(rule, "Nombre invalide")}
	}
	if rule.Min != nil && n < *rule.Min {
		return Result{Error: messageOr(rule, fmt.Sprintf("Minimum: %g", *rule.Min))}
	}
	if rule.Max != nil && n > *rule.Max {
		return Result{Error: messageOr(rule, fmt.Sprintf("Maximum: %g", *rule.Max))}
	}
	return Result{Valid: true, Value: n}
}

func validateString(value any, rule Rule) Result {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)

	if rule.MinLength > 0 && n < rule.MinLength {
		return Result{Error: messageOr(rule, fmt.Sprintf("Minimum %d caractères", rule.MinLength))}
	}
	if rule.MaxLength > 0 && n > rule.MaxLength {
		return Result{Error: messageOr(rule, fmt.Sprintf("Maximum %d caractères", rule.MaxLength))}
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
		return Result{Error: messageOr(rule, "Format invalide")}
	}
	return Result{Valid: true, Value: Sanitize(s)}
}

func validateEmail(value any, rule Rule) Result {
	s, ok := value.(string)
	if !ok {
		return Result{Error: messageOr(rule, "Email invalide")}
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailPattern.MatchString(s) {
		return Result{Error: messageOr(rule, "Email invalide")}
	}
	return Result{Valid: true, Value: s}
}

// validateDate accepts a calendar day or an RFC 3339 timestamp and
// normalizes it to a calendar day.
func validateDate(value any, rule Rule) Result {
	switch v := value.(type) {
	case time.Time:
		return Result{Valid: true, Value: v.Format(models.DateLayout)}
	case string:
		s := strings.TrimSpace(v)
		if models.ValidDate(s) {
			return Result{Valid: true, Value: s}
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return Result{Valid: true, Value: t.Format(models.DateLayout)}
		}
	}
	return Result{Error: messageOr(rule, "Date invalide")}
}

// toFloat accepts Go numeric kinds, json.Number and numeric strings.
// Booleans are never numbers.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case bool:
		return 0, false
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// indirect dereferences pointers; a nil pointer becomes nil.
func indirect(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func messageOr(rule Rule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}
