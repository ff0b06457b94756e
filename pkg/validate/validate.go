// Package validate provides struct-tag validation for request bodies.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lt=N                number < N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    ProductID int `json:"product_id" validate:"required,gte=1"`
//	    Quantity  int `json:"quantity"   validate:"integer"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	raw := fmt.Sprintf("%v", v.Interface())

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		if !compare(v, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "max":
		if !compare(v, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "gt":
		if !compareNumber(v, param, func(a, b float64) bool { return a > b }) {
			return fmt.Sprintf("The %s field must be greater than %s.", field, param)
		}

	case "gte":
		if !compareNumber(v, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lt":
		if !compareNumber(v, param, func(a, b float64) bool { return a < b }) {
			return fmt.Sprintf("The %s field must be less than %s.", field, param)
		}

	case "lte":
		if !compareNumber(v, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "in":
		options := strings.Split(param, ",")
		for _, opt := range options {
			if raw == strings.TrimSpace(opt) {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", field, param)
	}

	return ""
}

// compare applies op to the numeric value of v (number kinds) or its length
// (strings), against the rule parameter. Used by min/max.
func compare(v reflect.Value, param string, op func(a, b float64) bool) bool {
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}

	switch v.Kind() {
	case reflect.String:
		return op(float64(len(v.String())), bound)
	default:
		return compareNumber(v, param, op)
	}
}

func compareNumber(v reflect.Value, param string, op func(a, b float64) bool) bool {
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return op(float64(v.Int()), bound)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return op(float64(v.Uint()), bound)
	case reflect.Float32, reflect.Float64:
		return op(v.Float(), bound)
	case reflect.String:
		n, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return false
		}
		return op(n, bound)
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
