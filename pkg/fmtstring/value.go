package fmtstring

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Displayer is implemented by values that control their own placeholder text.
// It takes precedence over fmt.Stringer.
type Displayer interface {
	DisplayText() string
}

// display renders v for substitution.
//
// Order: Displayer, fmt.Stringer, error, then scalar kinds. nil, typed nil
// pointers and values with no textual form (structs, maps, slices other
// than []byte, funcs, channels) render as "".
func display(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		if s, ok := textOf(rv.Interface()); ok {
			return s
		}
		rv = rv.Elem()
	}

	if rv.CanInterface() {
		if s, ok := textOf(rv.Interface()); ok {
			return s
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
	}
	return ""
}

// textOf applies the explicit text capabilities to v.
func textOf(v any) (string, bool) {
	switch val := v.(type) {
	case Displayer:
		return val.DisplayText(), true
	case fmt.Stringer:
		return val.String(), true
	case error:
		return val.Error(), true
	}
	return "", false
}

// formatFloat writes plain decimals for everyday magnitudes and falls back
// to exponent form outside [1e-6, 1e21).
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
