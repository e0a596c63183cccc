package domain

import (
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// extendedNumberKeys are the wrapper keys of extended-JSON numbers, tried in
// this order.
var extendedNumberKeys = []string{"$numberInt", "$numberDouble", "$numberLong", "$numberDecimal", "$number"}

var amountNoise = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "", "%", "", " ", "", "\t", "")

// ToNumber coerces a loosely typed value from a request body into a float64.
// It accepts numbers, numeric strings carrying currency, separators or a
// percent sign, json.Number, pointers to any of these, and extended-JSON
// wrappers such as {"$numberDecimal": "12.5"} or single-key maps. Anything
// else, including booleans, NaN and infinities, is 0.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case nil, bool:
		return 0
	case string:
		return coerce(amountNoise.Replace(strings.TrimSpace(n)))
	case map[string]any:
		for _, k := range extendedNumberKeys {
			if inner, ok := n[k]; ok {
				return ToNumber(inner)
			}
		}
		if len(n) == 1 {
			for _, inner := range n {
				return ToNumber(inner)
			}
		}
		return 0
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		return ToNumber(rv.Elem().Interface())
	}
	return coerce(v)
}

// coerce handles the plain numeric kinds and json.Number.
func coerce(v any) float64 {
	if s, ok := v.(string); ok && s == "" {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
