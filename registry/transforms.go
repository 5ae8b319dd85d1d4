package registry

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Value types accepted in species schemas.
var valueTypes = map[string]reflect.Type{
	"int":    reflect.TypeFor[int](),
	"float":  reflect.TypeFor[float64](),
	"string": reflect.TypeFor[string](),
}

// ValueType resolves a schema type name.
func ValueType(name string) (reflect.Type, error) {
	t, ok := valueTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown value type %q", name)
	}
	return t, nil
}

// transformSpec is a named transform and the type it produces.
type transformSpec struct {
	out reflect.Type
	fn  func(string) (any, error)
}

// Transform resolves a transform name from the catalogue:
//
//	int        decimal integer
//	hex        base-16 integer
//	float      decimal float
//	unit       base-16 value scaled into [0, 1]
//	string     alleles as-is
//	palette    base-16 value indexing palette (wraps)
//	count:<c>  occurrences of allele c, int
//	ratio:<c>  fraction of alleles equal to c, float
func Transform(name string, palette []string) (reflect.Type, func(string) (any, error), error) {
	kind, arg, _ := strings.Cut(name, ":")
	spec, err := lookupTransform(kind, arg, palette)
	if err != nil {
		return nil, nil, err
	}
	return spec.out, spec.fn, nil
}

func lookupTransform(kind, arg string, palette []string) (transformSpec, error) {
	intType := reflect.TypeFor[int]()
	floatType := reflect.TypeFor[float64]()
	stringType := reflect.TypeFor[string]()

	switch kind {
	case "int":
		return transformSpec{intType, func(s string) (any, error) {
			return strconv.Atoi(s)
		}}, nil

	case "hex":
		return transformSpec{intType, func(s string) (any, error) {
			v, err := strconv.ParseInt(s, 16, 64)
			return int(v), err
		}}, nil

	case "float":
		return transformSpec{floatType, func(s string) (any, error) {
			return strconv.ParseFloat(s, 64)
		}}, nil

	case "unit":
		return transformSpec{floatType, func(s string) (any, error) {
			v, err := strconv.ParseUint(s, 16, 64)
			if err != nil {
				return 0.0, err
			}
			max := math.Pow(16, float64(len(s))) - 1
			return float64(v) / max, nil
		}}, nil

	case "string":
		return transformSpec{stringType, func(s string) (any, error) {
			return s, nil
		}}, nil

	case "palette":
		if len(palette) == 0 {
			return transformSpec{}, fmt.Errorf("transform palette: species has no palette")
		}
		colors := append([]string(nil), palette...)
		return transformSpec{stringType, func(s string) (any, error) {
			v, err := strconv.ParseUint(s, 16, 64)
			if err != nil {
				return "", err
			}
			return colors[v%uint64(len(colors))], nil
		}}, nil

	case "count", "ratio":
		if len(arg) != 1 {
			return transformSpec{}, fmt.Errorf("transform %s: want a single allele argument, got %q", kind, arg)
		}
		allele := arg
		if kind == "count" {
			return transformSpec{intType, func(s string) (any, error) {
				return strings.Count(s, allele), nil
			}}, nil
		}
		return transformSpec{floatType, func(s string) (any, error) {
			if len(s) == 0 {
				return 0.0, nil
			}
			return float64(strings.Count(s, allele)) / float64(len(s)), nil
		}}, nil
	}

	return transformSpec{}, fmt.Errorf("unknown transform %q", kind)
}
