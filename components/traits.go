package components

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// TraitTag is the struct tag naming the genome property a field is expressed from.
// `trait:"-"` excludes a field.
const TraitTag = "trait"

// Field is one tagged trait field of a component value.
type Field struct {
	Trait string
	Name  string
	Value any
}

// fieldCache maps reflect.Type -> map[trait]field index.
var fieldCache sync.Map

// TraitFields returns the trait name -> field index map for a component struct type.
func TraitFields(t reflect.Type) map[string]int {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]int)
	}

	fields := make(map[string]int)
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name := parseTraitTag(sf.Tag.Get(TraitTag))
			if name == "" {
				continue
			}
			fields[name] = i
		}
	}
	fieldCache.Store(t, fields)
	return fields
}

// parseTraitTag returns the trait name of a tag, or "" if the field is excluded.
func parseTraitTag(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	name = strings.TrimSpace(name)
	if name == "-" {
		return ""
	}
	return name
}

// Traits returns the sorted trait names carried by a component type.
func Traits(t reflect.Type) []string {
	fields := TraitFields(t)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TraitType returns the Go type of the field carrying trait.
func TraitType(t reflect.Type, trait string) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	idx, ok := TraitFields(t)[trait]
	if !ok {
		return nil, false
	}
	return t.Field(idx).Type, true
}

// SetTrait writes value into the field of component tagged with trait.
// component must be a pointer to a struct.
func SetTrait(component any, trait string, value any) error {
	v := reflect.ValueOf(component)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("set trait %q: component %T is not a struct pointer", trait, component)
	}
	v = v.Elem()

	idx, ok := TraitFields(v.Type())[trait]
	if !ok {
		return fmt.Errorf("set trait %q: %v has no such trait", trait, v.Type())
	}
	fv := v.Field(idx)
	val := reflect.ValueOf(value)
	if !val.IsValid() || !val.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("set trait %q: cannot assign %T to %v", trait, value, fv.Type())
	}
	fv.Set(val)
	return nil
}

// ExtractTraits returns the tagged trait fields of a component value in field order.
func ExtractTraits(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := parseTraitTag(sf.Tag.Get(TraitTag))
		if name == "" {
			continue
		}
		fields = append(fields, Field{
			Trait: name,
			Name:  sf.Name,
			Value: v.Field(i).Interface(),
		})
	}
	return fields
}

// FormatValue formats a trait value for display.
func FormatValue(value any) string {
	switch v := value.(type) {
	case float32:
		return fmt.Sprintf("%.2f", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", value)
	}
}
