package genome

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Transform decodes the concatenated alleles of a property into a value.
// Transforms must be pure: no captured mutable state.
type Transform[T any] func(alleles string) (T, error)

// PropertyDefinition ties a named trait to the loci it is decoded from.
// Values are immutable once registered.
type PropertyDefinition struct {
	name      string
	indices   []int
	valueType reflect.Type
	breeding  BreedingAlgorithm
	transform func(string) (any, error)
}

// Name returns the property name.
func (d PropertyDefinition) Name() string { return d.name }

// GeneIndices returns a copy of the ordered loci the property reads.
func (d PropertyDefinition) GeneIndices() []int { return slices.Clone(d.indices) }

// ValueType returns the type the transform produces.
func (d PropertyDefinition) ValueType() reflect.Type { return d.valueType }

// BreedingAlgorithm returns the inheritance strategy for the property.
func (d PropertyDefinition) BreedingAlgorithm() BreedingAlgorithm { return d.breeding }

// extract concatenates the alleles at the definition's indices.
func (d PropertyDefinition) extract(genes Genes) (string, error) {
	var sb strings.Builder
	sb.Grow(len(d.indices))
	for _, idx := range d.indices {
		c, ok := genes.At(idx)
		if !ok {
			return "", fmt.Errorf("property %q: index %d, genes length %d: %w", d.name, idx, genes.Len(), ErrIndexOutOfRange)
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

// Map is the registry of property definitions for one genome schema.
// It is built once at schema-definition time and read afterwards. Reads are safe
// for concurrent use as long as no registration happens concurrently; Freeze
// makes that contract explicit.
type Map struct {
	props  map[string]PropertyDefinition
	order  []string
	frozen bool
}

// NewMap creates an empty genome map.
func NewMap() *Map {
	return &Map{props: make(map[string]PropertyDefinition)}
}

// AddProperty registers a property producing values of type T.
// Registering an existing name replaces the previous definition entirely.
func AddProperty[T any](m *Map, name string, indices []int, algo BreedingAlgorithm, transform Transform[T]) error {
	if transform == nil {
		return fmt.Errorf("property %q: nil transform: %w", name, ErrInvalidDefinition)
	}
	erased := func(alleles string) (any, error) {
		return transform(alleles)
	}
	return m.AddProperty(name, indices, reflect.TypeFor[T](), algo, erased)
}

// AddProperty registers a property whose transform returns values of valueType.
// Index bounds are not checked here; they are checked against each gene string
// at query time.
func (m *Map) AddProperty(name string, indices []int, valueType reflect.Type, algo BreedingAlgorithm, transform func(string) (any, error)) error {
	if m.frozen {
		return fmt.Errorf("property %q: %w", name, ErrFrozen)
	}
	switch {
	case name == "":
		return fmt.Errorf("empty name: %w", ErrInvalidDefinition)
	case len(indices) == 0:
		return fmt.Errorf("property %q: no gene indices: %w", name, ErrInvalidDefinition)
	case valueType == nil:
		return fmt.Errorf("property %q: nil value type: %w", name, ErrInvalidDefinition)
	case algo == nil:
		return fmt.Errorf("property %q: nil breeding algorithm: %w", name, ErrInvalidDefinition)
	case transform == nil:
		return fmt.Errorf("property %q: nil transform: %w", name, ErrInvalidDefinition)
	}
	for _, idx := range indices {
		if idx < 0 {
			return fmt.Errorf("property %q: negative index %d: %w", name, idx, ErrInvalidDefinition)
		}
	}

	if _, exists := m.props[name]; !exists {
		m.order = append(m.order, name)
	}
	m.props[name] = PropertyDefinition{
		name:      name,
		indices:   slices.Clone(indices),
		valueType: valueType,
		breeding:  algo,
		transform: transform,
	}
	return nil
}

// Freeze rejects further registrations.
func (m *Map) Freeze() {
	m.frozen = true
}

// Frozen reports whether Freeze has been called.
func (m *Map) Frozen() bool {
	return m.frozen
}

// Len returns the number of registered properties.
func (m *Map) Len() int {
	return len(m.order)
}

// Names returns property names in registration order.
func (m *Map) Names() []string {
	return slices.Clone(m.order)
}

// Definition returns the definition registered under name.
func (m *Map) Definition(name string) (PropertyDefinition, bool) {
	d, ok := m.props[name]
	return d, ok
}

// PropertyBreedingAlgorithm returns the breeding algorithm registered for name.
func (m *Map) PropertyBreedingAlgorithm(name string) (BreedingAlgorithm, error) {
	d, ok := m.props[name]
	if !ok {
		return nil, fmt.Errorf("property %q: %w", name, ErrPropertyNotFound)
	}
	return d.breeding, nil
}

// Extract returns the concatenated alleles of property name.
func (m *Map) Extract(name string, genes Genes) (string, error) {
	d, ok := m.props[name]
	if !ok {
		return "", fmt.Errorf("property %q: %w", name, ErrPropertyNotFound)
	}
	return d.extract(genes)
}

// Property decodes property name from genes. valueType must equal the
// registered value type.
func (m *Map) Property(name string, genes Genes, valueType reflect.Type) (any, error) {
	d, ok := m.props[name]
	if !ok {
		return nil, fmt.Errorf("property %q: %w", name, ErrPropertyNotFound)
	}
	if valueType != d.valueType {
		return nil, fmt.Errorf("property %q: requested %v, registered %v: %w", name, valueType, d.valueType, ErrInvalidType)
	}

	alleles, err := d.extract(genes)
	if err != nil {
		return nil, err
	}

	v, err := d.transform(alleles)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w: %w", name, ErrTransform, err)
	}
	if !assignable(v, d.valueType) {
		return nil, fmt.Errorf("property %q: transform produced %T, registered %v: %w", name, v, d.valueType, ErrInvalidType)
	}
	return v, nil
}

// Get decodes property name as a T.
func Get[T any](m *Map, name string, genes Genes) (T, error) {
	var zero T
	v, err := m.Property(name, genes, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("property %q: %w", name, ErrInvalidType)
	}
	return t, nil
}

// assignable reports whether a transform result fits the registered type.
// Only the non-generic AddProperty can register a transform that breaks this.
func assignable(v any, t reflect.Type) bool {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	vt := reflect.TypeOf(v)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt == t
}
