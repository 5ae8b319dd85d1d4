package genome

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func sizeMap(t *testing.T) *Map {
	t.Helper()
	m := NewMap()
	if err := AddProperty(m, "size", []int{0, 2}, Monoploid{}, parseInt); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}
	return m
}

func TestPropertyExtractsAndTransforms(t *testing.T) {
	m := sizeMap(t)

	got, err := Get[int](m, "size", "3A9B")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 39 {
		t.Errorf("size = %d, want 39", got)
	}

	v, err := m.Property("size", "3A9B", reflect.TypeFor[int]())
	if err != nil {
		t.Fatalf("Property: %v", err)
	}
	if v.(int) != 39 {
		t.Errorf("Property = %v, want 39", v)
	}
}

func TestPropertyIndexOrder(t *testing.T) {
	m := NewMap()
	identity := func(s string) (string, error) { return s, nil }
	if err := AddProperty(m, "rev", []int{3, 1, 0, 1}, Monoploid{}, identity); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	got, err := Get[string](m, "rev", "abcd")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "dbab" {
		t.Errorf("rev = %q, want %q", got, "dbab")
	}
}

func TestPropertyErrors(t *testing.T) {
	m := sizeMap(t)

	tests := []struct {
		name      string
		property  string
		genes     Genes
		valueType reflect.Type
		want      error
	}{
		{"unregistered", "color", "3A9B", reflect.TypeFor[int](), ErrPropertyNotFound},
		{"wrong type", "size", "3A9B", reflect.TypeFor[string](), ErrInvalidType},
		{"short genes", "size", "3A", reflect.TypeFor[int](), ErrIndexOutOfRange},
		{"empty genes", "size", "", reflect.TypeFor[int](), ErrIndexOutOfRange},
		{"transform failure", "size", "XAYB", reflect.TypeFor[int](), ErrTransform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := m.Property(tt.property, tt.genes, tt.valueType)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Property(%q, %q) error = %v, want %v", tt.property, tt.genes, err, tt.want)
			}
			if v != nil {
				t.Errorf("Property returned value %v alongside error", v)
			}
		})
	}
}

func TestTypeMismatchNamesProperty(t *testing.T) {
	m := sizeMap(t)

	_, err := Get[string](m, "size", "3A9B")
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("error = %v, want ErrInvalidType", err)
	}
	if !strings.Contains(err.Error(), `"size"`) {
		t.Errorf("error %q does not name the property", err)
	}
}

func TestReRegistrationOverwrites(t *testing.T) {
	m := sizeMap(t)
	diploid := Diploid{}

	err := AddProperty(m, "size", []int{1}, diploid, func(s string) (string, error) {
		return strings.ToLower(s), nil
	})
	if err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	if _, err := Get[int](m, "size", "3A9B"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("old type still reachable: err = %v", err)
	}
	got, err := Get[string](m, "size", "3A9B")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "a" {
		t.Errorf("size = %q, want %q", got, "a")
	}

	algo, err := m.PropertyBreedingAlgorithm("size")
	if err != nil {
		t.Fatalf("PropertyBreedingAlgorithm: %v", err)
	}
	if _, ok := algo.(Diploid); !ok {
		t.Errorf("algorithm = %T, want Diploid", algo)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestPropertyBreedingAlgorithmNotFound(t *testing.T) {
	m := sizeMap(t)

	algo, err := m.PropertyBreedingAlgorithm("color")
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("error = %v, want ErrPropertyNotFound", err)
	}
	if algo != nil {
		t.Errorf("algo = %v, want nil", algo)
	}
}

func TestAddPropertyValidation(t *testing.T) {
	m := NewMap()
	intType := reflect.TypeFor[int]()
	fn := func(string) (any, error) { return 0, nil }

	tests := []struct {
		name      string
		property  string
		indices   []int
		valueType reflect.Type
		algo      BreedingAlgorithm
		transform func(string) (any, error)
	}{
		{"empty name", "", []int{0}, intType, Monoploid{}, fn},
		{"no indices", "p", nil, intType, Monoploid{}, fn},
		{"negative index", "p", []int{0, -1}, intType, Monoploid{}, fn},
		{"nil type", "p", []int{0}, nil, Monoploid{}, fn},
		{"nil algorithm", "p", []int{0}, intType, nil, fn},
		{"nil transform", "p", []int{0}, intType, Monoploid{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AddProperty(tt.property, tt.indices, tt.valueType, tt.algo, tt.transform)
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("error = %v, want ErrInvalidDefinition", err)
			}
		})
	}

	if m.Len() != 0 {
		t.Errorf("Len = %d after rejected registrations, want 0", m.Len())
	}
}

func TestIndicesAreCopied(t *testing.T) {
	m := NewMap()
	indices := []int{0, 1}
	if err := AddProperty(m, "p", indices, Monoploid{}, parseInt); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}
	indices[0] = 3

	def, ok := m.Definition("p")
	if !ok {
		t.Fatal("definition missing")
	}
	got := def.GeneIndices()
	if got[0] != 0 {
		t.Errorf("stored indices changed through caller slice: %v", got)
	}
	got[1] = 9
	if def.GeneIndices()[1] != 1 {
		t.Error("stored indices changed through accessor slice")
	}
}

func TestNamesKeepsInsertionOrder(t *testing.T) {
	m := NewMap()
	for _, name := range []string{"size", "color", "speed"} {
		if err := AddProperty(m, name, []int{0}, Monoploid{}, parseInt); err != nil {
			t.Fatalf("AddProperty(%s): %v", name, err)
		}
	}
	// Overwrite keeps the original position.
	if err := AddProperty(m, "size", []int{1}, Monoploid{}, parseInt); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	want := []string{"size", "color", "speed"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestFreeze(t *testing.T) {
	m := sizeMap(t)
	m.Freeze()

	if err := AddProperty(m, "color", []int{1}, Monoploid{}, parseInt); !errors.Is(err, ErrFrozen) {
		t.Errorf("error = %v, want ErrFrozen", err)
	}
	if _, err := Get[int](m, "size", "3A9B"); err != nil {
		t.Errorf("frozen map query failed: %v", err)
	}
}

func TestNonGenericTransformTypeChecked(t *testing.T) {
	m := NewMap()
	lying := func(s string) (any, error) { return s, nil }
	if err := m.AddProperty("p", []int{0}, reflect.TypeFor[int](), Monoploid{}, lying); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	if _, err := Get[int](m, "p", "7"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("error = %v, want ErrInvalidType", err)
	}
}

func TestExtract(t *testing.T) {
	m := sizeMap(t)

	got, err := m.Extract("size", "3A9B")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "39" {
		t.Errorf("Extract = %q, want %q", got, "39")
	}
	if _, err := m.Extract("color", "3A9B"); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("error = %v, want ErrPropertyNotFound", err)
	}
}

func TestConcurrentReads(t *testing.T) {
	m := sizeMap(t)
	m.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v, err := Get[int](m, "size", "3A9B"); err != nil || v != 39 {
					t.Errorf("Get = %d, %v", v, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
