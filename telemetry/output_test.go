package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/genome/config"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// Nil manager is a no-op.
	if err := om.WriteGeneration([]GenerationStats{{Species: "moss"}}); err != nil {
		t.Errorf("WriteGeneration on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for gen := 1; gen <= 2; gen++ {
		err := om.WriteGeneration([]GenerationStats{
			{Generation: gen, Species: "moss", Population: 10},
			{Generation: gen, Species: "beetle", Population: 4},
		})
		if err != nil {
			t.Fatalf("WriteGeneration: %v", err)
		}
	}
	if err := om.WriteOrganisms([]OrganismRecord{{Entity: 7, Species: "moss", Genes: "1F000000", Size: 31}}); err != nil {
		t.Fatalf("WriteOrganisms: %v", err)
	}
	if err := om.WriteTraits([]TraitSummary{Summarize(1, "moss", "size", []float64{1, 2, 3})}); err != nil {
		t.Fatalf("WriteTraits: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("generations.csv has %d lines, want header + 4 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "generation,tick,species") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "generation,tick") != 1 {
		t.Error("header written more than once")
	}

	organisms, err := os.ReadFile(filepath.Join(dir, "organisms.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(organisms), "1F000000") {
		t.Errorf("organisms.csv missing genes:\n%s", organisms)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
	if om.Dir() != dir {
		t.Errorf("Dir = %q, want %q", om.Dir(), dir)
	}
}
