// Package config provides configuration loading and access for genome runs.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run and species-schema parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Breeding   BreedingConfig   `yaml:"breeding"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Species    []SpeciesConfig  `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds headless run parameters.
type SimulationConfig struct {
	Seed               int64 `yaml:"seed" env:"GENOME_SEED"`               // 0 = time-based
	Generations        int   `yaml:"generations" env:"GENOME_GENERATIONS"` // Breeding rounds to run
	Population         int   `yaml:"population" env:"GENOME_POPULATION"`   // Founders per species
	MaxPopulation      int   `yaml:"max_population"`                       // Per-species cap; 0 = unlimited
	PairsPerGeneration int   `yaml:"pairs_per_generation"`                 // Mating attempts per species per generation
}

// MutationConfig holds per-locus mutation parameters.
type MutationConfig struct {
	Chance   float64 `yaml:"chance"`   // Per-locus probability after crossover
	Alphabet string  `yaml:"alphabet"` // Default allele alphabet
}

// BreedingConfig holds crossover compatibility parameters.
type BreedingConfig struct {
	MinimumSimilarity float64 `yaml:"minimum_similarity"` // Fraction of equal loci required per property
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir" env:"GENOME_OUTPUT_DIR"` // Empty disables CSV output
	LogStats  bool   `yaml:"log_stats" env:"GENOME_LOG_STATS"`
}

// SpeciesConfig describes one genome schema.
type SpeciesConfig struct {
	Name       string           `yaml:"name"`
	Length     int              `yaml:"length"`    // Gene string length
	Alphabet   string           `yaml:"alphabet"`  // Allele alphabet (default mutation.alphabet)
	Breeding   string           `yaml:"breeding"`  // monoploid | diploid
	Palette    []string         `yaml:"palette"`   // Names for the palette transform
	Properties []PropertyConfig `yaml:"properties"`
}

// PropertyConfig maps a named trait onto gene indices.
type PropertyConfig struct {
	Name      string `yaml:"name"`
	Indices   []int  `yaml:"indices"`
	Type      string `yaml:"type"`      // int | float | string
	Transform string `yaml:"transform"` // see registry transform catalogue
	Breeding  string `yaml:"breeding"`  // Overrides species breeding when set
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpeciesIndex map[string]int // name -> index into Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies environment overrides. If path is empty, only embedded defaults
// are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg.Simulation); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := env.Parse(&cfg.Telemetry); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays YAML data onto cfg. Only fields present in data are
// overwritten; a species list in data replaces the default list.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks the species schema for structural errors. Transform and
// breeding names are checked when the registry is built.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Species))
	for i, sp := range c.Species {
		if sp.Name == "" {
			return fmt.Errorf("species %d: missing name", i)
		}
		if seen[sp.Name] {
			return fmt.Errorf("species %q: duplicate name", sp.Name)
		}
		seen[sp.Name] = true
		if sp.Length <= 0 {
			return fmt.Errorf("species %q: length must be positive", sp.Name)
		}
		for _, p := range sp.Properties {
			for _, idx := range p.Indices {
				if idx < 0 || idx >= sp.Length {
					return fmt.Errorf("species %q: property %q: index %d outside length %d", sp.Name, p.Name, idx, sp.Length)
				}
			}
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Mutation.Alphabet == "" {
		c.Mutation.Alphabet = "0123456789ABCDEF"
	}

	// Apply defaults to species that don't specify all fields
	for i := range c.Species {
		sp := &c.Species[i]
		if sp.Alphabet == "" {
			sp.Alphabet = c.Mutation.Alphabet
		}
		if sp.Breeding == "" {
			sp.Breeding = "monoploid"
		}
		for j := range sp.Properties {
			if sp.Properties[j].Breeding == "" {
				sp.Properties[j].Breeding = sp.Breeding
			}
		}
	}

	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = i
	}
}

// SpeciesByName returns the species schema with the given name.
func (c *Config) SpeciesByName(name string) (*SpeciesConfig, bool) {
	i, ok := c.Derived.SpeciesIndex[name]
	if !ok {
		return nil, false
	}
	return &c.Species[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
