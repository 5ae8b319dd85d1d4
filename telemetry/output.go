package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/genome/config"
)

// csvFile is an output file that writes its header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

// write appends records, emitting the header on first use.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir         string
	generations csvFile
	traits      csvFile
	organisms   csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		name string
		dst  *csvFile
	}{
		{"generations.csv", &om.generations},
		{"traits.csv", &om.traits},
		{"organisms.csv", &om.organisms},
	}
	for _, file := range files {
		f, err := os.Create(filepath.Join(dir, file.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", file.name, err)
		}
		file.dst.f = f
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration writes per-species generation stats to generations.csv.
func (om *OutputManager) WriteGeneration(stats []GenerationStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	if err := om.generations.write(stats); err != nil {
		return fmt.Errorf("writing generations: %w", err)
	}
	return nil
}

// WriteTraits writes trait summaries to traits.csv.
func (om *OutputManager) WriteTraits(summaries []TraitSummary) error {
	if om == nil || len(summaries) == 0 {
		return nil
	}
	if err := om.traits.write(summaries); err != nil {
		return fmt.Errorf("writing traits: %w", err)
	}
	return nil
}

// WriteOrganisms writes organism records to organisms.csv.
func (om *OutputManager) WriteOrganisms(records []OrganismRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := om.organisms.write(records); err != nil {
		return fmt.Errorf("writing organisms: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{&om.generations, &om.traits, &om.organisms} {
		if c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.f = nil
	}
	return firstErr
}
