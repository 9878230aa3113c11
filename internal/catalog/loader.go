package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/liquidity2/terminal/internal/domain/engine"
	"github.com/liquidity2/terminal/internal/log"
)

// File is the on-disk catalog schema.
type File struct {
	Engines []EngineDef `yaml:"engines"`
}

// EngineDef is a single engine entry in a catalog file. Pillars are written
// by name (foundation, liquidity, credit, macro, synthesis) rather than by
// ordinal so catalogs stay readable.
type EngineDef struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Pillar            string   `yaml:"pillar"`
	Priority          int      `yaml:"priority"`
	RefreshIntervalMS int      `yaml:"refresh_interval_ms"`
	Indicators        []string `yaml:"indicators"`
	DependsOn         []string `yaml:"depends_on"`
}

// Parse decodes YAML catalog content into domain descriptors. Each entry
// goes through the descriptor builder, so structural problems (empty id,
// unknown pillar, negative interval) are caught here with the entry's
// position in the file for context.
func Parse(content []byte) ([]*engine.Descriptor, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	descriptors := make([]*engine.Descriptor, 0, len(file.Engines))
	for i, def := range file.Engines {
		desc, err := def.toDescriptor()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, def.ID, err)
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors, nil
}

// LoadFile reads and parses a catalog file from disk.
func LoadFile(path string) ([]*engine.Descriptor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	descriptors, err := Parse(content)
	if err != nil {
		return nil, err
	}

	log.Debug(log.CatCatalog, "catalog file loaded", "path", path, "engines", len(descriptors))
	return descriptors, nil
}

func (d EngineDef) toDescriptor() (*engine.Descriptor, error) {
	pillar, ok := engine.ParsePillar(d.Pillar)
	if !ok {
		return nil, fmt.Errorf("pillar %q: %w", d.Pillar, engine.ErrInvalidPillar)
	}

	return engine.NewDescriptor(d.ID).
		Name(d.Name).
		Pillar(pillar).
		Priority(d.Priority).
		RefreshInterval(time.Duration(d.RefreshIntervalMS) * time.Millisecond).
		Indicators(d.Indicators...).
		DependsOn(d.DependsOn...).
		Build()
}
