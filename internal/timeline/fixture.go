package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk content a view is mounted with. Either part may be empty.
type Fixture struct {
	Title     string           `yaml:"title"`
	Timeline  *Timeline        `yaml:"timeline"`
	Intensity []IntensityPoint `yaml:"intensity"`
	// TurningPoints are minute offsets rendered as packed pills above the rows.
	TurningPoints []Item `yaml:"turning_points"`
}

// Load reads and parses a YAML fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixture file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture and normalizes its timeline.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing fixture: %w", err)
	}
	if f.Timeline != nil {
		if err := f.Timeline.Normalize(); err != nil {
			return nil, err
		}
	}
	for i := range f.TurningPoints {
		if f.TurningPoints[i].ID == "" {
			f.TurningPoints[i].ID = DefaultID(-1, i, f.TurningPoints[i].At)
		}
	}
	return &f, nil
}
