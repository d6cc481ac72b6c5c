package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Preset describes a named seeding profile.
type Preset struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Users           int    `yaml:"users"`
	Posts           int    `yaml:"posts"`
	CommentsPerPost int    `yaml:"comments_per_post"`
	LikesPerPost    int    `yaml:"likes_per_post"`
}

//go:embed presets.yml
var presetsYAML []byte

// LoadPresets parses the embedded preset catalog.
func LoadPresets() ([]Preset, error) {
	var doc struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(presetsYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return doc.Presets, nil
}

// ApplyPreset runs the seeder with the named preset's parameters.
func (s *Seeder) ApplyPreset(name string) error {
	presets, err := LoadPresets()
	if err != nil {
		return err
	}

	for _, preset := range presets {
		if preset.Name != name {
			continue
		}
		users, err := s.SeedWriters(preset.Users)
		if err != nil {
			return err
		}
		_, err = s.SeedContent(users, preset.Posts, preset.CommentsPerPost, preset.LikesPerPost)
		return err
	}
	return fmt.Errorf("unknown preset %q", name)
}
