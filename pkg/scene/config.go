package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition describes one scene: the asset packages it needs and the scenes
// it pulls in with it (sub-scenes are resolved recursively and may refer
// back to ancestors).
type Definition struct {
	Name     string   `yaml:"name"`
	Packages []string `yaml:"packages,omitempty"`
	Scenes   []string `yaml:"scenes,omitempty"`
}

// Config is the root of a scene definitions file.
type Config struct {
	// CorePackages are asset packages every scene depends on, regardless of
	// its own definition. They become static dependencies of the scene kind.
	CorePackages []string `yaml:"core_packages,omitempty"`

	Scenes []Definition `yaml:"scenes"`

	byName map[string]Definition
}

// LoadConfig loads scene definitions from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene definitions %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene definitions: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene definitions: %w", err)
	}

	return &cfg, nil
}

// Validate checks the definitions for common errors and builds the lookup
// index used by Definition.
func (c *Config) Validate() error {
	c.byName = make(map[string]Definition, len(c.Scenes))
	for _, s := range c.Scenes {
		if s.Name == "" {
			return fmt.Errorf("scene with empty name found")
		}
		if _, exists := c.byName[s.Name]; exists {
			return fmt.Errorf("duplicate scene name: %s", s.Name)
		}
		c.byName[s.Name] = s

		for _, p := range s.Packages {
			if p == "" {
				return fmt.Errorf("scene %s lists an empty package id", s.Name)
			}
		}
	}

	// Sub-scene references must name defined scenes.
	for _, s := range c.Scenes {
		for _, sub := range s.Scenes {
			if _, ok := c.byName[sub]; !ok {
				return fmt.Errorf("scene %s references unknown scene: %s", s.Name, sub)
			}
		}
	}

	for _, p := range c.CorePackages {
		if p == "" {
			return fmt.Errorf("core_packages lists an empty package id")
		}
	}

	return nil
}

// Definition returns the definition for a scene name.
func (c *Config) Definition(name string) (Definition, bool) {
	d, ok := c.byName[name]
	return d, ok
}
