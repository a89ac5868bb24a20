package content

import (
	"fmt"
	"io"

	"github.com/stockbrief/stock-shorts/internal/domain"
	"gopkg.in/yaml.v3"
)

// AliasConfig is an operator-supplied extension of the category alias table.
// It lets new source labels be mapped without a code change.
type AliasConfig struct {
	Kind     string         `yaml:"kind"`
	Version  string         `yaml:"version"`
	Metadata Metadata       `yaml:"metadata"`
	Aliases  []AliasMapping `yaml:"aliases"`
}

type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type AliasMapping struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
}

func (c *AliasConfig) Validate() error {
	if c.Kind != "CategoryAliases" {
		return fmt.Errorf("kind must be CategoryAliases, got %q", c.Kind)
	}
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	for i, a := range c.Aliases {
		if a.Label == "" {
			return fmt.Errorf("aliases[%d] must have a label", i)
		}
		if !domain.Category(a.Category).Valid() {
			return fmt.Errorf("aliases[%d] has unknown category %q", i, a.Category)
		}
	}
	return nil
}

type AliasConfigLoader struct {
	reader io.Reader
}

func NewAliasConfigLoader(reader io.Reader) *AliasConfigLoader {
	return &AliasConfigLoader{reader: reader}
}

func (cl *AliasConfigLoader) Load() (*AliasConfig, error) {
	decoder := yaml.NewDecoder(cl.reader)
	var cfg AliasConfig
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Overrides converts the config to the map shape NewNormalizerWithOverrides
// takes.
func (c *AliasConfig) Overrides() map[string]domain.Category {
	out := make(map[string]domain.Category, len(c.Aliases))
	for _, a := range c.Aliases {
		out[a.Label] = domain.Category(a.Category)
	}
	return out
}
