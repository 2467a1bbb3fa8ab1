// Package config loads the small YAML file that configures feature
// weights and default extraction flags, validated with go-playground/validator
// struct tags rather than hand-rolled checks.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
)

// FeatureWeight names one feature and its weight in the linear model.
type FeatureWeight struct {
	Name   string  `yaml:"name" validate:"required"`
	Weight float64 `yaml:"weight" validate:"required"`
}

// Defaults mirrors cube.Options with YAML tags; ToOptions maps it onto
// cube.Options. The extract and serve commands build their options from
// command-line flags only and do not apply these defaults.
type Defaults struct {
	UniqueNbest      bool `yaml:"unique_nbest"`
	ExtractTree      bool `yaml:"extract_tree"`
	IncludeAlignment bool `yaml:"include_alignment"`
	AddCombinedScore bool `yaml:"add_combined_score"`
	Monolingual      bool `yaml:"monolingual"`
	SanityCheck      bool `yaml:"sanity_check"`
}

// File is the top-level shape of a weights/config YAML document.
type File struct {
	Features []FeatureWeight `yaml:"features" validate:"dive"`
	Defaults Defaults        `yaml:"defaults"`
}

var validate = validator.New()

// Load reads and validates a weights/config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &f, nil
}

// ToOptions maps the file's Defaults onto cube.Options. Flags passed
// explicitly on the command line should be applied on top of this.
func (f *File) ToOptions() cube.Options {
	return cube.Options{
		UniqueNbest:      f.Defaults.UniqueNbest,
		ExtractTree:      f.Defaults.ExtractTree,
		IncludeAlignment: f.Defaults.IncludeAlignment,
		AddCombinedScore: f.Defaults.AddCombinedScore,
		Monolingual:      f.Defaults.Monolingual,
		SanityCheck:      f.Defaults.SanityCheck,
	}
}

// ToFeatures builds the hgraph.LocalCostFeature set the Features list
// describes. A real decoder's richer feature set is out of scope for this
// module; this is the generically useful default.
func (f *File) ToFeatures() []hgraph.FeatureFunction {
	out := make([]hgraph.FeatureFunction, len(f.Features))
	for i, fw := range f.Features {
		out[i] = &hgraph.LocalCostFeature{Name: fw.Name, W: fw.Weight}
	}
	return out
}
