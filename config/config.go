// Package config loads forest/tree hyperparameters from a YAML file with
// gopkg.in/yaml.v2, grounded on pbanos-botanic/feature/yaml's
// ReadFeatures/ReadFeaturesFromFile shape (unmarshal into a plain struct,
// wrap file errors with the filepath). CLI flags in cmd/xtrees override
// whatever a loaded config sets, mirroring
// pbanos-botanic/cmd/botanic's flag-over-config precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Forest is the hyperparameter set a fit command needs, shared across
// classification and regression.
type Forest struct {
	NTrees       int  `yaml:"n_trees"`
	MinSplit     int  `yaml:"min_samples_split"`
	MinLeaf      int  `yaml:"min_samples_leaf"`
	MaxDepth     int  `yaml:"max_depth"` // -1 for unbounded
	NTrials      int  `yaml:"n_trials"`  // k in spec.md §4.F's best-of-k
	NWorkers     int  `yaml:"n_workers"`
	Bootstrap    bool `yaml:"bootstrap"`
	ComputeOOB   bool `yaml:"compute_oob"`
}

// Default returns the hyperparameters forest.New and tree.New already
// default to when no options are given, so a YAML file only needs to name
// the fields it wants to override.
func Default() Forest {
	return Forest{
		NTrees:     10,
		MinSplit:   2,
		MinLeaf:    1,
		MaxDepth:   -1,
		NTrials:    1,
		NWorkers:   1,
		Bootstrap:  true,
		ComputeOOB: false,
	}
}

// ReadFile loads hyperparameters from a YAML file at path, starting from
// Default() so a sparse file only needs to set what it changes.
func ReadFile(path string) (Forest, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return f, nil
}
