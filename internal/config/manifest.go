package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the project-level configuration file (janus.yaml), parsed
// by LoadManifest. It configures where modules live and how the optimizer
// behaves; resolution itself never reads this file, and cmd/janusc does
// not load it.
type Manifest struct {
	// ModuleRoots lists directories searched for module manifests, in
	// priority order (earlier entries win on unresolved conflicts).
	ModuleRoots []string `yaml:"module_roots"`

	// CacheDir is where *.jdc files and cache_index.json live.
	CacheDir string `yaml:"cache_dir"`

	Optimizer OptimizerConfig `yaml:"optimizer"`
}

// OptimizerConfig mirrors §4.L's optimizer config tuple.
type OptimizerConfig struct {
	MinEntriesForDecisionTree    int     `yaml:"min_entries_for_decision_tree"`
	MinEntriesForCompression     int     `yaml:"min_entries_for_compression"`
	MinConfidenceForAutomaticOpt float64 `yaml:"min_confidence_for_automatic_opt"`
	HotPathFrequencyThreshold    int     `yaml:"hot_path_frequency_threshold"`
}

// DefaultManifest returns a manifest populated with the engine defaults.
func DefaultManifest() Manifest {
	return Manifest{
		ModuleRoots: []string{"."},
		CacheDir:    ".janus/cache",
		Optimizer: OptimizerConfig{
			MinEntriesForDecisionTree:    DefaultMinEntriesForDecisionTree,
			MinEntriesForCompression:     DefaultMinEntriesForCompression,
			MinConfidenceForAutomaticOpt: DefaultMinConfidenceForAutomaticOpt,
			HotPathFrequencyThreshold:    DefaultHotPathFrequencyThreshold,
		},
	}
}

// LoadManifest reads and parses a janus.yaml file, filling in any field
// left zero-valued with the engine default.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: reading manifest %s: %w", path, err)
	}

	// Decode onto a copy seeded with defaults so the user only has to
	// specify what they want to override.
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("config: parsing manifest %s: %w", path, err)
	}

	if m.Optimizer.MinEntriesForDecisionTree == 0 {
		m.Optimizer.MinEntriesForDecisionTree = DefaultMinEntriesForDecisionTree
	}
	if m.Optimizer.MinEntriesForCompression == 0 {
		m.Optimizer.MinEntriesForCompression = DefaultMinEntriesForCompression
	}
	if m.Optimizer.MinConfidenceForAutomaticOpt == 0 {
		m.Optimizer.MinConfidenceForAutomaticOpt = DefaultMinConfidenceForAutomaticOpt
	}
	if m.Optimizer.HotPathFrequencyThreshold == 0 {
		m.Optimizer.HotPathFrequencyThreshold = DefaultHotPathFrequencyThreshold
	}
	if m.CacheDir == "" {
		m.CacheDir = ".janus/cache"
	}
	if len(m.ModuleRoots) == 0 {
		m.ModuleRoots = []string{"."}
	}

	return m, nil
}
