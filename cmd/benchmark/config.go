package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the scenario file. Anything left out keeps its default.
type Config struct {
	Propagate PropagateConfig `yaml:"propagate"`
	Churn     ChurnConfig     `yaml:"churn"`
}

type PropagateConfig struct {
	Observers []int `yaml:"observers"` // plain observers on the source
	Bindings  []int `yaml:"bindings"`  // labels bound to the source
	Iters     int   `yaml:"iters"`     // updates timed per cell
}

type ChurnConfig struct {
	Scenarios []ChurnScenario `yaml:"scenarios"`
}

type ChurnScenario struct {
	Name   string `yaml:"name"`
	Owners int    `yaml:"owners"`
	Slots  int    `yaml:"slots"`  // registrations per owner per round
	Rounds int    `yaml:"rounds"` // register then dispose cycles
	// Supersede registers every slot of an owner at the same key, so each
	// registration disposes the previous one.
	Supersede bool `yaml:"supersede"`
}

func DefaultConfig() Config {
	return Config{
		Propagate: PropagateConfig{
			Observers: []int{1, 10, 100, 1_000},
			Bindings:  []int{0, 1, 10, 100},
			Iters:     100,
		},
		Churn: ChurnConfig{
			Scenarios: []ChurnScenario{
				{Name: "one owner many slots", Owners: 1, Slots: 10_000, Rounds: 20},
				{Name: "many owners few slots", Owners: 10_000, Slots: 2, Rounds: 20},
				{Name: "list rows", Owners: 500, Slots: 8, Rounds: 100},
				{Name: "rebind", Owners: 100, Slots: 100, Rounds: 20, Supersede: true},
			},
		},
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Propagate.Iters <= 0 {
		return cfg, fmt.Errorf("config %s: propagate.iters must be positive", path)
	}
	return cfg, nil
}
