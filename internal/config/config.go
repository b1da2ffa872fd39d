// Package config defines the data structures related to configuration and
// includes functions for loading the config and preparing its simulations.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/financing-simulator/pkg/constants"
	"github.com/iwvelando/financing-simulator/pkg/inputs"
	"github.com/iwvelando/financing-simulator/pkg/validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for financing-simulator.
type Configuration struct {
	Simulations []Simulation  `yaml:"simulations"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Simulation is one saved financing simulation.
type Simulation struct {
	ID     string                 `yaml:"id,omitempty"`
	Title  string                 `yaml:"title,omitempty"`
	Active bool                   `yaml:"active"`
	Inputs map[string]interface{} `yaml:"inputs,omitempty"`

	parsed *inputs.Inputs
}

// LoadConfiguration takes a file path as input and loads the YAML- or
// JSON-formatted configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	// Files such as config.yaml.example are read as YAML.
	if !supportedExtension(configPath) {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func supportedExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, supported := range viper.SupportedExts {
		if strings.EqualFold(ext, supported) {
			return true
		}
	}
	return false
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ProcessSimulations assigns IDs to simulations that lack one and hydrates
// their inputs.
func (conf *Configuration) ProcessSimulations(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	seen := make(map[string]int, len(conf.Simulations))
	for i := range conf.Simulations {
		simulation := &conf.Simulations[i]

		simulation.ID = strings.TrimSpace(simulation.ID)
		if simulation.ID == "" {
			simulation.ID = uuid.NewString()
			logger.Debug(fmt.Sprintf("assigned id %s to simulation %d", simulation.ID, i),
				zap.String("op", "config.ProcessSimulations"),
			)
		}
		if previous, exists := seen[simulation.ID]; exists {
			return fmt.Errorf("simulations %d and %d share id %s", previous, i, simulation.ID)
		}
		seen[simulation.ID] = i

		if strings.TrimSpace(simulation.Title) == "" {
			simulation.Title = constants.DefaultSimulationTitle
		}

		simulation.parsed = inputs.Hydrate(simulation.Inputs)
	}

	return nil
}

// SimulationInputs returns the hydrated inputs of the simulation. Callers
// get their own copy.
func (s *Simulation) SimulationInputs() *inputs.Inputs {
	if s.parsed == nil {
		s.parsed = inputs.Hydrate(s.Inputs)
	}
	return s.parsed.Clone()
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	active := 0
	for i := range conf.Simulations {
		simulation := &conf.Simulations[i]
		if !simulation.Active {
			continue
		}
		active++

		name := simulation.Title
		if name == "" {
			name = simulation.ID
		}
		warnings = append(warnings, validation.SimulationWarnings(name, simulation.SimulationInputs())...)
	}

	if active == 0 {
		warnings = append(warnings, "No active simulations - nothing will be computed")
	}

	return warnings
}
