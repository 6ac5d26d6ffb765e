package phoneinput

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of the controller options.
type FileConfig struct {
	InitialCountry     string   `yaml:"initial_country"`
	InitialLocale      string   `yaml:"initial_locale"`
	Value              string   `yaml:"value"`
	DismissKeyboard    *bool    `yaml:"dismiss_keyboard"`
	DismissPolicy      string   `yaml:"dismiss_policy"`
	LocalFallback      string   `yaml:"local_fallback"`
	RegionRefinement   bool     `yaml:"region_refinement"`
	Directory          string   `yaml:"directory"`
	DirectoryOverrides []string `yaml:"directory_overrides"`
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("phoneinput: read config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("phoneinput: parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Options converts the file settings into controller options. A directory
// is loaded only when the file names one or lists overrides.
func (fc *FileConfig) Options() ([]Option, error) {
	if fc == nil {
		return nil, nil
	}

	var opts []Option

	if fc.InitialCountry != "" {
		opts = append(opts, WithInitialCountry(fc.InitialCountry))
	}
	if fc.InitialLocale != "" {
		opts = append(opts, WithInitialLocale(fc.InitialLocale))
	}
	if fc.Value != "" {
		opts = append(opts, WithValue(fc.Value))
	}
	if fc.DismissKeyboard != nil {
		opts = append(opts, WithDismissKeyboard(*fc.DismissKeyboard))
	}
	if fc.DismissPolicy != "" {
		policy, err := ParseDismissPolicy(fc.DismissPolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDismissPolicy(policy))
	}
	if fc.LocalFallback != "" {
		fallback, err := ParseLocalFallback(fc.LocalFallback)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLocalFallback(fallback))
	}
	if fc.RegionRefinement {
		opts = append(opts, WithRegionRefinement(true))
	}

	if fc.Directory != "" || len(fc.DirectoryOverrides) > 0 {
		loader := NewDirectoryLoader(fc.Directory)
		for _, path := range fc.DirectoryOverrides {
			loader.AddOverride(path)
		}
		directory, err := loader.Load()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDirectory(directory))
	}

	return opts, nil
}
