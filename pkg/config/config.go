// Package config provides configuration management for the rscodec CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version" yaml:"version"`
	Defaults DefaultSettings `json:"defaults" yaml:"defaults"`
	UI       UIConfig        `json:"ui" yaml:"ui"`
	Simulate SimulateConfig  `json:"simulate" yaml:"simulate"`
}

// DefaultSettings contains default code parameters for encode and decode
type DefaultSettings struct {
	Prime           uint64 `json:"prime" yaml:"prime"`                       // Default: 929
	N               int    `json:"n" yaml:"n"`                               // Default: 12
	K               int    `json:"k" yaml:"k"`                               // Default: 4
	ParallelWorkers int    `json:"parallel_workers" yaml:"parallel_workers"` // 0 = sequential hypothesis search
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor    bool   `json:"use_color" yaml:"use_color"`       // Enable colored output
	ProgressBar bool   `json:"progress_bar" yaml:"progress_bar"` // Show progress indicators
	Verbosity   string `json:"verbosity" yaml:"verbosity"`       // quiet, normal, verbose
}

// SimulateConfig contains defaults for the simulate command
type SimulateConfig struct {
	Trials int    `json:"trials" yaml:"trials"`
	Seed   uint64 `json:"seed" yaml:"seed"`
}

// CodeProfile is a named set of code parameters
type CodeProfile struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Prime       uint64   `json:"prime" yaml:"prime"`
	N           int      `json:"n" yaml:"n"`
	K           int      `json:"k" yaml:"k"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// CodeParams are the parameters a command needs; zero fields are unset.
type CodeParams struct {
	Prime uint64
	N     int
	K     int
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
	profiles   map[string]*CodeProfile
}

// NewConfigManager creates a configuration manager for the default config path
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt creates a configuration manager backed by configPath. A missing
// config file is created with the defaults.
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath: configPath,
		profiles:   make(map[string]*CodeProfile),
	}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	// Profiles are optional, so we don't fail here
	if err := cm.LoadProfiles(); err != nil {
		cm.profiles = make(map[string]*CodeProfile)
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Prime:           929,
			N:               12,
			K:               4,
			ParallelWorkers: 0,
		},
		UI: UIConfig{
			UseColor:    true,
			ProgressBar: true,
			Verbosity:   "normal",
		},
		Simulate: SimulateConfig{
			Trials: 1000,
			Seed:   1,
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func unmarshal(path string, data []byte, v any) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

func marshal(path string, v any) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// LoadConfig loads the configuration from disk. Keys missing from the file keep their
// default values.
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := unmarshal(cm.configPath, data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshal(cm.configPath, cm.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the config file location
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

func (cm *ConfigManager) profilesPath() string {
	return filepath.Join(filepath.Dir(cm.configPath), "profiles.json")
}

// LoadProfiles loads saved code profiles
func (cm *ConfigManager) LoadProfiles() error {
	data, err := os.ReadFile(cm.profilesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	profiles := make(map[string]*CodeProfile)
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles: %w", err)
	}

	cm.profiles = profiles
	return nil
}

// SaveProfiles saves code profiles to disk
func (cm *ConfigManager) SaveProfiles() error {
	if err := os.MkdirAll(filepath.Dir(cm.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(cm.profilesPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}

	return nil
}

// AddProfile adds or replaces a code profile
func (cm *ConfigManager) AddProfile(profile *CodeProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	cm.profiles[profile.Name] = profile
	return cm.SaveProfiles()
}

// GetProfile retrieves a code profile by name
func (cm *ConfigManager) GetProfile(name string) (*CodeProfile, error) {
	profile, exists := cm.profiles[name]
	if !exists {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}
	return profile, nil
}

// ListProfiles returns all available profiles sorted by name
func (cm *ConfigManager) ListProfiles() []*CodeProfile {
	profiles := make([]*CodeProfile, 0, len(cm.profiles))
	for _, profile := range cm.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles
}

// DeleteProfile removes a code profile
func (cm *ConfigManager) DeleteProfile(name string) error {
	if _, exists := cm.profiles[name]; !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}

	delete(cm.profiles, name)
	return cm.SaveProfiles()
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("RSCODEC_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rscodec", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "rscodec", "config.json"), nil
}

// ApplyDefaults fills unset parameters from the config defaults
func (cm *ConfigManager) ApplyDefaults(params *CodeParams) {
	if params.Prime == 0 {
		params.Prime = cm.config.Defaults.Prime
	}
	if params.N == 0 {
		params.N = cm.config.Defaults.N
	}
	if params.K == 0 {
		params.K = cm.config.Defaults.K
	}
}

// ApplyProfile fills unset parameters from the named profile
func (cm *ConfigManager) ApplyProfile(name string, params *CodeParams) error {
	profile, err := cm.GetProfile(name)
	if err != nil {
		return err
	}
	if params.Prime == 0 {
		params.Prime = profile.Prime
	}
	if params.N == 0 {
		params.N = profile.N
	}
	if params.K == 0 {
		params.K = profile.K
	}
	return nil
}
