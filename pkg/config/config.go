package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Settings map[string]any `yaml:"settings"`
	Lint     Lint           `yaml:"lint"`
}

type Lint struct {
	Semicolon           bool `yaml:"semicolon"`
	MissingColon        bool `yaml:"missing_colon"`
	UnusedVariable      bool `yaml:"unused_variable"`
	DuplicateDefinition bool `yaml:"duplicate_definition"`
	MixedIndentation    bool `yaml:"mixed_indentation"`
}

const (
	ConfigFileName = "gdscriptlsp.config.yaml"
	// SettingsSection is the section name clients nest settings under in
	// workspace/didChangeConfiguration.
	SettingsSection = "gdscript"

	EnableSyntaxChecking        = "enableSyntaxChecking"
	DefaultEnableSyntaxChecking = true
)

func DefaultLint() Lint {
	return Lint{
		Semicolon:           true,
		MissingColon:        true,
		UnusedVariable:      true,
		DuplicateDefinition: true,
		MixedIndentation:    true,
	}
}

// Default is the configuration used when there is no workspace to read from.
func Default() *Config {
	return &Config{
		Settings: map[string]any{EnableSyntaxChecking: DefaultEnableSyntaxChecking},
		Lint:     DefaultLint(),
	}
}

// NewWithDefaults reads the config file at the workspace root, if present,
// over the default settings.
func NewWithDefaults(workspacePath string) (*Config, error) {
	f, err := os.ReadFile(filepath.Join(workspacePath, ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	config := Config{
		Settings: map[string]any{},
		Lint:     DefaultLint(),
	}
	if err := yaml.Unmarshal(f, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	if config.Settings == nil {
		config.Settings = map[string]any{}
	}
	if _, ok := config.Settings[EnableSyntaxChecking]; !ok {
		config.Settings[EnableSyntaxChecking] = DefaultEnableSyntaxChecking
	}
	return &config, nil
}

var (
	rootIdentifiers       = []string{ConfigFileName, "project.godot", ".git"}
	ErrIdentifierNotFound = errors.New("workspace identifier not found")
	ErrRootNotFound       = errors.New("workspace root not found")
)

// FindWorkspaceRoot walks up from currentPath looking for each identifier in
// turn.
func FindWorkspaceRoot(currentPath string) (string, error) {
	for _, id := range rootIdentifiers {
		path, err := findRootIDDir(currentPath, id)
		if errors.Is(err, ErrIdentifierNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRootNotFound, err)
		}
		return path, nil
	}
	return "", ErrRootNotFound
}

func findRootIDDir(currentPath string, identifier string) (string, error) {
	dirEntries, err := os.ReadDir(currentPath)
	if err != nil {
		return "", err
	}
	found := slices.ContainsFunc(dirEntries, func(entry os.DirEntry) bool {
		return entry.Name() == identifier
	})
	if !found {
		parentDir := filepath.Dir(currentPath)
		if parentDir == currentPath {
			return "", ErrIdentifierNotFound
		}
		return findRootIDDir(parentDir, identifier)
	}
	return currentPath, nil
}
