// Package settings reads the persistent launcher settings consulted while
// resolving a launch plan. This is deliberately small: the builder needs
// one mode key, and the binary needs the profile table.
package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/termlaunch/profile"
)

// New-terminal modes: what a bare "open a terminal" request should do.
const (
	ModeWindow = "window"
	ModeTab    = "tab"
)

// builtinDefaultProfile backs installations with no settings file.
const builtinDefaultProfile = "b1dcc9dd-5262-4d8d-a863-c897e6d979b9"

// Settings is the persisted launcher configuration.
type Settings struct {
	// NewTerminalMode is "window" or "tab". Tab mode makes the first
	// implicitly created window eligible for folding into a running
	// instance.
	NewTerminalMode string `yaml:"new_terminal_mode"`

	DefaultProfile string            `yaml:"default_profile"`
	Profiles       []profile.Profile `yaml:"profiles"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	return &Settings{
		NewTerminalMode: ModeWindow,
		DefaultProfile:  builtinDefaultProfile,
		Profiles: []profile.Profile{
			{ID: builtinDefaultProfile, Name: "Default"},
		},
	}
}

// Load reads the settings file from the user config directory, falling
// back to defaults when it does not exist.
func Load() (*Settings, error) {
	return LoadFrom(defaultPath())
}

// LoadFrom reads settings from an explicit path. A missing file is not an
// error; a malformed one is.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.NewTerminalMode != ModeTab {
		s.NewTerminalMode = ModeWindow
	}
	return s, nil
}

// TabMode reports whether new terminals open as tabs by default.
func (s *Settings) TabMode() bool {
	return s.NewTerminalMode == ModeTab
}

// ProfileList builds the resolver table from the configured profiles.
func (s *Settings) ProfileList() *profile.List {
	return profile.NewList(s.DefaultProfile, s.Profiles...)
}

func defaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "termlaunch", "settings.yml")
}
