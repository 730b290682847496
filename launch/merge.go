package launch

import (
	"github.com/kballard/go-shellquote"

	"github.com/grovetools/termlaunch/errors"
	"github.com/grovetools/termlaunch/keyfile"
)

// Saved configuration document layout.
const (
	ConfigGroup = "Launch Configuration"

	keyVersion       = "Version"
	keyCompatVersion = "CompatVersion"
	keyWindows       = "Windows"

	keyTabs           = "Tabs"
	keyActiveTab      = "ActiveTab"
	keyRole           = "Role"
	keyGeometry       = "Geometry"
	keyFullscreen     = "Fullscreen"
	keyMaximized      = "Maximized"
	keyMenubarVisible = "MenubarVisible"

	keyProfileID        = "ProfileID"
	keyWorkingDirectory = "WorkingDirectory"
	keyTitle            = "Title"
	keyCommand          = "Command"
)

// CompatVersion is the newest declared compatibility version this
// implementation can merge.
const CompatVersion = 1

// MergeConfig merges a saved configuration document into the plan,
// appending its windows after any already present. The merge is atomic:
// on error nothing is appended and the plan's windows are untouched.
func MergeConfig(plan *Plan, f *keyfile.File, source Source) error {
	if !f.HasGroup(ConfigGroup) {
		return errors.InvalidConfigFile()
	}

	version := f.Integer(ConfigGroup, keyVersion)
	compat := f.Integer(ConfigGroup, keyCompatVersion)
	if version <= 0 || compat <= 0 || compat > CompatVersion {
		return errors.IncompatibleConfigFile(version, compat)
	}

	windowGroups, ok := f.StringList(ConfigGroup, keyWindows)
	if !ok {
		return errors.InvalidConfigFile().WithDetail("missing_key", keyWindows)
	}

	var windows []*Window
	for _, wg := range windowGroups {
		tabGroups, ok := f.StringList(wg, keyTabs)
		if !ok || len(tabGroups) == 0 {
			// No tabs in this window, nothing to open.
			continue
		}

		w := &Window{Source: source}
		plan.Defaults.applyToWindow(w)

		activeTab, _ := f.String(wg, keyActiveTab)
		if role, ok := f.String(wg, keyRole); ok {
			w.Role = role
		}
		if geometry, ok := f.String(wg, keyGeometry); ok {
			w.Geometry = geometry
		}
		w.Fullscreen = w.Fullscreen || f.Boolean(wg, keyFullscreen)
		w.Maximized = w.Maximized || f.Boolean(wg, keyMaximized)
		if f.HasKey(wg, keyMenubarVisible) {
			// Presence of the key itself forces the state.
			w.ForceMenubar = true
			w.MenubarVisible = f.Boolean(wg, keyMenubarVisible)
		}

		for _, tg := range tabGroups {
			profileID, _ := f.String(tg, keyProfileID)
			tab := newTab(profileID)
			w.Tabs = append(w.Tabs, tab)

			if tg == activeTab {
				tab.Active = true
			}

			if wd, ok := f.String(tg, keyWorkingDirectory); ok {
				tab.WorkingDir = keyfile.Uncompress(wd)
			}
			tab.Title, _ = f.String(tg, keyTitle)

			if f.HasKey(tg, keyCommand) {
				raw, _ := f.String(tg, keyCommand)
				argv, err := shellquote.Split(keyfile.Uncompress(raw))
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeBadValue,
						"saved tab command is not a valid command").
						WithDetail("group", tg)
				}
				tab.ExecArgv = argv
			}
		}

		windows = append(windows, w)
	}

	plan.Windows = append(plan.Windows, windows...)
	return nil
}
