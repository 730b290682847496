// Package options is the option token source: it turns an argument
// vector into the ordered option events consumed by the launch builder,
// after pre-scanning for the legacy command tail.
package options

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/grovetools/termlaunch/busname"
	"github.com/grovetools/termlaunch/errors"
	"github.com/grovetools/termlaunch/keyfile"
	"github.com/grovetools/termlaunch/launch"
	"github.com/grovetools/termlaunch/logging"
	"github.com/grovetools/termlaunch/settings"
	"github.com/grovetools/termlaunch/version"
)

// Environment variables consumed while parsing.
const (
	EnvStartupID = "DESKTOP_STARTUP_ID"
	EnvDisplay   = "DISPLAY"
	// EnvService and EnvScreen are private hand-off variables set by a
	// running server for nested invocations.
	EnvService = "TERMLAUNCH_SERVICE"
	EnvScreen  = "TERMLAUNCH_SCREEN"
)

// optionalValue is the NoOptDefVal sentinel for options whose argument
// may be omitted, such as --window[=PROFILE].
const optionalValue = "\x00"

// Retired options and whether encountering them is fatal. There is no
// unifying rule; the table preserves the historical per-option behavior.
var retiredOptions = map[string]struct {
	fatal    bool
	takesArg bool
}{
	"save-config":     {fatal: false, takesArg: true},
	"use-factory":     {fatal: false, takesArg: false},
	"disable-factory": {fatal: true, takesArg: false},
}

// Config carries the collaborators for one parse.
type Config struct {
	Settings  *settings.Settings
	Log       *logging.Logger
	Profiles  launch.ProfileResolver
	Transport launch.FDTransport

	// Getenv, Exit, and Stdout default to the os equivalents; tests
	// substitute them.
	Getenv func(string) string
	Exit   func(int)
	Stdout io.Writer
}

func (c *Config) fillDefaults() {
	if c.Log == nil {
		c.Log = logging.New()
	}
	if c.Settings == nil {
		c.Settings = settings.Default()
	}
	if c.Profiles == nil {
		c.Profiles = c.Settings.ProfileList()
	}
	if c.Getenv == nil {
		c.Getenv = os.Getenv
	}
	if c.Exit == nil {
		c.Exit = os.Exit
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
}

// Parse consumes args (without the program name) and returns the
// resolved launch plan. Any error aborts the whole parse; the partial
// plan is discarded by the caller.
func Parse(args []string, cfg Config) (*launch.Plan, error) {
	cfg.fillDefaults()

	p := &parser{
		cfg: cfg,
		builder: launch.NewBuilder(launch.Config{
			Log:       cfg.Log,
			Profiles:  cfg.Profiles,
			Transport: cfg.Transport,
			TabFirst:  cfg.Settings.TabMode(),
		}),
	}
	plan := p.builder.Plan()

	p.collectEnvironment(plan)

	if wd, err := os.Getwd(); err == nil {
		plan.Defaults.WorkingDir = wd
	}

	// The legacy -x/--execute option is broken, so the tail is
	// pre-scanned before option parsing. The terminator token is
	// handled the same way.
	args, tail, execute := splitCommandTail(args)
	if execute {
		p.warnDeprecatedCommand("-x/--execute")
	}
	p.builder.SetExecuteTail(tail, execute)

	fs := p.newFlagSet()
	if err := fs.Parse(args); err != nil {
		if p.firstErr != nil {
			return nil, p.firstErr
		}
		return nil, errors.Wrap(err, errors.ErrCodeUnknownOption, "failed to parse command-line options")
	}
	if p.firstErr != nil {
		return nil, p.firstErr
	}

	if err := p.builder.Finalize(); err != nil {
		return nil, err
	}

	// A preferences-only invocation opens no terminal; every other one
	// resolves to at least one window.
	if !plan.ShowPreferences {
		p.builder.EnsureWindow()
	}

	if plan.StartupID == "" {
		cfg.Log.Detailf("%s not set and no fallback available", EnvStartupID)
	}

	plan.Verbosity = cfg.Log.Verbosity()
	return plan, nil
}

// splitCommandTail finds the first -x, --execute, or -- token; the
// remainder of the argument list is captured verbatim as the command
// tail. execute reports whether the legacy flag (not the terminator)
// ended the scan.
func splitCommandTail(args []string) (remaining, tail []string, execute bool) {
	for i, a := range args {
		isExecute := a == "-x" || a == "--execute"
		if !isExecute && a != "--" {
			continue
		}
		rest := args[i+1:]
		if len(rest) > 0 {
			tail = append([]string(nil), rest...)
		}
		return args[:i], tail, isExecute
	}
	return args, nil, false
}

type parser struct {
	cfg      Config
	builder  *launch.Builder
	firstErr error
}

func (p *parser) collectEnvironment(plan *launch.Plan) {
	if id := p.cfg.Getenv(EnvStartupID); id != "" {
		plan.StartupID = id
	}
	plan.DisplayName = p.cfg.Getenv(EnvDisplay)

	if name := p.cfg.Getenv(EnvService); name != "" {
		if busname.IsValidUniqueName(name) {
			plan.ServerUniqueName = name
		} else {
			p.cfg.Log.Warnf("%s set but %q is not a unique bus name", EnvService, name)
		}
	}

	if path := p.cfg.Getenv(EnvScreen); path != "" {
		if busname.IsValidObjectPath(path) {
			plan.ParentScreenPath = path
		} else {
			p.cfg.Log.Warnf("%s set but %q is not a valid object path", EnvScreen, path)
		}
	}
}

func (p *parser) warnDeprecatedCommand(option string) {
	p.cfg.Log.Warnf("option %q is deprecated and might be removed in a later version of termlaunch", option)
	p.cfg.Log.Warnf("use %q to terminate the options and put the command line to execute after it", "-- ")
}

// handler adapts an option callback to pflag.Value. argName is the
// metavariable shown in help; empty for no-argument options.
type handler struct {
	argName string
	set     func(string) error
}

func (h *handler) String() string { return "" }
func (h *handler) Type() string   { return h.argName }
func (h *handler) Set(v string) error {
	return h.set(v)
}

type flagSpec struct {
	name      string
	shorthand string
	argName   string // empty: no argument
	optional  bool   // argument may be omitted
	hidden    bool
	usage     string
	apply     func(value string) error
}

func (p *parser) newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("termlaunch", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	for _, spec := range p.flagSpecs() {
		spec := spec
		h := &handler{
			argName: spec.argName,
			set: func(v string) error {
				if v == optionalValue {
					v = ""
				}
				err := spec.apply(v)
				if err != nil && p.firstErr == nil {
					p.firstErr = err
				}
				return err
			},
		}
		if h.argName == "" {
			h.argName = "bool"
		}

		fs.VarP(h, spec.name, spec.shorthand, spec.usage)
		f := fs.Lookup(spec.name)
		switch {
		case spec.argName == "":
			f.NoOptDefVal = "true"
		case spec.optional:
			f.NoOptDefVal = optionalValue
		}
		if spec.hidden {
			_ = fs.MarkHidden(spec.name)
		}
	}

	return fs
}

func (p *parser) event(op launch.Op, option string) func(string) error {
	return func(v string) error {
		return p.builder.Apply(launch.Event{Op: op, Option: option, Value: v})
	}
}

func (p *parser) mergeConfigFile(source launch.Source) func(string) error {
	return func(path string) error {
		f, err := keyfile.Load(path)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeBadValue, "loading configuration file").
				WithDetail("path", path)
		}
		return launch.MergeConfig(p.builder.Plan(), f, source)
	}
}

func (p *parser) retired(name string) func(string) error {
	return func(string) error {
		if retiredOptions[name].fatal {
			return errors.UnsupportedOption("--" + name)
		}
		p.cfg.Log.Warnf("option %q is no longer supported in this version of termlaunch", "--"+name)
		return nil
	}
}

func (p *parser) flagSpecs() []flagSpec {
	plan := p.builder.Plan()

	specs := []flagSpec{
		// Global options, usable once per invocation.
		{name: "app-id", argName: "ID", hidden: true,
			usage: "Server application ID",
			apply: p.event(launch.OpAppID, "--app-id")},
		{name: "load-config", argName: "FILE",
			usage: "Load a saved launch configuration file",
			apply: p.mergeConfigFile(launch.SourceDefault)},
		{name: "preferences",
			usage: "Show the preferences window",
			apply: func(string) error { plan.ShowPreferences = true; return nil }},
		{name: "print-environment", shorthand: "p",
			usage: "Print environment variables to interact with the terminal",
			apply: func(string) error { plan.PrintEnvironment = true; return nil }},
		{name: "version", hidden: true,
			usage: "Print the version and exit",
			apply: func(string) error {
				fmt.Fprintf(p.cfg.Stdout, "termlaunch %s\n", version.Version)
				p.cfg.Exit(0)
				return nil
			}},
		{name: "verbose", shorthand: "v",
			usage: "Increase diagnostic verbosity",
			apply: func(string) error { p.cfg.Log.Louder(); return nil }},
		{name: "quiet", shorthand: "q",
			usage: "Suppress output",
			apply: func(string) error { p.cfg.Log.Quieter(); return nil }},

		// Window and tab creation; may be used repeatedly.
		{name: "window", argName: "PROFILE", optional: true,
			usage: "Open a new window containing a tab with the given or default profile",
			apply: p.event(launch.OpNewWindow, "--window")},
		{name: "tab", argName: "PROFILE", optional: true,
			usage: "Open a new tab in the last-opened window with the given or default profile",
			apply: p.event(launch.OpNewTab, "--tab")},

		// Per-window options; before the first --window or --tab they
		// set the defaults for all windows.
		{name: "show-menubar",
			usage: "Turn on the menubar",
			apply: p.event(launch.OpShowMenubar, "--show-menubar")},
		{name: "hide-menubar",
			usage: "Turn off the menubar",
			apply: p.event(launch.OpHideMenubar, "--hide-menubar")},
		{name: "maximize",
			usage: "Maximize the window",
			apply: p.event(launch.OpMaximize, "--maximize")},
		{name: "full-screen",
			usage: "Full-screen the window",
			apply: p.event(launch.OpFullscreen, "--full-screen")},
		{name: "geometry", argName: "GEOMETRY",
			usage: "Set the window size; for example: 80x24, or 80x24+200+200 (COLSxROWS+X+Y)",
			apply: p.event(launch.OpGeometry, "--geometry")},
		{name: "role", argName: "ROLE",
			usage: "Set the window role",
			apply: p.event(launch.OpRole, "--role")},
		{name: "active",
			usage: "Set the last specified tab as the active one in its window",
			apply: p.event(launch.OpActive, "--active")},

		// Per-tab options; before the first --window or --tab they set
		// the defaults for all tabs.
		{name: "command", shorthand: "e", argName: "CMD",
			usage: "Execute the argument to this option inside the terminal",
			apply: func(v string) error {
				return p.builder.Apply(launch.Event{Op: launch.OpCommand, Option: "--command/-e", Value: v})
			}},
		{name: "profile", argName: "PROFILE-NAME",
			usage: "Use the given profile instead of the default profile",
			apply: p.event(launch.OpProfile, "--profile")},
		{name: "title", shorthand: "t", argName: "TITLE",
			usage: "Set the initial terminal title",
			apply: p.event(launch.OpTitle, "--title")},
		{name: "working-directory", argName: "DIRNAME",
			usage: "Set the working directory",
			apply: p.event(launch.OpWorkingDirectory, "--working-directory")},
		{name: "wait",
			usage: "Wait until the child exits",
			apply: p.event(launch.OpWait, "--wait")},
		{name: "fd", argName: "FD",
			usage: "Forward file descriptor",
			apply: p.event(launch.OpPassFD, "--fd")},
		{name: "zoom", argName: "ZOOM",
			usage: "Set the terminal's zoom factor (1.0 = normal size)",
			apply: p.event(launch.OpZoom, "--zoom")},

		// Internal options used by server hand-offs; hidden.
		{name: "profile-id", argName: "ID", hidden: true,
			apply: p.event(launch.OpProfileID, "--profile-id")},
		{name: "window-with-profile", argName: "PROFILE", hidden: true,
			apply: p.event(launch.OpNewWindow, "--window-with-profile")},
		{name: "tab-with-profile", argName: "PROFILE", hidden: true,
			apply: p.event(launch.OpNewTab, "--tab-with-profile")},
		{name: "window-with-profile-internal-id", argName: "ID", hidden: true,
			apply: p.event(launch.OpNewWindow, "--window-with-profile-internal-id")},
		{name: "tab-with-profile-internal-id", argName: "ID", hidden: true,
			apply: p.event(launch.OpNewTab, "--tab-with-profile-internal-id")},
		{name: "default-working-directory", argName: "DIRNAME", hidden: true,
			apply: func(v string) error { plan.Defaults.WorkingDir = v; return nil }},
		{name: "startup-id", argName: "ID", hidden: true,
			apply: func(v string) error { plan.StartupID = v; return nil }},

		// Session management.
		{name: "sm-client-disable", hidden: true,
			apply: func(string) error { plan.SMClientDisable = true; return nil }},
		{name: "sm-disable", hidden: true,
			apply: func(string) error { plan.SMClientDisable = true; return nil }},
		{name: "sm-client-state-file", argName: "FILE", hidden: true,
			apply: p.mergeConfigFile(launch.SourceSession)},
		{name: "sm-client-id", argName: "ID", hidden: true,
			apply: func(v string) error { plan.SMClientID = v; return nil }},
		{name: "sm-config-prefix", argName: "PREFIX", hidden: true,
			apply: func(v string) error { plan.SMConfigPrefix = v; return nil }},
	}

	for name, r := range retiredOptions {
		spec := flagSpec{name: name, hidden: true, apply: p.retired(name)}
		if r.takesArg {
			spec.argName = "FILE"
		}
		specs = append(specs, spec)
	}

	return specs
}
