package launch

import (
	"math"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/grovetools/termlaunch/busname"
	"github.com/grovetools/termlaunch/errors"
	"github.com/grovetools/termlaunch/logging"
)

// ProfileResolver resolves profile references to profile ids.
type ProfileResolver interface {
	// ResolveNameOrID resolves a UUID-or-display-name reference; an
	// empty reference resolves to the default profile.
	ResolveNameOrID(ref string) (string, error)
	// ResolveID resolves strictly by UUID.
	ResolveID(id string) (string, error)
}

// Config carries the builder's collaborators.
type Config struct {
	Log       *logging.Logger
	Profiles  ProfileResolver
	Transport FDTransport

	// TabFirst is the externally-read new-terminal mode: when true, a
	// first window created by a tab event is marked implicit.
	TabFirst bool
}

// Builder consumes option events in order and grows a Plan. It keeps two
// cursors: the current window (last in the plan) and the current tab
// (last tab of the current window).
type Builder struct {
	plan      *Plan
	log       *logging.Logger
	profiles  ProfileResolver
	transport FDTransport
	tabFirst  bool

	anyWait bool
	execute bool
}

// NewBuilder creates a builder over a fresh plan.
func NewBuilder(cfg Config) *Builder {
	log := cfg.Log
	if log == nil {
		log = logging.New()
	}
	transport := cfg.Transport
	if transport == nil {
		transport = NewUnixFDList()
	}
	return &Builder{
		plan:      NewPlan(),
		log:       log,
		profiles:  cfg.Profiles,
		transport: transport,
		tabFirst:  cfg.TabFirst,
	}
}

// Plan returns the plan under construction.
func (b *Builder) Plan() *Plan {
	return b.plan
}

// SetExecuteTail records the pre-scanned command tail. execute is true
// when the tail followed the legacy -x/--execute flag rather than the
// terminator token.
func (b *Builder) SetExecuteTail(argv []string, execute bool) {
	b.execute = execute
	if len(argv) > 0 {
		b.plan.ExecArgv = argv
	}
}

// Apply dispatches one option event. An error aborts the whole parse;
// the caller discards the plan.
func (b *Builder) Apply(ev Event) error {
	switch ev.Op {
	case OpNewWindow:
		return b.newWindowEvent(ev.Value)
	case OpNewTab:
		return b.newTabEvent(ev.Value)
	case OpProfile:
		return b.profileEvent(ev.Value)
	case OpProfileID:
		return b.profileIDEvent(ev.Value)
	case OpRole:
		return b.roleEvent(ev.Value)
	case OpShowMenubar:
		b.menubarEvent(ev.Option, true)
	case OpHideMenubar:
		b.menubarEvent(ev.Option, false)
	case OpMaximize:
		b.maximizeEvent()
	case OpFullscreen:
		b.fullscreenEvent()
	case OpGeometry:
		b.geometryEvent(ev.Value)
	case OpTitle:
		b.titleEvent(ev.Value)
	case OpWorkingDirectory:
		b.workingDirectoryEvent(ev.Value)
	case OpCommand:
		return b.commandEvent(ev.Option, ev.Value)
	case OpWait:
		return b.waitEvent(ev.Option)
	case OpPassFD:
		return b.passFDEvent(ev.Option, ev.Value)
	case OpActive:
		b.ensureTab().Active = true
	case OpZoom:
		return b.zoomEvent(ev.Option, ev.Value)
	case OpAppID:
		return b.appIDEvent(ev.Option, ev.Value)
	default:
		return errors.New(errors.ErrCodeInternal, "unhandled option event")
	}
	return nil
}

// addWindow appends a window with its first tab and applies the pending
// defaults. fromTabEvent gates implicit-first-window eligibility on the
// externally-read tab-first mode.
func (b *Builder) addWindow(profileID string, fromTabEvent bool) *Window {
	w := &Window{Source: SourceCLI}
	w.Implicit = len(b.plan.Windows) == 0 && fromTabEvent && b.tabFirst
	w.Tabs = []*Tab{newTab(profileID)}
	b.plan.Defaults.applyToWindow(w)

	b.plan.Windows = append(b.plan.Windows, w)
	return w
}

func (b *Builder) ensureWindow(fromTabEvent bool) *Window {
	if w := b.plan.currentWindow(); w != nil {
		return w
	}
	return b.addWindow("", fromTabEvent)
}

// ensureTab returns the current tab, creating an implicit-eligible first
// window if none exists. Tab-scoped options issued before any explicit
// window or tab event land here.
func (b *Builder) ensureTab() *Tab {
	return b.ensureWindow(true).lastTab()
}

func (b *Builder) newWindowEvent(ref string) error {
	var profileID string
	if ref != "" {
		id, err := b.resolveWithFallback(ref)
		if err != nil {
			return err
		}
		profileID = id
	}
	b.addWindow(profileID, false)
	return nil
}

func (b *Builder) newTabEvent(ref string) error {
	var profileID string
	if ref != "" {
		// Unlike --window, a tab event has no default-profile fallback.
		id, err := b.profiles.ResolveNameOrID(ref)
		if err != nil {
			return err
		}
		profileID = id
	}

	if w := b.plan.currentWindow(); w != nil {
		w.Tabs = append(w.Tabs, newTab(profileID))
		return nil
	}
	b.addWindow(profileID, true)
	return nil
}

// resolveWithFallback resolves a profile reference, retrying once with
// the default profile after a diagnostic. The second failure is fatal.
func (b *Builder) resolveWithFallback(ref string) (string, error) {
	id, err := b.profiles.ResolveNameOrID(ref)
	if err == nil {
		return id, nil
	}
	b.log.Warnf("profile %q specified but not found, attempting to fall back to the default profile", ref)
	return b.profiles.ResolveNameOrID("")
}

func (b *Builder) profileEvent(ref string) error {
	id, err := b.resolveWithFallback(ref)
	if err != nil {
		return err
	}
	if len(b.plan.Windows) > 0 {
		b.ensureTab().Profile = id
	} else {
		b.plan.Defaults.Profile = id
	}
	return nil
}

func (b *Builder) profileIDEvent(ref string) error {
	id, err := b.profiles.ResolveID(ref)
	if err != nil {
		return err
	}
	if len(b.plan.Windows) > 0 {
		b.ensureTab().Profile = id
	} else {
		b.plan.Defaults.Profile = id
	}
	return nil
}

func (b *Builder) roleEvent(role string) error {
	if w := b.plan.currentWindow(); w != nil {
		if w.roleSet {
			return errors.UsageConflict("two roles given for one window")
		}
		w.Role = role
		w.roleSet = true
		return nil
	}
	// As a pending default the last role wins; it transfers into the
	// next created window.
	b.plan.Defaults.Role = role
	return nil
}

func (b *Builder) menubarEvent(option string, visible bool) {
	w := b.plan.currentWindow()
	if w == nil {
		b.plan.Defaults.MenubarForced = true
		b.plan.Defaults.MenubarVisible = visible
		return
	}

	if w.ForceMenubar {
		// The first forced state for a window wins; repeats and
		// contradictions are tolerated without changing it.
		if w.MenubarVisible == visible {
			b.log.Detailf("option %q given twice for the same window", option)
		} else {
			b.log.Warnf("option %q ignored, menubar state was already set for this window", option)
		}
		return
	}

	w.ForceMenubar = true
	w.MenubarVisible = visible
}

func (b *Builder) maximizeEvent() {
	if w := b.plan.currentWindow(); w != nil {
		w.Maximized = true
		return
	}
	b.plan.Defaults.Maximize = true
}

func (b *Builder) fullscreenEvent() {
	if w := b.plan.currentWindow(); w != nil {
		w.Fullscreen = true
		return
	}
	b.plan.Defaults.Fullscreen = true
}

func (b *Builder) geometryEvent(geometry string) {
	// Stored verbatim; parsing the COLSxROWS+X+Y form is the window
	// layer's job. Repeated use overwrites.
	if w := b.plan.currentWindow(); w != nil {
		w.Geometry = geometry
		return
	}
	b.plan.Defaults.Geometry = geometry
}

func (b *Builder) titleEvent(title string) {
	if len(b.plan.Windows) > 0 {
		b.ensureTab().Title = title
	} else {
		b.plan.Defaults.Title = title
	}
}

func (b *Builder) workingDirectoryEvent(dir string) {
	if len(b.plan.Windows) > 0 {
		b.ensureTab().WorkingDir = dir
	} else {
		b.plan.Defaults.WorkingDir = dir
	}
}

func (b *Builder) commandEvent(option, value string) error {
	b.warnDeprecatedCommand(option)

	argv, err := shellquote.Split(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBadValue,
			"argument to --command/-e is not a valid command").
			WithDetail("option", option)
	}

	if len(b.plan.Windows) > 0 {
		b.ensureTab().ExecArgv = argv
	} else {
		// Held as the plan's single pending legacy command and digested
		// by Finalize.
		b.plan.ExecArgv = argv
	}
	return nil
}

func (b *Builder) warnDeprecatedCommand(option string) {
	b.log.Warnf("option %q is deprecated and might be removed in a later version of termlaunch", option)
	b.log.Warnf("use %q to terminate the options and put the command line to execute after it", "-- ")
}

func (b *Builder) waitEvent(option string) error {
	if b.anyWait {
		return errors.UsageConflict("can only use %s once", option)
	}
	b.anyWait = true
	b.plan.AnyWait = true
	b.ensureTab().Wait = true
	return nil
}

func (b *Builder) passFDEvent(option, value string) error {
	fd, err := strconv.Atoi(value)
	if err != nil || fd < 0 {
		return errors.BadValue(option, "failed to parse %q as file descriptor number", value)
	}

	switch fd {
	case 0, 1, 2:
		name := [...]string{"stdin", "stdout", "stderr"}[fd]
		return errors.BadValue(option, "FD passing of %s is not supported", name)
	}

	tab := b.ensureTab()
	return tab.addPassFD(fd, b.transport)
}

func (b *Builder) zoomEvent(option, value string) error {
	zoom, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return errors.BadValue(option, "%q is not a valid zoom factor", value)
	}

	if zoom < ZoomMin+zoomEpsilon {
		b.log.Warnf("zoom factor %g is too small, using %g", zoom, ZoomMin)
		zoom = ZoomMin
	}
	if zoom > ZoomMax-zoomEpsilon {
		b.log.Warnf("zoom factor %g is too large, using %g", zoom, ZoomMax)
		zoom = ZoomMax
	}

	if len(b.plan.Windows) > 0 {
		tab := b.ensureTab()
		tab.Zoom = zoom
		tab.ZoomSet = true
	} else {
		b.plan.Defaults.Zoom = zoom
		b.plan.Defaults.ZoomSet = true
	}
	return nil
}

func (b *Builder) appIDEvent(option, value string) error {
	if !busname.IsValidAppID(value) {
		return errors.BadValue(option, "%q is not a valid application ID", value)
	}
	b.plan.ServerAppID = value
	return nil
}
