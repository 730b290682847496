// Package launch turns an ordered stream of recognized command-line
// options, plus optional saved configurations, into a resolved launch
// plan: an ordered tree of windows, each holding an ordered list of tabs.
package launch

// Source tags where a window came from.
type Source string

const (
	// SourceCLI marks windows built from live command-line options.
	SourceCLI Source = "cli"
	// SourceDefault marks windows merged from a --load-config document.
	SourceDefault Source = "default"
	// SourceSession marks windows merged from session-management state.
	SourceSession Source = "session"
)

// Zoom factor bounds. Explicit values outside the range are clamped with
// a diagnostic; ZoomDefault is the neutral factor.
const (
	ZoomMin     = 0.25
	ZoomMax     = 4.0
	ZoomDefault = 1.0

	zoomEpsilon = 1e-6
)

// PassFD is one forwarded file descriptor: the target number the child
// will see, and the transport slot the descriptor travels in.
type PassFD struct {
	Index int `json:"index"`
	FD    int `json:"fd"`
}

// Tab is one terminal tab to open.
type Tab struct {
	Profile    string   `json:"profile,omitempty"`
	ExecArgv   []string `json:"exec_argv,omitempty"`
	Title      string   `json:"title,omitempty"`
	WorkingDir string   `json:"working_dir,omitempty"`
	Zoom       float64  `json:"zoom"`
	ZoomSet    bool     `json:"zoom_set"`
	Active     bool     `json:"active"`
	Wait       bool     `json:"wait,omitempty"`
	FDs        []PassFD `json:"fds,omitempty"`
}

func newTab(profileID string) *Tab {
	return &Tab{Profile: profileID, Zoom: ZoomDefault}
}

// Window is one window to open. Its tab list is never empty.
type Window struct {
	Tabs           []*Tab `json:"tabs"`
	Role           string `json:"role,omitempty"`
	Geometry       string `json:"geometry,omitempty"`
	ForceMenubar   bool   `json:"force_menubar"`
	MenubarVisible bool   `json:"menubar_visible"`
	Fullscreen     bool   `json:"fullscreen"`
	Maximized      bool   `json:"maximized"`

	// Implicit marks a window a consuming layer may fold into an
	// already-running instance instead of opening fresh.
	Implicit bool   `json:"implicit"`
	Source   Source `json:"source"`

	// roleSet tracks explicit role events only; a role applied from
	// pending defaults does not count against the once-per-window rule.
	roleSet bool
}

func (w *Window) lastTab() *Tab {
	return w.Tabs[len(w.Tabs)-1]
}

// ActiveTab returns the active tab of the window. Multiple tabs may be
// marked active (repeated --active is never rejected); the last marked
// one wins. Falls back to the first tab.
func (w *Window) ActiveTab() *Tab {
	for i := len(w.Tabs) - 1; i >= 0; i-- {
		if w.Tabs[i].Active {
			return w.Tabs[i]
		}
	}
	return w.Tabs[0]
}

// Plan is the root result of parsing. Windows are ordered; fields outside
// the window list are global fallbacks for the consuming layer.
type Plan struct {
	Windows []*Window `json:"windows"`

	// Defaults holds the pending per-window/per-tab values that were
	// never consumed by a window creation; the consumer treats the
	// tab-scoped ones as plan-wide fallbacks.
	Defaults Defaults `json:"defaults"`

	// ExecArgv is the command captured after the
	// terminator token when no window claimed it.
	ExecArgv []string `json:"exec_argv,omitempty"`

	StartupID        string `json:"startup_id,omitempty"`
	DisplayName      string `json:"display_name,omitempty"`
	ServerAppID      string `json:"server_app_id,omitempty"`
	ServerUniqueName string `json:"server_unique_name,omitempty"`
	ParentScreenPath string `json:"parent_screen_path,omitempty"`

	ShowPreferences  bool `json:"show_preferences,omitempty"`
	PrintEnvironment bool `json:"print_environment,omitempty"`
	AnyWait          bool `json:"any_wait,omitempty"`
	Verbosity        int  `json:"verbosity"`

	SMClientDisable bool   `json:"sm_client_disable,omitempty"`
	SMClientID      string `json:"sm_client_id,omitempty"`
	SMConfigPrefix  string `json:"sm_config_prefix,omitempty"`
}

// NewPlan creates an empty plan.
func NewPlan() *Plan {
	return &Plan{
		Defaults:  Defaults{Zoom: ZoomDefault},
		Verbosity: 1,
	}
}

func (p *Plan) currentWindow() *Window {
	if len(p.Windows) == 0 {
		return nil
	}
	return p.Windows[len(p.Windows)-1]
}

// FirstTab returns the first tab of the first window, or nil when the
// plan has no windows yet.
func (p *Plan) FirstTab() *Tab {
	if len(p.Windows) == 0 {
		return nil
	}
	return p.Windows[0].Tabs[0]
}
