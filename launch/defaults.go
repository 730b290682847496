package launch

// Defaults holds field values set before the first window or tab exists.
// Window-scoped values are consumed by window creation; tab-scoped values
// (profile, title, working directory, zoom) remain as plan-wide fallbacks
// for the consuming layer.
type Defaults struct {
	Profile    string  `json:"profile,omitempty"`
	Role       string  `json:"role,omitempty"`
	Geometry   string  `json:"geometry,omitempty"`
	Title      string  `json:"title,omitempty"`
	WorkingDir string  `json:"working_dir,omitempty"`
	Fullscreen bool    `json:"fullscreen,omitempty"`
	Maximize   bool    `json:"maximize,omitempty"`
	Zoom       float64 `json:"zoom"`
	ZoomSet    bool    `json:"zoom_set"`

	MenubarForced  bool `json:"menubar_forced,omitempty"`
	MenubarVisible bool `json:"menubar_visible,omitempty"`
}

// applyToWindow moves the pending window-scoped defaults into a freshly
// created window. The role transfers (one window gets it), the menubar
// force-state is one-shot, geometry copies, and the fullscreen/maximize
// booleans accumulate.
func (d *Defaults) applyToWindow(w *Window) {
	if d.Role != "" {
		w.Role = d.Role
		d.Role = ""
	}

	if w.Geometry == "" {
		w.Geometry = d.Geometry
	}

	if d.MenubarForced {
		w.ForceMenubar = true
		w.MenubarVisible = d.MenubarVisible
		d.MenubarForced = false
	}

	w.Fullscreen = w.Fullscreen || d.Fullscreen
	w.Maximized = w.Maximized || d.Maximize
}
