package launch

// Op identifies one of the closed set of option behaviors. Every
// recognized command-line option maps onto exactly one Op; the option
// token source delivers them to the builder in command-line order.
type Op int

const (
	// OpNewWindow appends a new window (optional profile reference).
	OpNewWindow Op = iota
	// OpNewTab appends a tab to the current window, or creates an
	// implicit-eligible first window (optional profile reference).
	OpNewTab
	// OpProfile sets the current tab's profile by UUID or display name,
	// falling back to the default profile once on lookup failure.
	OpProfile
	// OpProfileID sets the current tab's profile strictly by UUID.
	OpProfileID
	// OpRole sets the window role; once per window.
	OpRole
	// OpShowMenubar and OpHideMenubar force the menubar state; the first
	// forced state for a window wins.
	OpShowMenubar
	OpHideMenubar
	// OpMaximize and OpFullscreen are monotonic window booleans.
	OpMaximize
	OpFullscreen
	// OpGeometry stores the geometry string verbatim; last write wins.
	OpGeometry
	// OpTitle and OpWorkingDirectory are last-write-wins tab fields.
	OpTitle
	OpWorkingDirectory
	// OpCommand is the deprecated --command/-e shell-string option.
	OpCommand
	// OpWait marks the current tab wait-for-exit; once per plan.
	OpWait
	// OpPassFD forwards a file descriptor to the current tab.
	OpPassFD
	// OpActive marks the current tab active in its window.
	OpActive
	// OpZoom sets the zoom factor, clamped to [ZoomMin, ZoomMax].
	OpZoom
	// OpAppID sets the validated server application id.
	OpAppID
)

// Event is one recognized option occurrence. Option carries the spelling
// used on the command line for diagnostics; Value is empty for no-argument
// options.
type Event struct {
	Op     Op
	Option string
	Value  string
}
