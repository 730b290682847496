package launch

import (
	"github.com/grovetools/termlaunch/errors"
)

// Finalize digests the pending legacy command after all options and
// config merges have been consumed. The legacy -x/--execute flag with no
// trailing command is an error; a pending command vector moves onto the
// first tab of the plan.
func (b *Builder) Finalize() error {
	if b.execute && b.plan.ExecArgv == nil {
		return errors.BadValue("--execute/-x",
			"option %q requires specifying the command to run on the rest of the command line",
			"--execute/-x")
	}

	if b.plan.ExecArgv != nil {
		b.ensureTab()
		b.plan.FirstTab().ExecArgv = b.plan.ExecArgv
		b.plan.ExecArgv = nil
	}

	return nil
}

// EnsureWindow guarantees the plan contains at least one window, creating
// an implicit-eligible one when the externally-read new-terminal mode is
// tab-first.
func (b *Builder) EnsureWindow() {
	b.ensureWindow(true)
}
