package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/termlaunch/errors"
)

func TestExecuteWithoutCommand(t *testing.T) {
	env := newTestEnv(false)
	env.builder.SetExecuteTail(nil, true)

	err := env.builder.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeBadValue))
	assert.Contains(t, err.Error(), "requires specifying the command")
}

func TestDashDashCommandTail(t *testing.T) {
	// `-- ls -la` with no preceding --window/--tab
	env := newTestEnv(false)
	env.builder.SetExecuteTail([]string{"ls", "-la"}, false)
	require.NoError(t, env.builder.Finalize())

	plan := env.builder.Plan()
	require.Len(t, plan.Windows, 1)
	require.Len(t, plan.Windows[0].Tabs, 1)
	assert.Equal(t, []string{"ls", "-la"}, plan.Windows[0].Tabs[0].ExecArgv)
	assert.Nil(t, plan.ExecArgv)
}

func TestLegacyCommandAppliesToFirstTab(t *testing.T) {
	// The pending command lands on the plan's first tab, not the
	// current one.
	env := newTestEnv(false)
	env.builder.SetExecuteTail([]string{"vi", "notes"}, true)
	env.apply(t,
		Event{Op: OpNewWindow},
		Event{Op: OpNewWindow},
		Event{Op: OpNewTab},
	)
	require.NoError(t, env.builder.Finalize())

	plan := env.builder.Plan()
	assert.Equal(t, []string{"vi", "notes"}, plan.Windows[0].Tabs[0].ExecArgv)
	assert.Nil(t, plan.Windows[1].Tabs[0].ExecArgv)
	assert.Nil(t, plan.Windows[1].Tabs[1].ExecArgv)
}

func TestFinalizeWithoutCommandIsNoop(t *testing.T) {
	env := newTestEnv(false)
	env.apply(t, Event{Op: OpNewWindow})
	require.NoError(t, env.builder.Finalize())
	assert.Len(t, env.builder.Plan().Windows, 1)
}

func TestEnsureWindow(t *testing.T) {
	env := newTestEnv(false)
	env.builder.EnsureWindow()
	plan := env.builder.Plan()
	require.Len(t, plan.Windows, 1)
	require.Len(t, plan.Windows[0].Tabs, 1)
	assert.False(t, plan.Windows[0].Implicit)

	// Idempotent
	env.builder.EnsureWindow()
	assert.Len(t, plan.Windows, 1)
}

func TestEnsureWindowTabFirstMode(t *testing.T) {
	env := newTestEnv(true)
	env.builder.EnsureWindow()
	assert.True(t, env.builder.Plan().Windows[0].Implicit)
}
