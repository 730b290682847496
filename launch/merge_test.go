package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/termlaunch/errors"
	"github.com/grovetools/termlaunch/keyfile"
)

func parseDoc(t *testing.T, doc string) *keyfile.File {
	t.Helper()
	f, err := keyfile.Parse([]byte(doc))
	require.NoError(t, err)
	return f
}

const sessionDoc = `[Launch Configuration]
Version=1
CompatVersion=1
Windows=Window0;Window1;

[Window0]
Tabs=Terminal0;Terminal1;
ActiveTab=Terminal1
Role=session
Geometry=132x43
Maximized=true
MenubarVisible=false

[Terminal0]
ProfileID=b1dcc9dd-5262-4d8d-a863-c897e6d979b9
Title=editor
WorkingDirectory=/home/user/src
Command=vi notes.txt

[Terminal1]
Title=logs

[Window1]
Tabs=Terminal2;

[Terminal2]
WorkingDirectory=/var/log
`

func TestMergeConfig(t *testing.T) {
	plan := NewPlan()
	require.NoError(t, MergeConfig(plan, parseDoc(t, sessionDoc), SourceSession))

	require.Len(t, plan.Windows, 2)

	w := plan.Windows[0]
	assert.Equal(t, SourceSession, w.Source)
	assert.Equal(t, "session", w.Role)
	assert.Equal(t, "132x43", w.Geometry)
	assert.True(t, w.Maximized)
	assert.False(t, w.Fullscreen)
	assert.True(t, w.ForceMenubar)
	assert.False(t, w.MenubarVisible)

	require.Len(t, w.Tabs, 2)
	assert.Equal(t, "b1dcc9dd-5262-4d8d-a863-c897e6d979b9", w.Tabs[0].Profile)
	assert.Equal(t, "editor", w.Tabs[0].Title)
	assert.Equal(t, "/home/user/src", w.Tabs[0].WorkingDir)
	assert.Equal(t, []string{"vi", "notes.txt"}, w.Tabs[0].ExecArgv)

	assert.False(t, w.Tabs[0].Active)
	assert.True(t, w.Tabs[1].Active)
	assert.Nil(t, w.Tabs[1].ExecArgv, "tabs without a Command key have no preset command")
	assert.Same(t, w.Tabs[1], w.ActiveTab())

	assert.Equal(t, "/var/log", plan.Windows[1].Tabs[0].WorkingDir)
}

func TestMergeAppendsAfterExistingWindows(t *testing.T) {
	env := newTestEnv(false)
	env.apply(t, Event{Op: OpNewWindow}, Event{Op: OpTitle, Value: "cli"})
	plan := env.builder.Plan()

	require.NoError(t, MergeConfig(plan, parseDoc(t, sessionDoc), SourceDefault))
	require.Len(t, plan.Windows, 3)
	assert.Equal(t, SourceCLI, plan.Windows[0].Source)
	assert.Equal(t, "cli", plan.Windows[0].Tabs[0].Title)
	assert.Equal(t, SourceDefault, plan.Windows[1].Source)
}

func TestMergeNotAConfigFile(t *testing.T) {
	plan := NewPlan()
	err := MergeConfig(plan, parseDoc(t, "[Something Else]\nVersion=1\n"), SourceDefault)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfigFile))
	assert.Empty(t, plan.Windows)
}

func TestMergeIncompatibleVersions(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"zero compat", "[Launch Configuration]\nVersion=1\nCompatVersion=0\nWindows=W;\n"},
		{"compat above max", "[Launch Configuration]\nVersion=1\nCompatVersion=99\nWindows=W;\n"},
		{"missing version", "[Launch Configuration]\nCompatVersion=1\nWindows=W;\n"},
		{"negative version", "[Launch Configuration]\nVersion=-1\nCompatVersion=1\nWindows=W;\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := NewPlan()
			err := MergeConfig(plan, parseDoc(t, tc.doc), SourceDefault)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeIncompatibleConfigFile))
			assert.Empty(t, plan.Windows)
		})
	}
}

func TestMergeMissingWindowsKey(t *testing.T) {
	plan := NewPlan()
	err := MergeConfig(plan, parseDoc(t, "[Launch Configuration]\nVersion=1\nCompatVersion=1\n"), SourceDefault)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfigFile))
}

func TestMergeWindowWithoutTabsIsSkipped(t *testing.T) {
	doc := `[Launch Configuration]
Version=1
CompatVersion=1
Windows=Window0;Window1;

[Window0]
Role=orphan

[Window1]
Tabs=Terminal0;

[Terminal0]
Title=kept
`
	plan := NewPlan()
	require.NoError(t, MergeConfig(plan, parseDoc(t, doc), SourceDefault))
	require.Len(t, plan.Windows, 1)
	assert.Equal(t, "kept", plan.Windows[0].Tabs[0].Title)
}

func TestMergeBadCommandAbortsAtomically(t *testing.T) {
	doc := `[Launch Configuration]
Version=1
CompatVersion=1
Windows=Window0;Window1;

[Window0]
Tabs=Terminal0;

[Terminal0]
Title=fine

[Window1]
Tabs=Terminal1;

[Terminal1]
Command=sh -c "unterminated
`
	env := newTestEnv(false)
	env.apply(t, Event{Op: OpNewWindow})
	plan := env.builder.Plan()

	err := MergeConfig(plan, parseDoc(t, doc), SourceSession)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeBadValue))

	// The failing merge contributed nothing; earlier state is intact
	require.Len(t, plan.Windows, 1)
	assert.Equal(t, SourceCLI, plan.Windows[0].Source)
}

func TestMergeAppliesPendingDefaults(t *testing.T) {
	doc := `[Launch Configuration]
Version=1
CompatVersion=1
Windows=Window0;

[Window0]
Tabs=Terminal0;

[Terminal0]
Title=t
`
	env := newTestEnv(false)
	env.apply(t, Event{Op: OpFullscreen})
	plan := env.builder.Plan()

	require.NoError(t, MergeConfig(plan, parseDoc(t, doc), SourceDefault))
	assert.True(t, plan.Windows[0].Fullscreen)
}

func TestMergeEscapedWorkingDirectory(t *testing.T) {
	doc := `[Launch Configuration]
Version=1
CompatVersion=1
Windows=Window0;

[Window0]
Tabs=Terminal0;

[Terminal0]
WorkingDirectory=/tmp/with\\040space
`
	plan := NewPlan()
	require.NoError(t, MergeConfig(plan, parseDoc(t, doc), SourceDefault))
	assert.Equal(t, "/tmp/with space", plan.Windows[0].Tabs[0].WorkingDir)
}
