package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/pkg/core"
)

type fakeSensor struct {
	pose     core.Transform
	poses    int
	ignored  map[core.ActorID]bool
	headless bool
	cleared  bool
}

func newFakeSensor() *fakeSensor {
	return &fakeSensor{ignored: make(map[core.ActorID]bool)}
}

func (f *fakeSensor) SetPose(pose core.Transform)       { f.pose = pose; f.poses++ }
func (f *fakeSensor) IgnoreVehicle(id core.ActorID)     { f.ignored[id] = true }
func (f *fakeSensor) UnignoreVehicle(id core.ActorID)   { delete(f.ignored, id) }
func (f *fakeSensor) ClearIgnored()                     { f.cleared = true }
func (f *fakeSensor) SetHeadless(headless bool)         { f.headless = headless }

func newCommandDispatcher(t *testing.T) (*Dispatcher, *fakeSensor) {
	t.Helper()
	d, err := New(&testLogger{})
	require.NoError(t, err)

	s := newFakeSensor()
	RegisterSensorCommands(d, s)
	return d, s
}

func TestRegisterSensorCommands(t *testing.T) {
	d, _ := newCommandDispatcher(t)

	for _, cmd := range []string{CmdSetPose, CmdIgnore, CmdUnignore, CmdClearIgnored, CmdHeadless} {
		assert.True(t, d.HasHandler(cmd), "missing handler for %s", cmd)
	}
}

func TestIgnoreCommands(t *testing.T) {
	d, s := newCommandDispatcher(t)

	_, err := d.Dispatch(Event{Command: CmdIgnore, Args: []string{"42"}})
	require.NoError(t, err)
	assert.True(t, s.ignored[42])

	_, err = d.Dispatch(Event{Command: CmdUnignore, Args: []string{"42"}})
	require.NoError(t, err)
	assert.False(t, s.ignored[42])

	_, err = d.Dispatch(Event{Command: CmdClearIgnored})
	require.NoError(t, err)
	assert.True(t, s.cleared)
}

func TestIgnoreCommandBadArgs(t *testing.T) {
	d, _ := newCommandDispatcher(t)

	_, err := d.Dispatch(Event{Command: CmdIgnore, Args: []string{"not-a-number"}})
	assert.Error(t, err)

	_, err = d.Dispatch(Event{Command: CmdIgnore})
	assert.Error(t, err)
}

func TestHeadlessCommand(t *testing.T) {
	d, s := newCommandDispatcher(t)

	_, err := d.Dispatch(Event{Command: CmdHeadless, Args: []string{"true"}})
	require.NoError(t, err)
	assert.True(t, s.headless)

	_, err = d.Dispatch(Event{Command: CmdHeadless, Args: []string{"false"}})
	require.NoError(t, err)
	assert.False(t, s.headless)

	_, err = d.Dispatch(Event{Command: CmdHeadless, Args: []string{"maybe"}})
	assert.Error(t, err)
}

func TestParsePose(t *testing.T) {
	pose, err := parsePose([]string{"100", "-50", "380", "90"})
	require.NoError(t, err)

	assert.InDelta(t, 100, pose.Location.X, 1e-6)
	assert.InDelta(t, -50, pose.Location.Y, 1e-6)
	assert.InDelta(t, 380, pose.Location.Z, 1e-6)

	// 90 degrees of yaw points the camera down +Y.
	fwd := pose.Rotation.Forward()
	assert.InDelta(t, 0, fwd.X, 1e-5)
	assert.InDelta(t, 1, fwd.Y, 1e-5)

	_, err = parsePose([]string{"1", "2"})
	assert.Error(t, err)

	_, err = parsePose([]string{"1", "2", "x", "0"})
	assert.Error(t, err)
}
