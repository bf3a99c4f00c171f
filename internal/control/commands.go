package control

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cosmosviz/sensor/pkg/core"
)

// Commands accepted on the sensor control channel.
const (
	CmdSetPose      = ":POSE:"
	CmdIgnore       = ":IGNORE:"
	CmdUnignore     = ":UNIGNORE:"
	CmdClearIgnored = ":CLEAR:"
	CmdHeadless     = ":HEADLESS:"
)

// SensorControl is the mutable surface of the sensor exposed over the
// control channel.
type SensorControl interface {
	SetPose(pose core.Transform)
	IgnoreVehicle(id core.ActorID)
	UnignoreVehicle(id core.ActorID)
	ClearIgnored()
	SetHeadless(headless bool)
}

// RegisterSensorCommands wires the standard sensor commands into the
// dispatcher. Pose updates arrive every tick while following the hero
// vehicle and only the newest one matters, so they go through a
// conflating mailbox.
func RegisterSensorCommands(d *Dispatcher, s SensorControl) {
	d.Register(CmdSetPose, func(e Event) (any, error) {
		pose, err := parsePose(e.Args)
		if err != nil {
			return nil, err
		}
		s.SetPose(pose)
		return "ok", nil
	}, Conflated())

	d.Register(CmdIgnore, func(e Event) (any, error) {
		id, err := parseActorID(e.Args)
		if err != nil {
			return nil, err
		}
		s.IgnoreVehicle(id)
		return "ok", nil
	}, Logged())

	d.Register(CmdUnignore, func(e Event) (any, error) {
		id, err := parseActorID(e.Args)
		if err != nil {
			return nil, err
		}
		s.UnignoreVehicle(id)
		return "ok", nil
	}, Logged())

	d.Register(CmdClearIgnored, func(e Event) (any, error) {
		s.ClearIgnored()
		return "ok", nil
	}, Logged())

	d.Register(CmdHeadless, func(e Event) (any, error) {
		if len(e.Args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", CmdHeadless, len(e.Args))
		}
		on, err := strconv.ParseBool(e.Args[0])
		if err != nil {
			return nil, fmt.Errorf("parsing headless flag: %w", err)
		}
		s.SetHeadless(on)
		return "ok", nil
	}, Logged())
}

// parsePose reads [x y z yawDegrees] into a world transform.
func parsePose(args []string) (core.Transform, error) {
	if len(args) != 4 {
		return core.Transform{}, fmt.Errorf("%s expects 4 arguments, got %d", CmdSetPose, len(args))
	}

	vals := make([]float64, 4)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return core.Transform{}, fmt.Errorf("parsing pose argument %d: %w", i, err)
		}
		vals[i] = v
	}

	return core.Transform{
		Location: core.Vector3{X: float32(vals[0]), Y: float32(vals[1]), Z: float32(vals[2])},
		Rotation: core.QuatFromYaw(float32(vals[3] * math.Pi / 180)),
	}, nil
}

func parseActorID(args []string) (core.ActorID, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing actor id: %w", err)
	}
	return core.ActorID(id), nil
}
