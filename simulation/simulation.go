// Package simulation assembles an event engine, the simulated components,
// and the optional recorder and monitor into one runnable simulation.
package simulation

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/lumisim/macswitch/monitoring"
	"github.com/lumisim/macswitch/recording"
	"github.com/lumisim/macswitch/sim"
)

// A Simulation keeps the engine and the component registry of one run.
type Simulation struct {
	id     string
	engine sim.Engine

	components    []sim.Component
	componentsMap map[string]sim.Component

	monitor  *monitoring.Monitor
	recorder recording.DataRecorder
}

// A Builder can build simulations.
type Builder struct {
	monitorOn    bool
	monitorPort  int
	recorderPath string
}

// MakeBuilder creates a builder with the monitor and the recorder disabled.
func MakeBuilder() Builder {
	return Builder{}
}

// WithMonitoring enables the HTTP monitor on the given port.
func (b Builder) WithMonitoring(port int) Builder {
	b.monitorOn = true
	b.monitorPort = port
	return b
}

// WithDataRecording enables the SQLite recorder writing to the given path.
func (b Builder) WithDataRecording(path string) Builder {
	b.recorderPath = path
	return b
}

// Build creates the simulation. The monitor, when enabled, starts serving
// immediately.
func (b Builder) Build() *Simulation {
	s := &Simulation{
		id:            xid.New().String(),
		engine:        sim.NewSerialEngine(),
		componentsMap: make(map[string]sim.Component),
	}

	if b.recorderPath != "" {
		w := recording.NewSQLiteWriter(b.recorderPath)
		w.Init()
		s.recorder = w
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor().WithPortNumber(b.monitorPort)
		s.monitor.RegisterEngine(s.engine)
		s.monitor.StartServer()
	}

	return s
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the event engine of the simulation.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// Monitor returns the monitor of the simulation, or nil when monitoring is
// disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// DataRecorder returns the recorder of the simulation, or nil when
// recording is disabled.
func (s *Simulation) DataRecorder() recording.DataRecorder {
	return s.recorder
}

// RegisterComponent adds a component to the registry and, when the monitor
// is on, exposes it there.
func (s *Simulation) RegisterComponent(c sim.Component) {
	if _, found := s.componentsMap[c.Name()]; found {
		panic(fmt.Sprintf("component %s is already registered", c.Name()))
	}

	s.components = append(s.components, c)
	s.componentsMap[c.Name()] = c

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// GetComponentByName returns a registered component.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	c, found := s.componentsMap[name]
	if !found {
		panic(fmt.Sprintf("component %s is not registered", name))
	}

	return c
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// Run processes all the scheduled events.
func (s *Simulation) Run() error {
	return s.engine.Run()
}

// Terminate flushes the recorder. The simulation cannot be used afterward.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		s.recorder.Flush()
	}
}
