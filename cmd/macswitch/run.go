package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/sim/directconnection"
	"github.com/lumisim/macswitch/simulation"
	"github.com/lumisim/macswitch/switching/lookup"
	"github.com/lumisim/macswitch/switching/trafficgen"
)

var runFlags struct {
	strategy      string
	ports         int
	tableSize     int
	scrubTimeout  uint64
	scrubInterval uint64
	frames        uint64
	stations      int
	seed          int64
	abortRate     float64

	monitor       bool
	monitorPort   int
	openDashboard bool
	record        bool
	output        string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a traffic simulation against the forwarding table",
	RunE:  runSimulation,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.strategy, "strategy", "brute",
		"backend search strategy")
	f.IntVar(&runFlags.ports, "ports", 8, "number of switch ports")
	f.IntVar(&runFlags.tableSize, "table-size", 64,
		"forwarding-table capacity")
	f.Uint64Var(&runFlags.scrubTimeout, "scrub-timeout", 1024,
		"aging horizon in frames")
	f.Uint64Var(&runFlags.scrubInterval, "scrub-interval", 256,
		"frames between scrub requests, 0 disables")
	f.Uint64Var(&runFlags.frames, "frames", 4096,
		"number of frames to generate")
	f.IntVar(&runFlags.stations, "stations", 32,
		"size of the MAC address pool")
	f.Int64Var(&runFlags.seed, "seed", 1, "random seed")
	f.Float64Var(&runFlags.abortRate, "abort-rate", 0.02,
		"fraction of frames aborted mid-header")

	f.BoolVar(&runFlags.monitor, "monitor", false,
		"serve the HTTP monitor while running")
	f.IntVar(&runFlags.monitorPort, "monitor-port", 0,
		"monitor port, 0 picks a random port")
	f.BoolVar(&runFlags.openDashboard, "open-dashboard", false,
		"open the monitor in a browser")
	f.BoolVar(&runFlags.record, "record", false,
		"record per-frame results to SQLite")
	f.StringVar(&runFlags.output, "output", "macswitch_results",
		"output database path, without extension")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	builder := simulation.MakeBuilder()
	if runFlags.record {
		builder = builder.WithDataRecording(runFlags.output)
	}
	if runFlags.monitor {
		builder = builder.WithMonitoring(runFlags.monitorPort)
	}

	s := builder.Build()
	engine := s.Engine()

	dispatcher := lookup.MakeBuilder().
		WithEngine(engine).
		WithPortCount(runFlags.ports).
		WithTableSize(runFlags.tableSize).
		WithScrubTimeout(runFlags.scrubTimeout).
		WithStrategy(runFlags.strategy).
		Build("Lookup")

	agent := trafficgen.MakeBuilder().
		WithEngine(engine).
		WithLookupFrame(dispatcher.FramePort.AsRemote()).
		WithLookupCtrl(dispatcher.CtrlPort.AsRemote()).
		WithNumFrames(runFlags.frames).
		WithPortCount(runFlags.ports).
		WithNumStations(runFlags.stations).
		WithAbortRate(runFlags.abortRate).
		WithScrubInterval(runFlags.scrubInterval).
		WithSeed(runFlags.seed).
		WithRecorder(s.DataRecorder()).
		Build("Traffic")

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Conn")
	conn.PlugIn(dispatcher.FramePort)
	conn.PlugIn(dispatcher.CtrlPort)
	conn.PlugIn(agent.FramePort)
	conn.PlugIn(agent.CtrlPort)

	s.RegisterComponent(dispatcher)
	s.RegisterComponent(agent)
	s.RegisterComponent(conn)

	if runFlags.openDashboard && s.Monitor() != nil {
		if err := browser.OpenURL(s.Monitor().URL()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"cannot open dashboard: %v\n", err)
		}
	}

	agent.TickLater()

	if err := s.Run(); err != nil {
		return err
	}

	printStats(cmd, agent.Stats())
	s.Terminate()

	return nil
}

func printStats(cmd *cobra.Command, stats trafficgen.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frames committed:  %d\n", stats.FramesCommitted)
	fmt.Fprintf(out, "frames aborted:    %d\n", stats.FramesAborted)
	fmt.Fprintf(out, "responses:         %d\n", stats.RspReceived)
	fmt.Fprintf(out, "known unicast:     %d\n", stats.KnownRsps)
	fmt.Fprintf(out, "flooded:           %d\n", stats.FloodRsps)
	fmt.Fprintf(out, "scrubs answered:   %d\n", stats.ScrubsAnswered)
	fmt.Fprintf(out, "entries scrubbed:  %d\n", stats.EntriesScrubbed)
}
