package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/elikkatzgit/quantumsim"
	"github.com/elikkatzgit/quantumsim/circuitfile"
	"github.com/elikkatzgit/quantumsim/sdm"
)

var (
	runTrajectories int
	runNoWaiting    bool
)

var runCmd = &cobra.Command{
	Use:   "run <circuit.toml>",
	Short: "Synthesize, schedule and replay a circuit",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runTrajectories, "trajectories", "n", 1, "Number of Monte Carlo trajectories to replay")
	runCmd.Flags().BoolVar(&runNoWaiting, "no-waiting", false, "Skip idle-interval decoherence synthesis")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	circuit, err := loadCircuit(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(circuit.Qubits()))
	for _, qb := range circuit.Qubits() {
		names = append(names, qb.Name)
	}

	log.Info("replaying", "trajectories", runTrajectories)
	trajectories := quantumsim.RunEnsemble(circuit, runTrajectories, func() quantumsim.State {
		return sdm.New(names...)
	})

	fmt.Println(quantumsim.RenderTimeline(circuit))
	for _, tr := range trajectories {
		fmt.Printf("%s  outcomes=%v  weight=%g\n", tr.ID, tr.Outcomes, tr.Weight)
	}

	for i, m := range circuit.Measurements() {
		ones := 0
		for _, r := range m.Results {
			ones += r
		}
		fmt.Printf("measurement %d on %s: %d/%d declared 1\n",
			i, m.Qubits()[0], ones, len(m.Results))
	}
	return nil
}

// loadCircuit parses a circuit file, fills idle intervals and schedules the
// gates.
func loadCircuit(path string) (*quantumsim.Circuit, error) {
	f, err := circuitfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	circuit, err := f.Build()
	if err != nil {
		return nil, err
	}
	log.Info("loaded circuit", "title", circuit.Title,
		"qubits", len(circuit.Qubits()), "gates", len(circuit.Gates()))

	if !runNoWaiting {
		circuit.AddWaitingGates(f.SynthesisWindow())
	}
	circuit.Order()
	log.Info("scheduled", "gates", len(circuit.Gates()))
	return circuit, nil
}
