/*
qsim runs noise-annotated quantum circuit timelines from TOML descriptions.

A circuit file declares qubits with their T1/T2 coherence times, timestamped
gates, and a measurement sampling policy. qsim fills idle intervals with
decoherence channels, schedules the gates into a causally valid order that
defers measurements, and replays the result against a built-in
density-matrix state.

Usage:

	qsim <command> [arguments]

Commands:

	qsim run <circuit.toml>   Synthesize, schedule and replay a circuit
	qsim view <circuit.toml>  Browse the scheduled timeline interactively
	qsim version              Print version information
*/
package main

import "os"

func main() {
	os.Exit(execute())
}
