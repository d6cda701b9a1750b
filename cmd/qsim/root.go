package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:          "qsim",
	Short:        "Replay noise-annotated quantum circuit timelines",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qsim %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		return 1
	}
	return 0
}
