package cmd

import (
	"fmt"
	"os"

	"github.com/shmlock/shmlock/cmd/clean"
	"github.com/shmlock/shmlock/cmd/run"
	"github.com/shmlock/shmlock/cmd/status"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "shmlock",
		Short: "inter-process mutex via named shared memory",
		Long: fmt.Sprintf(`shmlock (v%s)

An inter-process mutual-exclusion lock that needs no handoff between
processes: cooperating processes agree on a string name and coordinate
through a named shared-memory segment acting as an atomic presence flag.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of shmlock",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shmlock v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(run.RunCmd)
	RootCmd.AddCommand(status.StatusCmd)
	RootCmd.AddCommand(clean.CleanCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
