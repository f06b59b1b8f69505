package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/sstate/cmd/bench"
	"github.com/ValentinKolb/sstate/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "sstate",
		Short: "session state library",
		Long: fmt.Sprintf(`sstate (v%s)

A session state library for Go: a change-tracking, lazily-materializing
per-session key-value bag with delta persistence to a pluggable backing store.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sstate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sstate v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "codec"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("codec to use (json, gob, binary)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level to use (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
