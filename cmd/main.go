package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/thepudds/robinhood/cmd/dump"
	"github.com/thepudds/robinhood/cmd/perf"
	"github.com/thepudds/robinhood/internal/common"
)

var (
	rootCmd = &cobra.Command{
		Use:   "rhmap",
		Short: "Robin Hood hash map tools",
		Long:  `Tools to inspect and load test the robinhood hash map`,
		PersistentPreRun: func(*cobra.Command, []string) {
			common.ConfigureLogger()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&common.LogDebug, "log-debug", "d", false, "Enable debug logs")
	rootCmd.PersistentFlags().BoolVarP(&common.LogJson, "log-json", "j", false, "Print logs in JSON format")

	rootCmd.AddCommand(dump.Cmd)
	rootCmd.AddCommand(perf.Cmd)
}

func main() {
	if _, err := maxprocs.Set(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
