package cmd

import (
	"github.com/hupe1980/ahipix/cmd/fetch"
	"github.com/hupe1980/ahipix/cmd/train"
	"github.com/hupe1980/ahipix/cmd/trigger"
	"github.com/hupe1980/ahipix/logger"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonLog bool
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "ahipix",
	Short:         "Fetch HealthImaging pixel data into ML pipelines",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, jsonLog)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log in JSON format")

	RootCmd.AddCommand(fetch.Cmd)
	RootCmd.AddCommand(train.Cmd)
	RootCmd.AddCommand(trigger.Cmd)
}
