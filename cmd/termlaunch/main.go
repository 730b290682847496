package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/termlaunch/cli"
	"github.com/grovetools/termlaunch/launch"
	"github.com/grovetools/termlaunch/logging"
	"github.com/grovetools/termlaunch/options"
	"github.com/grovetools/termlaunch/settings"
	"github.com/grovetools/termlaunch/version"
)

func main() {
	log := logging.New()

	rootCmd := &cobra.Command{
		Use:   "termlaunch [OPTION...] [-- COMMAND ...]",
		Short: "Resolve terminal launch options into a window/tab plan",
		Long: `termlaunch parses terminal launch options, saved launch configuration
files, and environment hand-offs into a fully resolved plan of windows
and tabs, printed as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Options are order-sensitive and include repeatable window/tab
		// builders, so cobra's own flag parsing stays out of the way.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, log, args)
		},
	}

	info := version.GetInfo()
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, info)
	rootCmd.AddCommand(cli.NewVersionCommand("termlaunch", info))

	if err := rootCmd.Execute(); err != nil {
		handler := cli.NewErrorHandler(os.Stderr, log.Verbosity() >= logging.Detail)
		os.Exit(handler.Handle(err))
	}
}

func run(cmd *cobra.Command, log *logging.Logger, args []string) error {
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h") {
		return cmd.Help()
	}

	cfg, err := settings.Load()
	if err != nil {
		return err
	}

	plan, err := options.Parse(args, options.Config{
		Settings: cfg,
		Log:      log,
	})
	if err != nil {
		return err
	}

	return printPlan(os.Stdout, plan)
}

func printPlan(out *os.File, plan *launch.Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
