package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/orcatools/orcabatch/internal/batch"
)

var (
	version   = "1.0.0"
	commit    = ""
	buildDate = ""
)

// Create the root command. Unlike orca6-batch-create this tool supports only
// the prune flag set: no --out, --force, --dry-run or push.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orca6-batch-prune-create",
		Short: "Create ORCA6 run folders for a pruned subset of a geometry list",
		Long: "orca6-batch-prune-create splits a concatenated .xyz geometry list into\n" +
			"fixed-size chunks, always keeps the first --first geometries, optionally\n" +
			"takes a 1/P stride sample of the rest with --prune, and writes one numbered\n" +
			"folder per selected geometry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"geometry-list", "lines-per-geometry", "orca-input", "slurm-input", "first"} {
				if !cmd.Flags().Changed(name) {
					return batch.Usagef("--%s is required", name)
				}
			}
			opts := batch.PruneOptions{}
			opts.GeometryList, _ = cmd.Flags().GetString("geometry-list")
			opts.LinesPerGeometry, _ = cmd.Flags().GetInt("lines-per-geometry")
			opts.OrcaInput, _ = cmd.Flags().GetString("orca-input")
			opts.SlurmInput, _ = cmd.Flags().GetString("slurm-input")
			opts.First, _ = cmd.Flags().GetInt("first")
			if cmd.Flags().Changed("prune") {
				p, _ := cmd.Flags().GetInt("prune")
				opts.Prune = &p
			}
			return batch.RunPruneCreate(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("geometry-list", "g", "", "path to the concatenated .xyz geometry list file")
	cmd.Flags().IntP("lines-per-geometry", "n", 0, "number of lines per geometry chunk")
	cmd.Flags().StringP("orca-input", "i", "", "ORCA input: file path or literal text")
	cmd.Flags().StringP("slurm-input", "s", "", "SLURM script: file path or literal text")
	cmd.Flags().Int("first", 0, "number of initial geometries to always include (>= 0)")
	cmd.Flags().Int("prune", 0, "denominator P to take a 1/P stride fraction from the remainder")
	cmd.PersistentFlags().StringP("log", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")

	cmd.PersistentPreRun = func(c *cobra.Command, args []string) {
		applyLogLevel(c)
	}

	// Flag-parse failures (e.g. a non-integer --prune) are configuration
	// errors and exit 2 like every other validation failure.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return batch.Usagef("%v", err)
	})

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Create the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("orca6-batch-prune-create %s (%s) %s\n", version, commit, buildDate)
		},
	}
}

func applyLogLevel(c *cobra.Command) {
	levelStr, _ := c.Flags().GetString("log")
	switch levelStr {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Setup the logger
func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Main entry point
func main() {
	setupLogger()
	root := newRootCmd()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	root.SetContext(ctx)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		var ue *batch.UsageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
