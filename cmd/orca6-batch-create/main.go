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

// Create the root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orca6-batch-create",
		Short: "Create numbered ORCA6 run folders from a concatenated .xyz geometry list",
		Long: "orca6-batch-create splits a concatenated .xyz geometry list into fixed-size\n" +
			"chunks and writes one numbered folder per geometry, each holding geometry.xyz,\n" +
			"orca6.inp, job.slurm and an executable cleanup.sh.",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"geometry-list", "lines-per-geometry", "orca-input", "slurm-input"} {
				if !cmd.Flags().Changed(name) {
					return batch.Usagef("--%s is required", name)
				}
			}
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := batch.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			opts := batch.CreateOptions{}
			opts.GeometryList, _ = cmd.Flags().GetString("geometry-list")
			opts.LinesPerGeometry, _ = cmd.Flags().GetInt("lines-per-geometry")
			opts.OrcaInput, _ = cmd.Flags().GetString("orca-input")
			opts.SlurmInput, _ = cmd.Flags().GetString("slurm-input")
			opts.OutRoot, _ = cmd.Flags().GetString("out")
			opts.Force, _ = cmd.Flags().GetBool("force")
			opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
			opts.Manifest, _ = cmd.Flags().GetBool("manifest")
			opts.PushHost, _ = cmd.Flags().GetString("push")
			if opts.OutRoot == "" {
				opts.OutRoot = cfg.Out
			}
			return batch.RunCreate(cmd.Context(), opts, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("geometry-list", "g", "", "path to the concatenated .xyz geometry list file")
	cmd.Flags().IntP("lines-per-geometry", "n", 0, "number of lines per geometry chunk")
	cmd.Flags().StringP("orca-input", "i", "", "ORCA input: file path or literal text")
	cmd.Flags().StringP("slurm-input", "s", "", "SLURM script: file path or literal text")
	cmd.Flags().StringP("out", "o", "", "output root directory (default: current directory)")
	cmd.Flags().Bool("force", false, "allow reuse of non-empty existing sub-folders")
	cmd.Flags().Bool("dry-run", false, "show what would be created without writing files")
	cmd.Flags().Bool("manifest", false, "write batch.yaml describing the run into the output root")
	cmd.Flags().String("push", "", "upload created folders to this cluster host after writing")
	cmd.PersistentFlags().StringP("log", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	cmd.PersistentFlags().String("config", "", "config file")

	cmd.PersistentPreRun = func(c *cobra.Command, args []string) {
		applyLogLevel(c)
	}

	// Flag-parse failures (e.g. a non-integer -n) are configuration errors
	// and exit 2 like every other validation failure.
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
			fmt.Printf("orca6-batch-create %s (%s) %s\n", version, commit, buildDate)
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
