package cmd

import (
	"context"
	"io"
	"log/slog"

	"decpipe/internal/config"
	"decpipe/internal/logger"
	"decpipe/internal/observability"
	"decpipe/internal/runner"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger

	shutdownTracer func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "decctl",
	Short: "Decctl runs external pipeline tools under the decpipe execution harness",
	Long: `decctl is the command-line front of the decpipe execution harness, the
subsystem the decompilation pipeline uses to shell out to heterogeneous
native tools.

Every command is run with whole-process-tree ownership: on timeout or
interrupt the tool and every subprocess it spawned are terminated, and the
output produced up to that point is drained, cleaned of shell colors, and
returned.

Common workflows:

  Run a tool with a five minute bound:
    decctl run --timeout 5m -- my-frontend input.bin

  Measure peak memory and wall time:
    decctl measure -- my-backend input.ll

  Inspect a static archive:
    decctl archive count libfoo.a
    decctl archive extract libfoo.a --index 2 --output main.o

Configuration:
  Tool paths are read from decpipe.yaml or DECPIPE_* environment variables:
    DECPIPE_TIME_COMMAND     measurement utility (default: /usr/bin/time -v)
    DECPIPE_AR_TOOL          archive inspection binary
    DECPIPE_EXTRACT_TOOL     Mach-O extractor binary`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		log = logger.New()

		if cfg.OTELEndpoint != "" {
			shutdownTracer, err = observability.InitTracer(cmd.Context(), "decctl", cfg.OTELEndpoint)
			if err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// newRunner builds a Runner from the loaded configuration with the given
// passthrough streams.
func newRunner(stdout, stderr io.Writer) *runner.Runner {
	return runner.New(
		runner.WithTimeCommand(cfg.TimeCommand),
		runner.WithLogger(log),
		runner.WithStdio(stdout, stderr),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: decpipe.yaml in the working directory)")
}
