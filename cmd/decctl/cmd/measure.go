package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var measureCmd = &cobra.Command{
	Use:   "measure [flags] -- command [args...]",
	Short: "Run a command and report its peak memory and wall time",
	Long: `Run a command wrapped with the configured measurement utility and report
its peak resident memory and elapsed wall time alongside its own output.
When the utility is not installed the command still runs and memory is
reported as 0.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if !cmd.Flags().Changed("timeout") {
			timeout = cfg.DefaultTimeout
		}
		input, _ := cmd.Flags().GetString("input")

		r := newRunner(cmd.OutOrStdout(), cmd.ErrOrStderr())
		m, err := r.RunMeasured(cmd.Context(), args, input, timeout)
		if err != nil {
			return err
		}

		if m.Output != "" {
			fmt.Fprintln(cmd.OutOrStdout(), m.Output)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Memory: %d MB\nTime: %d s\nExit code: %d\n",
			m.MemoryMB, m.Elapsed, m.ExitCode)

		if m.ExitCode != 0 {
			os.Exit(m.ExitCode)
		}
		return nil
	},
}

func init() {
	measureCmd.Flags().Duration("timeout", 0, "kill the command and its process tree after this duration (0 = no bound)")
	measureCmd.Flags().String("input", "", "text written to the command's standard input")
	rootCmd.AddCommand(measureCmd)
}
