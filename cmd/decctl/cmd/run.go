package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"decpipe/internal/runner"
	"decpipe/pkg/unbuffered"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- command [args...]",
	Short: "Run a command with timeout and process-tree guarantees",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if !cmd.Flags().Changed("timeout") {
			timeout = cfg.DefaultTimeout
		}
		input, _ := cmd.Flags().GetString("input")
		buffer, _ := cmd.Flags().GetBool("buffer")
		logFile, _ := cmd.Flags().GetString("log-file")

		stdout := cmd.OutOrStdout()
		stderr := cmd.ErrOrStderr()
		if logFile != "" {
			f, err := os.Create(logFile)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			bw := bufio.NewWriter(f)
			defer bw.Flush()
			// Flush per write so tool output lands in the file in order.
			tee := unbuffered.New(bw)
			stdout = io.MultiWriter(stdout, tee)
			stderr = io.MultiWriter(stderr, tee)
		}

		r := newRunner(stdout, stderr)
		res, err := r.Run(cmd.Context(), runner.Request{
			Command:      args,
			Input:        input,
			Timeout:      timeout,
			BufferOutput: buffer,
		})
		if err != nil {
			return err
		}

		if buffer && res.Output != "" {
			fmt.Fprintln(stdout, res.Output)
		}
		if res.TimedOut {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: command timed out after %s\n", timeout)
		}
		if res.ExitCode != 0 {
			os.Exit(res.ExitCode)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Duration("timeout", 0, "kill the command and its process tree after this duration (0 = no bound)")
	runCmd.Flags().String("input", "", "text written to the command's standard input")
	runCmd.Flags().Bool("buffer", false, "capture output and print it after the command exits")
	runCmd.Flags().String("log-file", "", "also write command output to this file")
	rootCmd.AddCommand(runCmd)
}
