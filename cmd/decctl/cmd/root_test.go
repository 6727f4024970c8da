package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with the given args and returns its
// combined output and error. Flag state is reset between invocations
// because cobra keeps parsed values on the shared command tree.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range []*cobra.Command{runCmd, measureCmd, archiveCheckCmd, archiveListCmd, archiveExtractCmd} {
		c.Flags().Visit(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExecute_UnknownCommand(t *testing.T) {
	_, err := execute(t, "frobnicate")
	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestExecute_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, cmd := range []string{"run", "measure", "archive"} {
		if !bytes.Contains([]byte(out), []byte(cmd)) {
			t.Errorf("expected help to list %q command", cmd)
		}
	}
}
