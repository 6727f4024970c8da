package cmd

import (
	"fmt"

	"decpipe/internal/archive"
	"decpipe/pkg/numstr"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect and unpack static archives",
}

func newInspector(cmd *cobra.Command) *archive.Inspector {
	r := newRunner(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return archive.New(cfg.ArTool, cfg.ExtractTool, r)
}

var archiveCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check whether a file is an archive the pipeline can work with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		thin, _ := cmd.Flags().GetBool("thin")
		macho, _ := cmd.Flags().GetBool("macho")

		insp := newInspector(cmd)
		var ok bool
		switch {
		case macho:
			ok = insp.IsMachOArchive(cmd.Context(), path)
		case thin:
			ok = insp.HasThinSignature(cmd.Context(), path)
		default:
			ok = insp.HasSignature(cmd.Context(), path) && insp.IsValid(cmd.Context(), path)
		}
		if !ok {
			return fmt.Errorf("%s is not a valid archive", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", path)
		return nil
	},
}

var archiveCountCmd = &cobra.Command{
	Use:   "count [path]",
	Short: "Count the object files in an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		insp := newInspector(cmd)
		n, err := insp.ObjectCount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the members of an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		numbered, _ := cmd.Flags().GetBool("numbered")
		asJSON, _ := cmd.Flags().GetBool("json")

		insp := newInspector(cmd)
		switch {
		case asJSON:
			return insp.ListNumberedContentJSON(cmd.Context(), path)
		case numbered:
			return insp.ListNumberedContent(cmd.Context(), path)
		default:
			return insp.ListContent(cmd.Context(), path)
		}
	},
}

var archiveExtractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract a single member from an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		name, _ := cmd.Flags().GetString("name")
		index, _ := cmd.Flags().GetString("index")
		output, _ := cmd.Flags().GetString("output")

		if (name == "") == (index == "") {
			return fmt.Errorf("exactly one of --name or --index is required")
		}
		if index != "" && !numstr.IsDecimal(index) {
			return fmt.Errorf("invalid index %q: expected a decimal number", index)
		}

		insp := newInspector(cmd)
		if name != "" {
			return insp.ExtractByName(cmd.Context(), path, name, output)
		}
		return insp.ExtractByIndex(cmd.Context(), path, index, output)
	},
}

func init() {
	archiveCheckCmd.Flags().Bool("thin", false, "check for a thin archive signature")
	archiveCheckCmd.Flags().Bool("macho", false, "check for a Mach-O universal binary with archives")

	archiveListCmd.Flags().Bool("numbered", false, "list members with their indexes")
	archiveListCmd.Flags().Bool("json", false, "emit the numbered listing as JSON")

	archiveExtractCmd.Flags().String("name", "", "member name to extract")
	archiveExtractCmd.Flags().String("index", "", "member index to extract")
	archiveExtractCmd.Flags().String("output", "", "output path for the extracted member")
	_ = archiveExtractCmd.MarkFlagRequired("output")

	archiveCmd.AddCommand(archiveCheckCmd, archiveCountCmd, archiveListCmd, archiveExtractCmd)
	rootCmd.AddCommand(archiveCmd)
}
