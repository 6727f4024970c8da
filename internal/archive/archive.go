// Package archive wraps the external archive inspection tool used by the
// pipeline to handle static archives, plus the Mach-O extractor's universal
// binary check. The tools are opaque commands: only their return codes are
// interpreted, their text passes through untouched.
package archive

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"decpipe/internal/runner"
)

// Inspector drives the archive tool through the execution harness.
type Inspector struct {
	tool    string
	extract string
	runner  *runner.Runner
}

// New creates an Inspector. tool is the archive inspection binary, extract
// the Mach-O extractor binary.
func New(tool, extract string, r *runner.Runner) *Inspector {
	return &Inspector{tool: tool, extract: extract, runner: r}
}

// quiet runs the tool with output captured and discarded and reports
// whether it exited with zero.
func (i *Inspector) quiet(ctx context.Context, args ...string) bool {
	res, err := i.runner.Run(ctx, runner.Request{
		Command:      append([]string{i.tool}, args...),
		BufferOutput: true,
	})
	return err == nil && res.ExitCode == 0
}

// HasSignature reports whether the file carries an ar magic signature.
func (i *Inspector) HasSignature(ctx context.Context, path string) bool {
	return i.quiet(ctx, path, "--arch-magic")
}

// HasThinSignature reports whether the file carries a thin ar signature.
func (i *Inspector) HasThinSignature(ctx context.Context, path string) bool {
	return i.quiet(ctx, path, "--thin-magic")
}

// IsValid reports whether the file is an archive the pipeline can work with.
func (i *Inspector) IsValid(ctx context.Context, path string) bool {
	return i.quiet(ctx, path, "--valid")
}

// IsMachOArchive reports whether the file is a Mach-O universal binary
// containing archives.
func (i *Inspector) IsMachOArchive(ctx context.Context, path string) bool {
	res, err := i.runner.Run(ctx, runner.Request{
		Command:      []string{i.extract, "--check-archive", path},
		BufferOutput: true,
	})
	return err == nil && res.ExitCode == 0
}

// ObjectCount counts the object files in the archive. On any failure the
// count defaults to 1 alongside the error, so callers that iterate members
// still make progress.
func (i *Inspector) ObjectCount(ctx context.Context, path string) (int, error) {
	res, err := i.runner.Run(ctx, runner.Request{
		Command:      []string{i.tool, path, "--object-count"},
		BufferOutput: true,
	})
	if err != nil {
		return 1, err
	}
	if res.ExitCode != 0 {
		return 1, fmt.Errorf("archive tool exited with code %d", res.ExitCode)
	}
	n, err := strconv.Atoi(strings.TrimSpace(res.Output))
	if err != nil {
		return 1, fmt.Errorf("parse object count %q: %w", res.Output, err)
	}
	return n, nil
}

// ListContent prints the archive members to the runner's output stream.
func (i *Inspector) ListContent(ctx context.Context, path string) error {
	_, err := i.runner.Run(ctx, runner.Request{
		Command: []string{i.tool, path, "--list", "--no-numbers"},
	})
	return err
}

// ListNumberedContent prints the archive members with their indexes.
func (i *Inspector) ListNumberedContent(ctx context.Context, path string) error {
	fmt.Fprintln(i.runner.Stdout(), "Index\tName")
	_, err := i.runner.Run(ctx, runner.Request{
		Command: []string{i.tool, path, "--list"},
	})
	return err
}

// ListNumberedContentJSON prints the numbered member listing as JSON.
func (i *Inspector) ListNumberedContentJSON(ctx context.Context, path string) error {
	_, err := i.runner.Run(ctx, runner.Request{
		Command: []string{i.tool, path, "--list", "--json"},
	})
	return err
}

// ExtractByName extracts a single member identified by name.
func (i *Inspector) ExtractByName(ctx context.Context, path, name, output string) error {
	return i.extractMember(ctx, path, "--name", name, output)
}

// ExtractByIndex extracts a single member identified by its index.
func (i *Inspector) ExtractByIndex(ctx context.Context, path, index, output string) error {
	return i.extractMember(ctx, path, "--index", index, output)
}

func (i *Inspector) extractMember(ctx context.Context, path, selector, value, output string) error {
	res, err := i.runner.Run(ctx, runner.Request{
		Command:      []string{i.tool, path, selector, value, "--output", output},
		BufferOutput: true,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("archive tool exited with code %d", res.ExitCode)
	}
	return nil
}
