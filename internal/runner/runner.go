// Package runner launches the external tools of the decompilation pipeline.
// It enforces wall-clock timeouts with guaranteed whole-process-tree
// termination, captures and sanitizes combined output, and derives peak
// memory and elapsed time from wrapped measurement output.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"
	"unicode"

	"decpipe/internal/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TimeoutExitCode is reported for commands killed on timeout, mirroring the
// POSIX convention for SIGKILL-terminated processes. It is used even on
// platforms whose native timeout exit code differs.
const TimeoutExitCode = 137

// ErrEmptyCommand is returned when an execution is requested without a
// program to run.
var ErrEmptyCommand = errors.New("command is required")

// Request describes a single execution of an external tool.
type Request struct {
	// Command is the program path followed by its arguments. The program is
	// resolved against the executable search path.
	Command []string

	// Input is written to the process's standard input.
	Input string

	// Timeout bounds the wait for completion. Zero disables the bound.
	Timeout time.Duration

	// BufferOutput captures the merged stdout/stderr into the result instead
	// of streaming it to the runner's own streams.
	BufferOutput bool
}

// Result is the outcome of a plain run. Timeout is an outcome, not an
// error: TimedOut is set and ExitCode equals TimeoutExitCode.
type Result struct {
	Output   string
	ExitCode int
	TimedOut bool
}

// Measured is the outcome of an instrumented run.
type Measured struct {
	// MemoryMB is the peak resident set size in whole MiB, 0 when the
	// measurement tool was unavailable.
	MemoryMB int

	// Elapsed is the wall time in seconds, never below 1.
	Elapsed int

	Output   string
	ExitCode int
}

// Runner executes commands synchronously. Each call owns its own process
// handle and buffers; a Runner may be shared between goroutines.
type Runner struct {
	timeCommand []string
	stdout      io.Writer
	stderr      io.Writer
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeCommand sets the measurement utility invocation prepended to
// measured commands (program path plus its flags).
func WithTimeCommand(cmd []string) Option {
	return func(r *Runner) { r.timeCommand = cmd }
}

// WithStdio sets the streams a non-buffered child inherits.
func WithStdio(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the logger executions are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner. By default measured runs are wrapped with
// /usr/bin/time -v and non-buffered children write to the parent's streams.
func New(opts ...Option) *Runner {
	r := &Runner{
		timeCommand: []string{"/usr/bin/time", "-v"},
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stdout returns the stream non-buffered children write to.
func (r *Runner) Stdout() io.Writer {
	return r.stdout
}

// Run executes the command and blocks until it exits, times out, or is
// killed. While the wait is in flight, SIGINT/SIGTERM delivered to this
// process are translated into a kill of the child's whole tree so the child
// cannot outlive the parent's own termination request.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if len(req.Command) == 0 {
		return Result{}, ErrEmptyCommand
	}

	runID := uuid.NewString()
	log := r.logger.With("run_id", runID, "cmd", req.Command[0])
	ctx = logger.WithRunID(ctx, runID)

	ctx, span := otel.Tracer("decpipe/runner").Start(ctx, "run_command",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.command", strings.Join(req.Command, " ")),
		),
	)
	defer span.End()

	h, err := r.start(req.Command, req.BufferOutput)
	if err != nil {
		span.RecordError(err)
		log.Error("failed to start command", "error", err)
		return Result{}, err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Feed stdin without blocking the wait; the child may never read it.
	go func() {
		if req.Input != "" {
			io.WriteString(h.stdin, req.Input)
		}
		h.stdin.Close()
	}()

	done := make(chan error, 1)
	go func() { done <- h.cmd.Wait() }()

	var timeoutCh <-chan time.Time
	if req.Timeout > 0 {
		timer := time.NewTimer(req.Timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	start := time.Now()
	for {
		select {
		case <-done:
			res := Result{
				Output:   cleanOutput(h.output()),
				ExitCode: h.cmd.ProcessState.ExitCode(),
			}
			span.SetAttributes(attribute.Int("run.exit_code", res.ExitCode))
			log.Info("command finished",
				"exit_code", res.ExitCode, "duration", time.Since(start))
			return res, nil

		case <-timeoutCh:
			h.Kill()
			// Finish the wait so the output produced before the kill is
			// fully drained into the capture.
			<-done
			res := Result{
				Output:   cleanOutput(h.output()),
				ExitCode: TimeoutExitCode,
				TimedOut: true,
			}
			span.SetAttributes(
				attribute.Int("run.exit_code", res.ExitCode),
				attribute.Bool("run.timed_out", true),
			)
			log.Warn("command timed out", "timeout", req.Timeout)
			return res, nil

		case <-ctx.Done():
			h.Kill()
			<-done
			span.RecordError(ctx.Err())
			log.Warn("context cancelled, process tree killed")
			return Result{
				Output:   cleanOutput(h.output()),
				ExitCode: h.cmd.ProcessState.ExitCode(),
			}, ctx.Err()

		case sig := <-sigCh:
			// Take the child tree down first; the wait then completes with
			// the child's death status and the run returns normally.
			log.Warn("signal received, killing process tree", "signal", sig.String())
			h.Kill()
		}
	}
}

// RunMeasured executes the command with time and memory instrumentation.
// When the measurement utility is unavailable the run silently degrades to
// an unmeasured one: memory is reported as 0 and the output is unmodified.
func (r *Runner) RunMeasured(ctx context.Context, command []string, input string, timeout time.Duration) (Measured, error) {
	instrumented := r.timeToolAvailable()
	cmd := command
	if instrumented {
		cmd = append(append([]string{}, r.timeCommand...), command...)
	}

	start := time.Now()
	res, err := r.Run(ctx, Request{
		Command:      cmd,
		Input:        input,
		Timeout:      timeout,
		BufferOutput: true,
	})
	if err != nil {
		return Measured{}, err
	}

	// A run rounding to zero seconds is reported as one.
	elapsed := int(math.Round(time.Since(start).Seconds()))
	if elapsed == 0 {
		elapsed = 1
	}

	m := Measured{Elapsed: elapsed, Output: res.Output, ExitCode: res.ExitCode}
	if instrumented && res.Output != "" {
		m.MemoryMB = memoryFromMeasuredOutput(res.Output)
		m.Output = stripMeasuredOutput(res.Output)
	}
	return m, nil
}

func (r *Runner) timeToolAvailable() bool {
	if len(r.timeCommand) == 0 {
		return false
	}
	_, err := exec.LookPath(r.timeCommand[0])
	return err == nil
}

// ansiEscape matches shell color escape sequences.
var ansiEscape = regexp.MustCompile(`\x1b[^m]*m`)

// cleanOutput trims trailing whitespace and strips shell colors. Stripping
// is idempotent: applying it twice yields the same text.
func cleanOutput(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	return ansiEscape.ReplaceAllString(s, "")
}
