package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"decpipe/internal/runner"
)

// fakeTool writes an executable shell script standing in for the archive
// tool and returns its path.
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ar")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake tool: %v", err)
	}
	return path
}

func TestHasSignature(t *testing.T) {
	ctx := context.Background()

	yes := New(fakeTool(t, "exit 0"), "", runner.New())
	if !yes.HasSignature(ctx, "/some/file") {
		t.Error("expected signature to be detected on zero exit")
	}

	no := New(fakeTool(t, "exit 1"), "", runner.New())
	if no.HasSignature(ctx, "/some/file") {
		t.Error("expected no signature on nonzero exit")
	}
}

func TestIsValid(t *testing.T) {
	ctx := context.Background()

	// The tool's own messages are discarded; only the return code counts.
	insp := New(fakeTool(t, "echo 'not an archive' >&2; exit 2"), "", runner.New())
	if insp.IsValid(ctx, "/some/file") {
		t.Error("expected invalid archive on nonzero exit")
	}
}

func TestIsMachOArchive(t *testing.T) {
	ctx := context.Background()

	insp := New("", fakeTool(t, `test "$1" = "--check-archive" || exit 2; exit 0`), runner.New())
	if !insp.IsMachOArchive(ctx, "/some/file") {
		t.Error("expected Mach-O archive to be detected")
	}
}

func TestObjectCount(t *testing.T) {
	ctx := context.Background()

	insp := New(fakeTool(t, "echo 3"), "", runner.New())
	n, err := insp.ObjectCount(ctx, "/some/file")
	if err != nil {
		t.Fatalf("ObjectCount failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 objects, got %d", n)
	}
}

func TestObjectCount_DefaultsToOneOnFailure(t *testing.T) {
	ctx := context.Background()

	insp := New(fakeTool(t, "exit 1"), "", runner.New())
	n, err := insp.ObjectCount(ctx, "/some/file")
	if err == nil {
		t.Error("expected error on nonzero exit")
	}
	if n != 1 {
		t.Errorf("expected count to default to 1, got %d", n)
	}
}

func TestObjectCount_UnparsableOutput(t *testing.T) {
	ctx := context.Background()

	insp := New(fakeTool(t, "echo not-a-number"), "", runner.New())
	n, err := insp.ObjectCount(ctx, "/some/file")
	if err == nil {
		t.Error("expected parse error")
	}
	if n != 1 {
		t.Errorf("expected count to default to 1, got %d", n)
	}
}

func TestListNumberedContent_PrintsHeader(t *testing.T) {
	ctx := context.Background()

	var out strings.Builder
	r := runner.New(runner.WithStdio(&out, &out))
	insp := New(fakeTool(t, "echo '0\tmain.o'"), "", r)

	if err := insp.ListNumberedContent(ctx, "/some/file"); err != nil {
		t.Fatalf("ListNumberedContent failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Index\tName\n") {
		t.Errorf("expected header before listing, got %q", out.String())
	}
	if !strings.Contains(out.String(), "main.o") {
		t.Errorf("expected tool listing to pass through, got %q", out.String())
	}
}

func TestExtractByName(t *testing.T) {
	ctx := context.Background()

	argfile := filepath.Join(t.TempDir(), "args")
	insp := New(fakeTool(t, `echo "$@" > `+argfile), "", runner.New())

	if err := insp.ExtractByName(ctx, "/arc.a", "main.o", "/tmp/main.o"); err != nil {
		t.Fatalf("ExtractByName failed: %v", err)
	}
	args, err := os.ReadFile(argfile)
	if err != nil {
		t.Fatalf("failed to read recorded args: %v", err)
	}
	want := "/arc.a --name main.o --output /tmp/main.o"
	if strings.TrimSpace(string(args)) != want {
		t.Errorf("expected args %q, got %q", want, strings.TrimSpace(string(args)))
	}
}

func TestExtractByIndex_ToolFailure(t *testing.T) {
	ctx := context.Background()

	insp := New(fakeTool(t, "exit 1"), "", runner.New())
	if err := insp.ExtractByIndex(ctx, "/arc.a", "0", "/tmp/out.o"); err == nil {
		t.Error("expected error on nonzero exit")
	}
}
