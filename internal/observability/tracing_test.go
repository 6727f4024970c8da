package observability

import (
	"context"
	"testing"
	"time"
)

func TestInitTracer_ReturnsShutdown(t *testing.T) {
	ctx := context.Background()

	// The exporter connects lazily, so init succeeds without a collector.
	shutdown, err := InitTracer(ctx, "decpipe-test", "localhost:4317")
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown function")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	// Shutdown may fail to flush without a collector; it must not hang.
	_ = shutdown(shutdownCtx)
}
