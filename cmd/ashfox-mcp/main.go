// main.go — the ashfox-mcp server entrypoint. Parses configuration,
// wires the session store, resource store, editor port, and router into
// an http.Server, and waits for SIGINT/SIGTERM. Grounded on the teacher's
// cmd/dev-console/main_connection_mcp.go awaitShutdownSignal: a buffered
// signal channel plus a bounded Shutdown context, generalized to exit 0
// on any clean interrupt rather than logging a lifecycle event to a
// capture buffer.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashfox/ashfox-mcp/internal/config"
	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/logx"
	"github.com/ashfox/ashfox-mcp/internal/resourcestore"
	"github.com/ashfox/ashfox-mcp/internal/revguard"
	"github.com/ashfox/ashfox-mcp/internal/router"
	"github.com/ashfox/ashfox-mcp/internal/session"
	"github.com/ashfox/ashfox-mcp/internal/transport"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ashfox-mcp: invalid configuration: %v\n", err)
		return 1
	}

	log := logx.New("ashfox-mcp", cfg.LogLevel)

	sessions := session.NewStore(session.DefaultTTL)
	resources := resourcestore.New()
	editor := editorport.NewMemoryPort()
	policy := revguard.Policy{RequireRevision: true}

	rt := router.New(sessions, resources, editor, policy, log.With("router"))
	tr := transport.New(cfg, rt, log.With("transport"))

	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     tr.Handler(),
		ReadTimeout: 30 * time.Second,
	}

	httpDone := make(chan struct{})
	go func() {
		defer close(httpDone)
		log.Info("listening", map[string]any{"addr": cfg.Addr(), "path": cfg.Path})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listener exited unexpectedly", map[string]any{"error": err.Error()})
		}
	}()

	return awaitShutdown(srv, httpDone, log)
}

// awaitShutdown blocks until SIGINT/SIGTERM or an unexpected listener
// exit, then drains in-flight requests within a bounded window.
func awaitShutdown(srv *http.Server, httpDone <-chan struct{}, log *logx.Logger) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigCh:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	case <-httpDone:
		log.Error("http listener died before a shutdown signal arrived", nil)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
		return 1
	}
	return exitCode
}
