package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"spritelab.dev/internal/sim/stage"
	"spritelab.dev/internal/sim/tuning"
	"spritelab.dev/internal/trace"
	"spritelab.dev/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		traceDir   = flag.String("trace", "", "frame trace directory (empty disables tracing)")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "rng seed for sprite spawn points")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", *tuningPath)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	st := stage.New(tune, *seed, logger)

	var frameLog *trace.FrameLogger
	if strings.TrimSpace(*traceDir) != "" {
		frameLog = trace.NewFrameLogger(*traceDir)
		st.SetFrameLogger(frameLog)
		defer frameLog.Close()
	}

	wsServer, err := ws.NewServer(st, logger)
	if err != nil {
		logger.Fatalf("ws server: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := st.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("stage loop: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", wsServer.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/statusz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(st.Counters().Snapshot())
	})

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("stage %vx%v at %d Hz, listening on %s", tune.StageWidth, tune.StageHeight, tune.TickRateHz, *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("listen: %v", err)
	}
	logger.Printf("shutdown complete")
}
