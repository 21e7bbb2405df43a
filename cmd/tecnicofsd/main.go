// Command tecnicofsd is the TecnicoFS server entrypoint: it parses
// "numthreads socket-path" (proj3/server/main.c's argv contract), binds the
// socket, and runs the worker pool until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tecnicofs/tecnicofs/fs"
	"github.com/tecnicofs/tecnicofs/metrics"
	"github.com/tecnicofs/tecnicofs/server"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	metricsAddr := flag.String("metrics-addr", "", "optional host:port to serve /metrics on; empty disables it")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] numthreads socket-path\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	numThreads, err := strconv.Atoi(flag.Arg(0))
	if err != nil || numThreads <= 0 {
		fmt.Fprintln(os.Stderr, "error: invalid number of threads, must be an integer >= 1")
		os.Exit(1)
	}
	socketPath := flag.Arg(1)

	logger := log.New(os.Stderr, "", log.Lmicroseconds)

	var rec *metrics.Recorder
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *metricsAddr != "" {
		rec = metrics.New(prometheus.DefaultRegisterer)
		go func() {
			if err := rec.Serve(ctx, *metricsAddr); err != nil {
				logger.Printf("metrics: %v", err)
			}
		}()
	}

	fsys := fs.New()
	srv, err := server.New(fsys, socketPath, numThreads, server.WithLogger(logger), server.WithMetrics(rec))
	if err != nil {
		logger.Fatalf("bind: %v", err)
	}

	logger.Printf("tecnicofsd: listening on %s with %d workers", socketPath, numThreads)
	if err := srv.Serve(ctx); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}
