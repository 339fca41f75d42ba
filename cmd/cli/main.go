package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pawpals/pawpals/internal/buildinfo"
	"github.com/pawpals/pawpals/internal/client/cli"
	"github.com/pawpals/pawpals/internal/client/config"
	"github.com/pawpals/pawpals/internal/logging"
	"github.com/pawpals/pawpals/internal/stubapi"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewDefault(os.Stderr)
	cfg := config.LoadConfig()

	// -demo runs against an in-process fixture backend instead of a real
	// deployment; handy for trying the client out.
	if demoRequested(os.Args[1:]) {
		addr, shutdown, err := startDemoServer(logger)
		if err != nil {
			log.Fatalf("demo server: %v", err)
		}
		defer shutdown()
		cfg.APIBaseURL = "http://" + addr
		logger.Info(ctx, "demo backend started", "addr", addr)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

func demoRequested(args []string) bool {
	for _, a := range args {
		if a == "-demo" || a == "--demo" {
			return true
		}
	}
	return false
}

func startDemoServer(logger logging.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	srv := &http.Server{Handler: stubapi.NewServer(logger).Handler()}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("demo server stopped: %v", err)
		}
	}()

	return ln.Addr().String(), func() { _ = srv.Close() }, nil
}
