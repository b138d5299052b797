package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/candlepad/candlepad/internal/buffer"
	"github.com/candlepad/candlepad/internal/config"
	"github.com/candlepad/candlepad/internal/dispatch"
	"github.com/candlepad/candlepad/internal/logger"
	"github.com/candlepad/candlepad/internal/session"
	"github.com/candlepad/candlepad/internal/version"
)

// serveAction loads the configuration, wires the engine together, and runs
// the HTTP host until interrupted.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if addr := cmd.String("listen"); addr != "" {
		cfg.Server.ListenAddr = addr
	}

	lg, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer lg.Sync()

	provider := buffer.NewMemoryProvider()
	store := session.NewStore(provider, lg,
		session.WithCapacity(cfg.Session.Capacity),
		session.WithEvaluator(cfg.Evaluator()),
	)
	dispatcher := dispatch.NewDispatcher(store, lg,
		dispatch.WithRenderer(cfg.Renderer()),
		dispatch.WithEvaluator(cfg.Evaluator()),
	)

	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           newRouter(provider, dispatcher),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		lg.Info("candlepad listening",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.String("version", version.GetVersion()))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func main() {
	cmd := &cli.Command{
		Name:  "candlepad-serve",
		Usage: "Host the candle-editing engine over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
				Value:   "config/candlepad.yaml",
			},
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Listen address, overrides the config file",
			},
		},
		Action: serveAction,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
