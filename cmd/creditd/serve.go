package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"creditd/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func runServe(cmd *cobra.Command, o *rootOptions) error {
	cfg, err := loadConfig(cmd, o, os.LookupEnv)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := buildService(cfg)
	if err != nil {
		logger.Error().Err(err).Str("model_path", cfg.ModelPath).Msg("load model")
		return err
	}
	st := svc.Status()
	logger.Info().
		Str("model", st.Model.Name).
		Str("estimator", st.Model.Estimator).
		Str("path", st.Model.Path).
		Msg("model loaded")

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc, httpapi.Mode(cfg.Mode)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Str("mode", cfg.Mode).Msg("creditd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
			return err
		}
		logger.Info().Msg("server stopped")
		return nil
	})
	return g.Wait()
}
