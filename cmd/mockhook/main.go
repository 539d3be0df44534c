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

	"go.uber.org/zap"

	"github.com/hamed0406/hookprobe/internal/config"
	"github.com/hamed0406/hookprobe/internal/logging"
	"github.com/hamed0406/hookprobe/internal/mockhook"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, "mockhook", cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store := mockhook.NewStore()
	hook := mockhook.NewServer(logger, store, mockhook.Options{
		Delay:  cfg.MockDelay,
		Status: cfg.MockStatus,
		RPM:    cfg.MockRPM,
		Burst:  cfg.MockBurst,
	})

	srv := &http.Server{
		Addr:              cfg.MockAddr,
		Handler:           hook.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("mockhook_listen",
		zap.String("addr", cfg.MockAddr),
		zap.Duration("delay", cfg.MockDelay),
		zap.Int("status", cfg.MockStatus),
		zap.Int("rpm", cfg.MockRPM),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info("mockhook_stopped", zap.Int("deliveries", len(store.List())))
}
