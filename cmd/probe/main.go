package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/hookprobe/internal/config"
	"github.com/hamed0406/hookprobe/internal/domain"
	"github.com/hamed0406/hookprobe/internal/logging"
	"github.com/hamed0406/hookprobe/internal/payload"
	"github.com/hamed0406/hookprobe/internal/probe"
	"github.com/hamed0406/hookprobe/internal/report"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.ValidateProbe(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "config:", e)
		}
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogDir, "probe", cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := report.New(os.Stdout)
	cases, skipped := payload.Cases(payload.OptionsFromConfig(cfg))
	for _, s := range skipped {
		logger.Warn("case_skipped", zap.String("case", s.Name), zap.String("reason", s.Reason))
	}

	out.Target(cfg.WebhookURL)
	logger.Info("probe_start", zap.String("target", cfg.WebhookURL), zap.Int("cases", len(cases)))

	suite := probe.NewSuite(probe.NewRunner(logger), cases...)
	results := suite.Run(ctx, cfg.WebhookURL,
		out.Case,
		func(_ probe.Case, r domain.ProbeResult) {
			out.Result(r)
			if r.Outcome == domain.OutcomeTransport {
				out.DNS(probe.DiagnoseDNS(ctx, nil, r.URL))
			}
		},
	)
	for _, s := range skipped {
		out.Skipped(s.Name, s.Reason)
	}
	out.Summary(results)

	logger.Info("probe_finished", zap.Int("ran", len(results)), zap.Int("skipped", len(skipped)))
}
