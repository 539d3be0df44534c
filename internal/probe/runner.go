package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/hookprobe/internal/domain"
)

const userAgent = "hookprobe/1.0"

// Runner delivers one payload per call. It never retries.
type Runner struct {
	Client *http.Client
	Logger *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	// The per-call timeout lives on the request context.
	return &Runner{Client: &http.Client{}, Logger: logger}
}

// Run POSTs p to target once and reports what happened. Failures are
// folded into the result; Run itself never returns an error.
func (r *Runner) Run(ctx context.Context, name, target string, p Payload, timeout time.Duration) (res domain.ProbeResult) {
	res = domain.ProbeResult{
		ID:        uuid.NewString(),
		Name:      name,
		URL:       target,
		Timeout:   timeout,
		CheckedAt: time.Now().UTC(),
	}
	defer func() { r.logResult(res) }()

	if !validTarget(target) {
		return transport(res, fmt.Errorf("invalid target URL %q", target))
	}
	if timeout <= 0 {
		return transport(res, fmt.Errorf("timeout must be positive, got %s", timeout))
	}
	if p == nil {
		return transport(res, errors.New("no payload"))
	}

	body, contentType, err := p.Encode()
	if err != nil {
		return transport(res, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return transport(res, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := r.Client.Do(req)
	if err != nil {
		res.Elapsed = time.Since(start)
		return classify(ctx, res, err)
	}
	defer resp.Body.Close()

	// The body is part of the response; reading it shares the deadline.
	raw, err := io.ReadAll(resp.Body)
	res.Elapsed = time.Since(start)
	if err != nil {
		return classify(ctx, res, err)
	}

	res.Outcome = domain.OutcomeOK
	res.StatusCode = resp.StatusCode
	res.Body = string(raw)
	return res
}

func (r *Runner) logResult(res domain.ProbeResult) {
	fields := []zap.Field{
		zap.String("id", res.ID),
		zap.String("name", res.Name),
		zap.String("url", res.URL),
		zap.String("outcome", string(res.Outcome)),
		zap.Float64("latency_ms", res.LatencyMS()),
		zap.Duration("timeout", res.Timeout),
	}
	switch res.Outcome {
	case domain.OutcomeOK:
		r.Logger.Info("probe_done", append(fields,
			zap.Int("status", res.StatusCode),
			zap.Int("body_bytes", len(res.Body)),
		)...)
	default:
		r.Logger.Warn("probe_failed", append(fields, zap.String("reason", res.Reason))...)
	}
}

// classify reports a timeout only when the probe's own deadline expired.
// Faster failures that merely look like timeouts (a resolver i/o timeout,
// say) stay transport errors.
func classify(ctx context.Context, res domain.ProbeResult, err error) domain.ProbeResult {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.Outcome = domain.OutcomeTimeout
		res.Reason = err.Error()
		return res
	}
	return transport(res, err)
}

func transport(res domain.ProbeResult, err error) domain.ProbeResult {
	res.Outcome = domain.OutcomeTransport
	res.Reason = err.Error()
	return res
}

func validTarget(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
