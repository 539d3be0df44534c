package probe

import (
	"context"
	"time"

	"github.com/hamed0406/hookprobe/internal/domain"
)

// Case is one named payload shape with its own timeout.
type Case struct {
	Name    string
	Payload Payload
	Timeout time.Duration
}

// Suite runs its cases one after another against a single target.
type Suite struct {
	Runner *Runner
	Cases  []Case
}

func NewSuite(r *Runner, cases ...Case) *Suite {
	return &Suite{Runner: r, Cases: cases}
}

// Run calls before and after around each delivery (either may be nil) and
// stops early once ctx is cancelled.
func (s *Suite) Run(ctx context.Context, target string, before func(Case), after func(Case, domain.ProbeResult)) []domain.ProbeResult {
	results := make([]domain.ProbeResult, 0, len(s.Cases))
	for _, c := range s.Cases {
		if ctx.Err() != nil {
			break
		}
		if before != nil {
			before(c)
		}
		res := s.Runner.Run(ctx, c.Name, target, c.Payload, c.Timeout)
		if after != nil {
			after(c, res)
		}
		results = append(results, res)
	}
	return results
}
