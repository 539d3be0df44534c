package cookies

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/hamed0406/hookprobe/internal/domain"
)

// Setter places one cookie into a browser.
type Setter interface {
	SetCookie(ctx context.Context, c domain.CookieRecord) error
}

type Failure struct {
	Name string
	Err  error
}

type InjectReport struct {
	Injected []string
	Failed   []Failure
}

// Err combines every per-record failure, or returns nil.
func (r InjectReport) Err() error {
	var err error
	for _, f := range r.Failed {
		err = multierr.Append(err, fmt.Errorf("%s: %w", f.Name, f.Err))
	}
	return err
}

// Apply sets every record, skipping the ones that fail. onFail, if set, is
// called as each failure happens. Apply stops early only when ctx ends.
func Apply(ctx context.Context, s Setter, records []domain.CookieRecord, onFail func(Failure)) InjectReport {
	var rep InjectReport
	for _, c := range records {
		if ctx.Err() != nil {
			break
		}
		var err error
		if c.Name == "" {
			err = errors.New("cookie has no name")
		} else {
			err = s.SetCookie(ctx, c)
		}
		if err != nil {
			f := Failure{Name: c.Name, Err: err}
			rep.Failed = append(rep.Failed, f)
			if onFail != nil {
				onFail(f)
			}
			continue
		}
		rep.Injected = append(rep.Injected, c.Name)
	}
	return rep
}
