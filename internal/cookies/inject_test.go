package cookies

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/hamed0406/hookprobe/internal/domain"
)

type fakeSetter struct {
	fail map[string]error
	set  []string
}

func (f *fakeSetter) SetCookie(_ context.Context, c domain.CookieRecord) error {
	if err := f.fail[c.Name]; err != nil {
		return err
	}
	f.set = append(f.set, c.Name)
	return nil
}

func TestApply_SkipsFailuresAndContinues(t *testing.T) {
	s := &fakeSetter{fail: map[string]error{"bad": errors.New("invalid domain")}}
	recs := []domain.CookieRecord{
		{Name: "a", Value: "1", Domain: ".willhaben.at"},
		{Name: "bad", Value: "2", Domain: "???"},
		{Name: "", Value: "3"},
		{Name: "c", Value: "4", Domain: ".willhaben.at"},
	}

	var seen []string
	rep := Apply(context.Background(), s, recs, func(f Failure) { seen = append(seen, f.Name) })

	if strings.Join(rep.Injected, ",") != "a,c" || strings.Join(s.set, ",") != "a,c" {
		t.Fatalf("injected = %v (setter saw %v)", rep.Injected, s.set)
	}
	if len(rep.Failed) != 2 || rep.Failed[0].Name != "bad" {
		t.Fatalf("failed = %+v", rep.Failed)
	}
	if len(seen) != 2 {
		t.Fatalf("onFail called %d times", len(seen))
	}
	err := rep.Err()
	if len(multierr.Errors(err)) != 2 || !strings.Contains(err.Error(), "bad: invalid domain") {
		t.Fatalf("combined error = %v", err)
	}
}

func TestApply_NoFailuresNoError(t *testing.T) {
	rep := Apply(context.Background(), &fakeSetter{}, []domain.CookieRecord{{Name: "a"}}, nil)
	if rep.Err() != nil || len(rep.Injected) != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestApply_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeSetter{}
	rep := Apply(ctx, s, []domain.CookieRecord{{Name: "a"}, {Name: "b"}}, nil)
	if len(rep.Injected) != 0 || len(s.set) != 0 {
		t.Fatalf("nothing should be set after cancel: %+v", rep)
	}
}
