package cookies

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/hamed0406/hookprobe/internal/domain"
)

// Browser is a Chrome session driven over the DevTools protocol.
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc
	site   string
}

// OpenBrowser starts Chrome and navigates to site. The caller must Close
// it.
func OpenBrowser(parent context.Context, site string, headless bool) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("start-maximized", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	b := &Browser{
		ctx:  ctx,
		site: site,
		cancel: func() {
			cancelCtx()
			cancelAlloc()
		},
	}
	if err := chromedp.Run(ctx, chromedp.Navigate(site)); err != nil {
		b.Close()
		return nil, fmt.Errorf("open %s: %w", site, err)
	}
	return b, nil
}

// SetCookie runs in the browser's own context; ctx only gates the call.
func (b *Browser) SetCookie(ctx context.Context, c domain.CookieRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		p := network.SetCookie(c.Name, c.Value).
			WithPath(c.CookiePath()).
			WithSecure(c.Secure).
			WithHTTPOnly(c.HTTPOnly)
		if c.Domain != "" {
			p = p.WithDomain(c.Domain)
		} else {
			p = p.WithURL(b.site)
		}
		if exp, ok := c.Expiry(); ok {
			e := cdp.TimeSinceEpoch(exp)
			p = p.WithExpires(&e)
		}
		if ss, ok := sameSite(c.SameSite); ok {
			p = p.WithSameSite(ss)
		}
		return p.Do(ctx)
	}))
}

// Reload refreshes the page so the new cookies apply, then waits settle.
func (b *Browser) Reload(settle time.Duration) error {
	return chromedp.Run(b.ctx, chromedp.Reload(), chromedp.Sleep(settle))
}

// Cookies lists the cookies the current page sees.
func (b *Browser) Cookies() ([]*network.Cookie, error) {
	var out []*network.Cookie
	err := chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		out, err = network.GetCookies().Do(ctx)
		return err
	}))
	return out, err
}

func (b *Browser) Close() {
	if b != nil && b.cancel != nil {
		b.cancel()
	}
}

// sameSite maps extension export values to the protocol's enum.
func sameSite(v string) (network.CookieSameSite, bool) {
	switch strings.ToLower(v) {
	case "strict":
		return network.CookieSameSiteStrict, true
	case "lax":
		return network.CookieSameSiteLax, true
	case "none", "no_restriction":
		return network.CookieSameSiteNone, true
	default:
		return "", false
	}
}
