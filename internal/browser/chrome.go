package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

const (
	DefaultWindowWidth    = 1280
	DefaultWindowHeight   = 1024
	DefaultSessionTimeout = 90 * time.Second
)

// ChromeOptions configures ChromeLauncher.
type ChromeOptions struct {
	// ExecPath is the browser binary. Empty lets chromedp discover an
	// installed Chrome.
	ExecPath string
	// RemoteURL is a DevTools websocket endpoint of an externally managed
	// browser. When set no local process is started.
	RemoteURL      string
	UserAgent      string
	WindowWidth    int
	WindowHeight   int
	SessionTimeout time.Duration
}

func (o ChromeOptions) withDefaults() ChromeOptions {
	if o.WindowWidth <= 0 {
		o.WindowWidth = DefaultWindowWidth
	}
	if o.WindowHeight <= 0 {
		o.WindowHeight = DefaultWindowHeight
	}
	if o.SessionTimeout <= 0 {
		o.SessionTimeout = DefaultSessionTimeout
	}
	return o
}

func (o ChromeOptions) execOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", "new"),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(o.WindowWidth, o.WindowHeight),
	)
	if o.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(o.UserAgent))
	}
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return opts
}

// ChromeLauncher launches one headless Chrome per session through the
// DevTools protocol.
type ChromeLauncher struct {
	opts ChromeOptions
}

// NewChromeLauncher returns a launcher using opts, filling unset sizes and
// timeouts with defaults.
func NewChromeLauncher(opts ChromeOptions) *ChromeLauncher {
	return &ChromeLauncher{opts: opts.withDefaults()}
}

// Options returns the effective launcher options.
func (l *ChromeLauncher) Options() ChromeOptions {
	return l.opts
}

// Launch starts a browser and opens a tab. The session does not follow
// cancellation of ctx; it ends on release or when SessionTimeout elapses.
func (l *ChromeLauncher) Launch(ctx context.Context) (Page, func(), error) {
	base, cancelTimeout := context.WithTimeout(context.WithoutCancel(ctx), l.opts.SessionTimeout)

	var allocCtx context.Context
	var cancelAlloc context.CancelFunc
	if l.opts.RemoteURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(base, l.opts.RemoteURL)
	} else {
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(base, l.opts.execOptions()...)
	}
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	release := func() {
		cancelTab()
		cancelAlloc()
		cancelTimeout()
	}

	// An empty Run starts the browser so launch failures surface here.
	if err := chromedp.Run(tabCtx); err != nil {
		release()
		return nil, func() {}, fmt.Errorf("browser: launch: %w", err)
	}
	if l.opts.RemoteURL != "" && l.opts.UserAgent != "" {
		if err := chromedp.Run(tabCtx, emulation.SetUserAgentOverride(l.opts.UserAgent)); err != nil {
			release()
			return nil, func() {}, fmt.Errorf("browser: set user agent: %w", err)
		}
	}
	return &chromePage{ctx: tabCtx}, release, nil
}

type chromePage struct {
	ctx context.Context
}

func (p *chromePage) Navigate(url string) error {
	if err := chromedp.Run(p.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("browser: navigate: %w", err)
	}
	return nil
}

func (p *chromePage) HTML() (string, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browser: read html: %w", err)
	}
	return html, nil
}

func (p *chromePage) ScrollBy(fraction float64) error {
	js := fmt.Sprintf("window.scrollBy(0, window.innerHeight * %g); true", fraction)
	return p.eval(js, "scroll")
}

func (p *chromePage) ScrollTop() error {
	return p.eval("window.scrollTo(0, 0); true", "scroll to top")
}

func (p *chromePage) ScrollHeight() (int64, error) {
	var h int64
	if err := chromedp.Run(p.ctx, chromedp.Evaluate("document.body.scrollHeight", &h)); err != nil {
		return 0, fmt.Errorf("browser: scroll height: %w", err)
	}
	return h, nil
}

func (p *chromePage) WaitReady(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("browser: wait for %q: %w", selector, ErrWaitTimeout)
		}
		return fmt.Errorf("browser: wait for %q: %w", selector, err)
	}
	return nil
}

func (p *chromePage) eval(js, op string) error {
	var ok bool
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return fmt.Errorf("browser: %s: %w", op, err)
	}
	return nil
}

// ErrWaitTimeout is returned by WaitReady when the selector never matched.
var ErrWaitTimeout = errors.New("wait timed out")
