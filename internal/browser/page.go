// Package browser drives a headless browser session for pages that only
// render their content after client-side scripting.
package browser

import (
	"context"
	"time"
)

// Page is a single browser tab. Implementations are not safe for concurrent
// use; one goroutine owns a page for the lifetime of a session.
type Page interface {
	Navigate(url string) error
	// HTML returns the current serialized document.
	HTML() (string, error)
	// ScrollBy scrolls down by fraction of the viewport height.
	ScrollBy(fraction float64) error
	ScrollTop() error
	ScrollHeight() (int64, error)
	// WaitReady blocks until selector matches a rendered element or timeout
	// elapses.
	WaitReady(selector string, timeout time.Duration) error
}

// Launcher starts isolated browser sessions. The returned release func tears
// the session down and must be called exactly once, including on error paths
// after a successful Launch.
type Launcher interface {
	Launch(ctx context.Context) (Page, func(), error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context) (Page, func(), error)

func (f LauncherFunc) Launch(ctx context.Context) (Page, func(), error) {
	return f(ctx)
}
