package testutil

import (
	"context"
	"errors"
	"net/http"

	"kbo-news-service/internal/poller"
)

// StubPoller stands in for the cache warmer the server starts when warming
// is enabled. StatusVal feeds the /ready check.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls++
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StubHTTPServer replaces the news or metrics listener. An empty AddrVal
// reports ":0" and a nil HandlerVal an empty mux.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// BlockingHTTPServer holds Shutdown until Unblock is closed or the shutdown
// deadline passes, like a listener still draining a browser-backed request.
type BlockingHTTPServer struct {
	StubHTTPServer
	Unblock chan struct{}
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

// ErrListen is returned by ErrHTTPServer.
var ErrListen = errors.New("listen failure")

// ErrHTTPServer fails to bind, which should stop the whole service.
type ErrHTTPServer struct {
	StubHTTPServer
}

func (e *ErrHTTPServer) ListenAndServe() error {
	e.ListenCalls++
	return ErrListen
}

// CloseableHTTPServer reports a clean close from ListenAndServe.
type CloseableHTTPServer struct {
	StubHTTPServer
}

func (c *CloseableHTTPServer) ListenAndServe() error {
	c.ListenCalls++
	return http.ErrServerClosed
}
