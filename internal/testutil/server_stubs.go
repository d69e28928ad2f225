package testutil

import (
	"context"
	"net/http"
	"sync"
)

// StubScheduler records Start and Stop calls for the server's cron scheduler.
type StubScheduler struct {
	Err error

	mu         sync.Mutex
	startCalls int
	stopCalls  int
}

func (s *StubScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startCalls++
}

func (s *StubScheduler) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCalls++
	return s.Err
}

// Calls returns how often Start and Stop ran.
func (s *StubScheduler) Calls() (start, stop int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startCalls, s.stopCalls
}

// StubHTTPServer stands in for a listening server. ListenAndServe returns
// ListenErr at once; use http.ErrServerClosed for a clean exit. When Block is
// set, Shutdown waits for it to close or for ctx to expire.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdownCalls++
	s.mu.Unlock()
	if s.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Block:
		}
	}
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

// Calls returns how often ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}
