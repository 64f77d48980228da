package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/artofest/artofest/pkg/config"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	httpReadTimeout       = 15 * time.Second
	httpWriteTimeout      = 15 * time.Second
	httpIdleTimeout       = 60 * time.Second
	serverShutdownTimeout = 5 * time.Second
	cleanupTimeout        = 30 * time.Second
)

// Server runs the HTTP API until its context is canceled.
type Server struct {
	config       *config.Config
	ctx          context.Context
	cancel       context.CancelFunc
	router       *gin.Engine
	httpServer   *http.Server
	shutdownOnce sync.Once
	cleanupMu    sync.Mutex
	cleanups     []func()
}

func NewServer(ctx context.Context) (*Server, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, fmt.Errorf("configuration missing from context; attach a manager with config.ContextWithManager")
	}
	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		config: cfg,
		ctx:    serverCtx,
		cancel: cancel,
	}, nil
}

// Run wires dependencies, serves requests and shuts down gracefully when the
// context passed to NewServer is canceled.
func (s *Server) Run() error {
	state, mon, cleanups, err := s.setupDependencies()
	s.addCleanups(cleanups...)
	defer s.cleanup()
	if err != nil {
		return err
	}
	router, err := NewRouter(s.config, state, mon, logger.FromContext(s.ctx))
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}
	s.router = router
	return s.serve()
}

func (s *Server) serve() error {
	log := logger.FromContext(s.ctx)
	addr := net.JoinHostPort(s.config.Server.Host, strconv.Itoa(s.config.Server.Port))
	s.httpServer = s.createHTTPServer(addr)
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", "http://"+addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-s.ctx.Done():
		return s.Shutdown()
	}
}

func (s *Server) createHTTPServer(addr string) *http.Server {
	readTimeout := durationOr(s.config.Server.ReadTimeout, httpReadTimeout)
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      durationOr(s.config.Server.WriteTimeout, httpWriteTimeout),
		IdleTimeout:       httpIdleTimeout,
	}
}

// Shutdown stops accepting requests and waits for in-flight ones up to the
// configured timeout.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		log := logger.FromContext(s.ctx)
		s.cancel()
		if s.httpServer == nil {
			return
		}
		timeout := durationOr(s.config.Server.ShutdownTimeout, serverShutdownTimeout)
		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), timeout)
		defer cancel()
		log.Info("Shutting down HTTP server", "timeout", timeout)
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("http server shutdown: %w", shutdownErr)
			return
		}
		log.Info("HTTP server stopped")
	})
	return err
}

func (s *Server) addCleanups(fns ...func()) {
	s.cleanupMu.Lock()
	defer s.cleanupMu.Unlock()
	for _, fn := range fns {
		if fn != nil {
			s.cleanups = append(s.cleanups, fn)
		}
	}
}

// cleanup runs cleanup functions in reverse registration order.
func (s *Server) cleanup() {
	s.cleanupMu.Lock()
	fns := s.cleanups
	s.cleanups = nil
	s.cleanupMu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		s.runCleanupWithTimeout(fns[i], cleanupTimeout, len(fns)-1-i)
	}
}

func (s *Server) runCleanupWithTimeout(fn func(), timeout time.Duration, index int) {
	log := logger.FromContext(s.ctx)
	done := make(chan struct{})
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Cleanup function panicked", "index", index, "panic", r)
			}
			close(done)
		}()
		fn()
	}()
	select {
	case <-done:
		log.Debug("Cleanup function completed", "index", index, "duration", time.Since(start))
	case <-time.After(timeout):
		log.Warn("Cleanup function exceeded timeout", "index", index, "timeout", timeout, "elapsed", time.Since(start))
	}
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
