package infra

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rythmn1111/final-cam/ports"
)

// shutdownTimeout bounds the graceful drain on Close. Anything still
// connected after that is cut off hard.
const shutdownTimeout = 5 * time.Second

type WebServer struct {
	log      ports.Logger
	srv      *http.Server
	addr     net.Addr
	shutdown context.CancelFunc
	closeWg  sync.WaitGroup
}

func NewWebServer(log ports.Logger, addr string, handler http.Handler) (*WebServer, error) {
	log = log.With(slog.String("entity", "WebServer"))

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	// The base context is cancelled on Close, so long lived request
	// handlers (the event stream) observe shutdown through their
	// request context and return instead of holding the drain open.
	ctx, cancel := context.WithCancel(context.Background())
	s := &WebServer{
		log: log,
		srv: &http.Server{
			Handler:     handler,
			BaseContext: func(net.Listener) context.Context { return ctx },
		},
		addr:     l.Addr(),
		shutdown: cancel,
	}

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Info("started", slog.String("addr", addr))
		defer log.Warn("complete")
		defer l.Close()
		err := s.srv.Serve(l)
		if err != nil && err != http.ErrServerClosed {
			log.Error("serve error", slog.Any("err", err))
		}
	}()

	return s, nil
}

// Addr returns the bound listen address.
func (s *WebServer) Addr() string {
	return s.addr.String()
}

func (s *WebServer) Close() {
	s.log.Info("closing")
	s.shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error("shutdown error", slog.Any("err", err))
		s.srv.Close()
	}
	s.closeWg.Wait()
	s.srv = nil
}
