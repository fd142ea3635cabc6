// Package server runs the HTTP front of the service.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/truckhire/truckhire-server/internal/model"
)

var _ model.Server = (*HTTPServer)(nil)

// HTTPServer wraps net/http with a graceful stop. With TLS enabled it
// serves the configured certificate pair.
type HTTPServer struct {
	srv      *http.Server
	certFile string
	keyFile  string
	useTLS   bool
}

type Option func(*HTTPServer)

// WithTLS makes the server listen with the given certificate pair.
func WithTLS(certFile, keyFile string) Option {
	return func(s *HTTPServer) {
		s.useTLS = true
		s.certFile = certFile
		s.keyFile = keyFile
	}
}

func NewHTTPServer(addr string, handler http.Handler, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start blocks serving requests until Stop is called.
func (s *HTTPServer) Start() error {
	var err error
	if s.useTLS {
		err = s.srv.ListenAndServeTLS(s.certFile, s.keyFile)
	} else {
		err = s.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drains in-flight requests until ctx expires.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *HTTPServer) Address() string {
	return s.srv.Addr
}
