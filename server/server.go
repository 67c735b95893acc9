// Package server exposes the codecs over HTTP.
//
// Routes:
//
//	GET  /                     health text
//	POST /upload               store a multipart "file"
//	POST /compress             compress a multipart "file" with "algorithm"
//	POST /decompress           decompress a multipart "file" with "algorithm"
//	GET  /download/{filename}  fetch a stored file
//
// The variant is chosen from the uploaded file's extension. Every result is
// written to the store so it can be downloaded afterwards. Responses carry a
// permissive CORS header.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/op/go-logging"

	"github.com/arloliu/lossless/store"
)

var log = logging.MustGetLogger("lossless/server")

// Server serves the compression API from one store.
type Server struct {
	cfg   Config
	store *store.Store
	mux   *http.ServeMux
}

// New creates a Server. The store is opened from cfg.UploadDir when st is nil.
func New(cfg Config, st *store.Store) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	if st == nil {
		var err error
		if st, err = store.New(cfg.UploadDir); err != nil {
			return nil, err
		}
	}

	s := &Server{cfg: cfg, store: st, mux: http.NewServeMux()}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("POST /upload", s.handleUpload)
	s.mux.HandleFunc("POST /compress", s.handleCompress)
	s.mux.HandleFunc("POST /decompress", s.handleDecompress)
	s.mux.HandleFunc("GET /download/{filename}", s.handleDownload)
}

// Handler returns the HTTP handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	return withLogging(withCORS(s.mux))
}

// Store returns the file store backing the server.
func (s *Server) Store() *store.Store {
	return s.store
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. The store janitor runs for the lifetime of the call.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.store.RunJanitor(janitorCtx, s.cfg.CleanupInterval, s.cfg.MaxFileAge)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Infof("listening on %s, storing files in %s", ln.Addr(), s.store.Dir())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	log.Infof("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// ListenAndServe listens on cfg.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, ln)
}
