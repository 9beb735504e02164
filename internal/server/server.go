// Package server exposes the engine over WebSocket. Every connection gets
// its own session; text frames carry protocol lines in both directions.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/protocol"
	"github.com/mage-of-maple/CPW80-Engine/internal/session"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

const shutdownGrace = 5 * time.Second

// Server routes HTTP requests and owns the open engine connections.
type Server struct {
	router   *mux.Router
	handler  http.Handler
	cfg      *config.Config
	log      zerolog.Logger
	upgrader websocket.Upgrader

	ctx         context.Context
	clients     map[*client]struct{}
	clientsLock sync.RWMutex
}

type client struct {
	conn *websocket.Conn
	log  zerolog.Logger
}

// New builds a server for cfg. Connections inherit ctx.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		cfg:     cfg,
		log:     log,
		ctx:     ctx,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, o := range cfg.Server.AllowedOrigins {
				if o == "*" || o == origin {
					return true
				}
			}
			return false
		}
	}

	s.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	s.router.HandleFunc(cfg.Server.Path, s.wsHandler)
	s.router.HandleFunc("/variants", s.variantsHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)

	var h http.Handler = s.router
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log}))(h)
	s.handler = handlers.LoggingHandler(accessLog{log}, h)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Clients returns the number of open engine connections.
func (s *Server) Clients() int {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()
	return len(s.clients)
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", srv.Addr).Str("path", s.cfg.Server.Path).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.closeClients()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		s.log.Debug().Err(err).Msg("upgrade failed")
		return
	}
	c := &client{conn: conn, log: s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()}
	s.clientsLock.Lock()
	s.clients[c] = struct{}{}
	s.clientsLock.Unlock()
	defer func() {
		s.clientsLock.Lock()
		delete(s.clients, c)
		s.clientsLock.Unlock()
		conn.Close()
	}()

	c.log.Info().Msg("engine connection opened")
	if err := s.serve(c); err != nil {
		c.log.Warn().Err(err).Msg("engine connection failed")
		return
	}
	c.log.Info().Msg("engine connection closed")
}

// serve runs a private session for c: one goroutine turns incoming frames
// into input lines, the other runs the protocol adapter on them.
func (s *Server) serve(c *client) error {
	sess, err := session.New(s.ctx, s.cfg, c.log)
	if err != nil {
		return err
	}
	out := &frameWriter{conn: c.conn}
	adapter := protocol.New(sess, out, c.log)
	pr, pw := io.Pipe()

	g, ctx := errgroup.WithContext(s.ctx)
	g.Go(func() error {
		defer pw.Close()
		for {
			_, msg, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.log.Debug().Err(err).Msg("read")
				}
				return nil
			}
			if _, err := pw.Write(append(msg, '\n')); err != nil {
				return nil
			}
		}
	})
	g.Go(func() error {
		defer func() {
			pr.Close()
			out.close()
			c.conn.Close()
		}()
		return adapter.Run(ctx, pr)
	})
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) closeClients() {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()
	for c := range s.clients {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		c.conn.Close()
	}
}

func (s *Server) variantsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	body := struct {
		Default  string   `json:"default"`
		Variants []string `json:"variants"`
	}{
		Default:  s.cfg.Engine.Variant,
		Variants: variant.Names(),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn().Err(err).Msg("encode variants")
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, "ok\n")
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

// frameWriter sends every complete output line as one text frame.
type frameWriter struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	pending []byte
	closed  bool
}

func (f *frameWriter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, io.ErrClosedPipe
	}
	f.pending = append(f.pending, p...)
	for {
		i := bytes.IndexByte(f.pending, '\n')
		if i < 0 {
			return len(p), nil
		}
		if err := f.conn.WriteMessage(websocket.TextMessage, f.pending[:i]); err != nil {
			return 0, err
		}
		f.pending = f.pending[i+1:]
	}
}

func (f *frameWriter) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = f.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// accessLog feeds gorilla's Apache-style access lines into zerolog.
type accessLog struct{ log zerolog.Logger }

func (a accessLog) Write(p []byte) (int, error) {
	a.log.Debug().Str("access", string(bytes.TrimRight(p, "\n"))).Msg("http")
	return len(p), nil
}

type recoveryLogger struct{ log zerolog.Logger }

func (r recoveryLogger) Println(v ...interface{}) {
	r.log.Error().Interface("panic", v).Msg("handler panicked")
}
