package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/kgraph/internal/viz"
)

// SocketPath is where browsers connect.
const SocketPath = "/ws"

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr   string
	Title  string
	Engine EngineOptions

	// WatchPath is the dataset file to watch for changes; empty disables
	// watching.
	WatchPath string
}

// Server is the live preview server.
type Server struct {
	opts     Options
	engine   *Engine
	page     string
	upgrader websocket.Upgrader
}

// New builds the renderer and the live page.
func New(opts Options) (*Server, error) {
	e, err := NewEngine(opts.Engine)
	if err != nil {
		return nil, err
	}
	html := viz.DefaultOptions()
	if opts.Title != "" {
		html.Title = opts.Title
	}
	page, err := viz.GenerateLiveHTML(viz.LiveOptions{
		HTMLOptions: html,
		SocketPath:  SocketPath,
		Renderer:    opts.Engine.Kind,
		Controls:    viz.Controls(opts.Engine.Kind, opts.Engine.Render),
	})
	if err != nil {
		return nil, fmt.Errorf("generating page: %w", err)
	}
	return &Server{opts: opts, engine: e, page: page}, nil
}

// Engine returns the renderer owner.
func (s *Server) Engine() *Engine { return s.engine }

// Handler returns the HTTP routes. The engine must be running.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET "+SocketPath, s.handleSocket)
	mux.HandleFunc("GET /frame.json", s.handleFrame)
	mux.HandleFunc("GET /snapshot.html", s.handleSnapshot)
	return mux
}

// Run serves until ctx is done or a component fails.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{Addr: s.opts.Addr, Handler: s.Handler()}

	g.Go(func() error {
		return s.engine.Run(ctx)
	})
	g.Go(func() error {
		slog.Info("serving", "addr", s.opts.Addr, "renderer", s.engine.Kind())
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if s.opts.WatchPath != "" {
		g.Go(func() error {
			return Watch(ctx, s.opts.WatchPath, func() {
				_ = s.engine.Reload(ctx)
			})
		})
	}
	return g.Wait()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.page)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f, err := s.engine.Frame(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	data, err := viz.FrameJSON(&f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, data)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	f, err := s.engine.Frame(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	opts := viz.DefaultOptions()
	if s.opts.Title != "" {
		opts.Title = s.opts.Title
	}
	html, err := viz.GenerateHTML(&f, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// handleSocket attaches a browser for the life of its connection. One
// goroutine reads messages into the engine; another writes the engine's
// messages out.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	out, err := s.engine.Attach(ctx, id)
	if errors.Log(err) != nil {
		return
	}
	defer s.engine.Detach(context.WithoutCancel(ctx), id)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case m, ok := <-out:
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
					conn.Close()
					return nil
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(m); err != nil {
					conn.Close()
					return err
				}
			}
		}
	})
	g.Go(func() error {
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					return err
				}
				return nil
			}
			in, err := Decode(data)
			if err != nil {
				slog.Warn("bad message", "session", id, "err", err)
				continue
			}
			if err := s.engine.Handle(ctx, id, in); err != nil {
				return nil
			}
		}
	})
	errors.Log(g.Wait())
}
