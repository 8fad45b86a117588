// Package serve runs the live preview: one renderer owned by a single
// goroutine, browsers attached over websockets, and an optional watcher that
// rebuilds the graph when the dataset file changes.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/base/errors"
	"golang.org/x/time/rate"

	"github.com/matsen/kgraph/internal/dataset"
	"github.com/matsen/kgraph/internal/input"
	"github.com/matsen/kgraph/internal/navigate"
	"github.com/matsen/kgraph/internal/render"
)

// ErrStopped is returned by Do once the engine has stopped.
var ErrStopped = fmt.Errorf("engine stopped")

// sendBuffer is the number of messages queued per browser before frames are
// dropped.
const sendBuffer = 16

// DefaultTickRate is how many times per second the layout advances.
const DefaultTickRate = 60

// Loader returns the current dataset.
type Loader func() (*dataset.Dataset, error)

// FileLoader loads the dataset at path, or the built-in one if path is empty.
func FileLoader(path string) Loader {
	return func() (*dataset.Dataset, error) {
		return dataset.Load(path)
	}
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	Kind   render.Kind
	Render render.Config
	// FPS caps how often frames are sent to browsers.
	FPS int
	// TickRate is the layout step rate; 0 means DefaultTickRate. It does not
	// depend on FPS so the layout settles in the same wall time at any FPS.
	TickRate int
	BaseURL  string
	Load     Loader

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Engine owns the renderer. Everything that touches it runs on the goroutine
// executing Run; other goroutines submit work with Do.
type Engine struct {
	kind     render.Kind
	r        render.Renderer
	load     Loader
	resolver *navigate.Resolver
	interval time.Duration
	limiter  *rate.Limiter
	now      func() time.Time

	cmds chan func()
	done chan struct{}

	sessions map[string]*session
	current  string // session whose input is being handled
	dirty    bool
}

// session is one attached browser.
type session struct {
	id      string
	send    chan Message
	machine *input.Machine
}

// offer queues m without blocking and reports whether it was queued.
func (s *session) offer(m Message) bool {
	select {
	case s.send <- m:
		return true
	default:
		return false
	}
}

// NewEngine builds the renderer from the first load. Unlike later reloads,
// a failure here is returned.
func NewEngine(opts EngineOptions) (*Engine, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.TickRate < 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", opts.TickRate)
	}
	if opts.TickRate == 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.Load == nil {
		opts.Load = FileLoader("")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	resolver, err := navigate.NewResolver(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		kind:     opts.Kind,
		load:     opts.Load,
		resolver: resolver,
		interval: time.Second / time.Duration(opts.TickRate),
		limiter:  rate.NewLimiter(rate.Limit(opts.FPS), 1),
		now:      opts.Now,
		cmds:     make(chan func()),
		done:     make(chan struct{}),
		sessions: make(map[string]*session),
	}
	cfg := opts.Render
	cfg.OnNavigate = e.navigate
	e.r, err = render.New(opts.Kind, cfg)
	if err != nil {
		return nil, err
	}
	if err := e.reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Kind returns the renderer kind.
func (e *Engine) Kind() render.Kind { return e.kind }

// Run advances the renderer TickRate times per second until ctx is done.
// Frames go out at most FPS times per second, and only when something
// changed; a change held back by the limit goes out on a later tick.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	defer e.r.Teardown()

	t := time.NewTicker(e.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			for id := range e.sessions {
				e.detach(id)
			}
			return nil
		case fn := <-e.cmds:
			fn()
		case <-t.C:
			e.tick()
		}
	}
}

// Do runs fn on the engine goroutine and waits for it to finish.
func (e *Engine) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	select {
	case e.cmds <- func() { fn(); close(finished) }:
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) tick() {
	if e.r.Advance(e.now()) {
		e.dirty = true
	}
	if !e.dirty || len(e.sessions) == 0 || !e.limiter.Allow() {
		return
	}
	f := e.r.Frame()
	for _, s := range e.sessions {
		s.offer(Message{Type: TypeFrame, Frame: &f})
	}
	e.dirty = false
}

// reload rebuilds the graph from the loader. On failure the renderer keeps
// the previous graph.
func (e *Engine) reload() error {
	ds, err := e.load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	g, err := ds.Graph(string(e.kind))
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}
	e.r.SetColors(ds.Colors)
	if err := e.r.Build(g); err != nil {
		return fmt.Errorf("building %s renderer: %w", e.kind, err)
	}
	e.dirty = true
	slog.Info("graph built", "renderer", e.kind, "nodes", len(g.Nodes), "links", len(g.Links))
	return nil
}

// Reload rebuilds the graph from the loader, logging and returning any
// failure. The previous graph stays up if the new one cannot be built.
func (e *Engine) Reload(ctx context.Context) error {
	var err error
	if derr := e.Do(ctx, func() { err = e.reload() }); derr != nil {
		return derr
	}
	return errors.Log(err)
}

// Frame returns the current frame.
func (e *Engine) Frame(ctx context.Context) (render.Frame, error) {
	var f render.Frame
	err := e.Do(ctx, func() { f = e.r.Frame() })
	return f, err
}

// Attach registers a browser and returns the channel its messages arrive
// on. The channel is closed by Detach or when the engine stops.
func (e *Engine) Attach(ctx context.Context, id string) (<-chan Message, error) {
	s := &session{id: id, send: make(chan Message, sendBuffer)}
	err := e.Do(ctx, func() {
		s.machine = input.NewMachine(e.r, e.kind == render.KindOrbit)
		e.sessions[id] = s
		f := e.r.Frame()
		s.offer(Message{Type: TypeHello, Session: id, Renderer: e.kind})
		s.offer(Message{Type: TypeFrame, Frame: &f})
	})
	if err != nil {
		return nil, err
	}
	slog.Info("browser attached", "session", id)
	return s.send, nil
}

// Detach removes a browser.
func (e *Engine) Detach(ctx context.Context, id string) {
	if err := e.Do(ctx, func() { e.detach(id) }); err == nil {
		slog.Info("browser detached", "session", id)
	}
}

func (e *Engine) detach(id string) {
	s, ok := e.sessions[id]
	if !ok {
		return
	}
	if s.machine.State() == input.DraggingNode {
		e.r.EndDrag()
	}
	delete(e.sessions, id)
	close(s.send)
}

// Handle applies one browser message from session id.
func (e *Engine) Handle(ctx context.Context, id string, in Inbound) error {
	return e.Do(ctx, func() { e.handle(id, in) })
}

func (e *Engine) handle(id string, in Inbound) {
	s, ok := e.sessions[id]
	if !ok {
		return
	}
	e.current = id
	defer func() { e.current = "" }()

	switch {
	case in.Event != nil:
		ev := *in.Event
		ev.Time = e.now()
		s.machine.Handle(ev)
	case in.Control != nil:
		if err := e.r.ApplyControl(in.Control.Param, in.Control.Value); err != nil {
			s.offer(Message{Type: TypeError, Error: err.Error()})
			return
		}
	case in.Resize != nil:
		e.r.Resize(in.Resize.Width, in.Resize.Height)
	}
	e.dirty = true
}

// navigate relays a click to the browser that made it.
func (e *Engine) navigate(t navigate.Target) {
	s, ok := e.sessions[e.current]
	if !ok {
		return
	}
	u, err := e.resolver.Resolve(t.URL)
	if errors.Log(err) != nil {
		return
	}
	slog.Info("navigate", "session", s.id, "node", t.NodeID, "url", u)
	s.offer(Message{Type: TypeNavigate, NodeID: t.NodeID, URL: u})
}
