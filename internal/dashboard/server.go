// Package dashboard serves the JSON API the web client consumes: project
// and task CRUD, AI task generation, mind-map snapshots, task execution,
// and a server-sent event stream of execution animation state.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/adrianrdguez/projects-buddy/internal/executor"
	"github.com/adrianrdguez/projects-buddy/internal/generate"
	"github.com/adrianrdguez/projects-buddy/internal/mindmap"
	"github.com/adrianrdguez/projects-buddy/internal/notify"
	"github.com/adrianrdguez/projects-buddy/internal/sequencer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB   *gorm.DB
	Port int
	Out  io.Writer

	Canvas       mindmap.Size       // minimum mind-map canvas
	FallbackTime string             // default estimatedTime for generated stubs
	Generator    generate.Generator // nil uses the template catalog
	Dispatcher   *executor.Dispatcher
	Notifier     *notify.Notifier
}

// Server wires the API handlers to their collaborators.
type Server struct {
	db           *gorm.DB
	canvas       mindmap.Size
	fallbackTime string
	gen          generate.Generator
	dispatcher   *executor.Dispatcher
	notifier     *notify.Notifier
	hub          *hub

	// sched is swapped for a manual scheduler in tests.
	sched sequencer.Scheduler

	mu         sync.Mutex
	executions map[string]*execution // projectID -> animation state
}

func newServer(opts StartOpts) *Server {
	canvas := opts.Canvas
	if canvas.Width <= 0 {
		canvas.Width = 1200
	}
	if canvas.Height <= 0 {
		canvas.Height = 800
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = &executor.Dispatcher{}
	}
	return &Server{
		db:           opts.DB,
		canvas:       canvas,
		fallbackTime: opts.FallbackTime,
		gen:          opts.Generator,
		dispatcher:   dispatcher,
		notifier:     opts.Notifier,
		hub:          newHub(),
		executions:   make(map[string]*execution),
	}
}

// router builds the gin engine with all routes registered.
func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, s)
	return router
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("dashboard: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	server := newServer(opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.router(),
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
