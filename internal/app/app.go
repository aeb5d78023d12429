package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/partyplanner/partyplanner/internal/config"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, state, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	return newApplication(context.Background(), cfg)
}

func newApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Run starts the HTTP server, triggers the initial party load and blocks.
// The load starts once the listener is bound so it can reach the local party API.
func (a *Application) Run() error {
	defer a.deps.Close()

	listener, err := net.Listen("tcp", a.srv.Addr)
	if err != nil {
		return err
	}
	log.Infof("Starting server on %s", listener.Addr())

	go a.deps.Planner.LoadEvents(context.Background())

	return a.srv.Serve(listener)
}
