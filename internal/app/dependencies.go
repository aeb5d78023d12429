package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/partyplanner/partyplanner/internal/bus"
	"github.com/partyplanner/partyplanner/internal/config"
	"github.com/partyplanner/partyplanner/internal/database"
	"github.com/partyplanner/partyplanner/internal/utils"
	"github.com/partyplanner/partyplanner/pkg/party"
	"github.com/partyplanner/partyplanner/pkg/partyapi"
	"github.com/partyplanner/partyplanner/pkg/planner"
	"github.com/partyplanner/partyplanner/pkg/render"
	"github.com/partyplanner/partyplanner/pkg/state"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus      *bus.Bus
	State    *state.State
	Renderer *render.Renderer
	Clock    utils.Clock

	PartyClient    party.Client
	Planner        *planner.Planner
	PlannerHandler *planner.Handler

	// Nil unless mockapi.enabled.
	PartyApiService *partyapi.ServiceImpl
	PartyApiHandler *partyapi.Handler
	DB              *pgxpool.Pool

	unsubscribeRenderer func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Bus = bus.New()
	deps.State = state.New(deps.Bus)

	renderer, err := render.NewRenderer(deps.State, cfg.Frontend.CreateForm)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if _, err := renderer.Render(); err != nil {
		return nil, fmt.Errorf("initial render failed: %w", err)
	}
	deps.Renderer = renderer
	deps.unsubscribeRenderer = renderer.Subscribe(deps.Bus)
	deps.Clock = utils.SystemClock{}

	deps.PartyClient = party.NewClient(cfg.Api.EventsUrl(), cfg.Api.Timeout)
	deps.Planner = planner.NewPlanner(deps.PartyClient, deps.State)
	deps.PlannerHandler = planner.NewHandler(deps.Planner, deps.PartyClient, deps.Renderer, deps.Clock)

	if cfg.MockApi.Enabled {
		repo, err := buildPartyRepository(ctx, cfg, deps)
		if err != nil {
			return nil, err
		}
		deps.PartyApiService = partyapi.NewService(repo)
		if cfg.MockApi.Seed {
			if err := deps.PartyApiService.Seed(ctx); err != nil {
				return nil, err
			}
		}
		deps.PartyApiHandler = partyapi.NewHandler(deps.PartyApiService)
	}

	return deps, nil
}

func buildPartyRepository(ctx context.Context, cfg config.Application, deps *Dependencies) (partyapi.Repository, error) {
	switch cfg.MockApi.Storage {
	case config.StorageMemory:
		log.Info("Local party API uses in-memory storage")
		return partyapi.NewMemoryRepository(), nil
	case config.StoragePostgres:
		if err := database.Migrate(cfg.Database, partyapi.Migrations, partyapi.MigrationsDir); err != nil {
			return nil, err
		}
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.DB = db
		log.Infof("Local party API uses postgres at %s:%d", cfg.Database.Host, cfg.Database.Port)
		return partyapi.NewPgRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown mockapi storage %q", cfg.MockApi.Storage)
	}
}

// Close releases what BuildDependencies acquired.
func (d *Dependencies) Close() {
	if d.unsubscribeRenderer != nil {
		d.unsubscribeRenderer()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
