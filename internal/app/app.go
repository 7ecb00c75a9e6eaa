// Package app provides application-level wiring for the gateway: it turns
// database handles and configuration into the fully-connected service graph.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"

	"sqlgate/internal/cache"
	"sqlgate/internal/config"
	"sqlgate/internal/db/repository"
	"sqlgate/internal/remote"
	"sqlgate/internal/service/credential"
	"sqlgate/internal/service/query"
	"sqlgate/internal/service/registry"
	"sqlgate/internal/service/workspace"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the root logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Gateway     *query.GatewayService
	Browse      *query.BrowseService
	Credentials *credential.Service
	Registry    *registry.Service
	SavedQuery  *workspace.SavedQueryService
	History     *workspace.HistoryService
}

// App is the fully-wired application.
type App struct {
	Services Services
	Cache    *cache.ResultCache

	sweeper *cron.Cron
}

// New wires repositories, the remote client, and services from deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories: write-pool for repos that mutate, read-pool for the rest.
	credentialRepo := repository.NewCredentialRepo(deps.WriteDB)
	databaseRepo := repository.NewDatabaseRepo(deps.WriteDB)
	savedQueryRepo := repository.NewSavedQueryRepo(deps.WriteDB)
	historyWriteRepo := repository.NewQueryHistoryRepo(deps.WriteDB)
	historyReadRepo := repository.NewQueryHistoryRepo(deps.ReadDB)

	credentialSvc := credential.NewService(credentialRepo)

	client := remote.NewClient(cfg.APIBaseURL, credentialSvc, cfg.RemoteTimeout)
	classifier := remote.NewClassifier(cfg.UserErrorSignatures)
	resultCache := cache.New(cfg.CacheTTL)

	gatewaySvc := query.NewGatewayService(client, classifier, resultCache, historyWriteRepo,
		deps.Logger.With("component", "gateway"))
	browseSvc := query.NewBrowseService(client, classifier,
		deps.Logger.With("component", "browse"))
	registrySvc := registry.NewService(client, databaseRepo, classifier,
		deps.Logger.With("component", "registry"))

	app := &App{
		Services: Services{
			Gateway:     gatewaySvc,
			Browse:      browseSvc,
			Credentials: credentialSvc,
			Registry:    registrySvc,
			SavedQuery:  workspace.NewSavedQueryService(savedQueryRepo),
			History:     workspace.NewHistoryService(historyReadRepo),
		},
		Cache: resultCache,
	}

	if err := app.startSweeper(cfg.SweepSchedule, deps.Logger); err != nil {
		return nil, err
	}

	return app, nil
}

// startSweeper schedules the periodic cache sweep. The sweep is hygiene, not
// correctness: Get already treats expired entries as absent.
func (a *App) startSweeper(schedule string, logger *slog.Logger) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if removed := a.Cache.Sweep(); removed > 0 {
			logger.Debug("cache sweep", "removed", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	a.sweeper = c
	return nil
}

// Close stops background work.
func (a *App) Close() {
	if a.sweeper != nil {
		ctx := a.sweeper.Stop()
		<-ctx.Done()
	}
}
