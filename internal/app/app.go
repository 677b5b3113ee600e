package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/common"
	"github.com/ternarybob/scribe/internal/generators"
	"github.com/ternarybob/scribe/internal/models"
	"github.com/ternarybob/scribe/internal/services/detection"
	"github.com/ternarybob/scribe/internal/services/generation"
	"github.com/ternarybob/scribe/internal/services/llm"
	"github.com/ternarybob/scribe/internal/services/sanitizer"
	"github.com/ternarybob/scribe/internal/services/scheduler"
	"github.com/ternarybob/scribe/internal/services/themes"
	"github.com/ternarybob/scribe/internal/services/titles"
	"github.com/ternarybob/scribe/internal/services/transform"
	"github.com/ternarybob/scribe/internal/storage/badger"
	"github.com/ternarybob/scribe/internal/templates"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager *badger.Manager

	// Template selection
	Templates *templates.Registry
	Detector  *detection.Detector
	Themes    *themes.Resolver

	// Generation
	Providers    *llm.ProviderFactory
	Transform    *transform.Service
	Orchestrator *generation.Orchestrator

	// Intake and scheduling
	TitleService *titles.Service
	Scheduler    *scheduler.QueueScheduler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.StorageManager.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info().
		Strs("templates", app.Templates.Codes()).
		Str("default_template", app.Templates.DefaultCode()).
		Bool("queue_enabled", cfg.Queue.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase opens Badger and loads the seed file
func (a *App) initDatabase() error {
	manager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}
	a.StorageManager = manager

	if a.Config.Seed.File != "" {
		if _, err := manager.LoadSeedFile(context.Background(), a.Config.Seed.File, common.NewTitleID); err != nil {
			// Log warning but don't fail startup (consistent with other loaders)
			a.Logger.Warn().Err(err).Str("file", a.Config.Seed.File).Msg("Failed to load seed file")
		}
	}

	return nil
}

// initServices builds the generation pipeline bottom-up
func (a *App) initServices() error {
	var err error

	a.Templates, err = templates.Load(a.Config.Templates.Dir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	a.Detector = detection.NewDetector(a.Templates, a.Logger)
	a.Themes = themes.NewResolver(a.StorageManager.ThemeStorage(), a.Logger)

	policy, err := sanitizer.PolicyByName(a.Config.Generation.SanitizePolicy)
	if err != nil {
		return err
	}

	a.Providers = llm.NewProviderFactory(&a.Config.Gemini, &a.Config.Claude, &a.Config.LLM, a.Logger)
	a.Transform = transform.NewService(a.Logger)

	deps := generators.Dependencies{
		Definitions: a.Templates,
		Provider:    a.Providers,
		Transform:   a.Transform,
		Options: generators.Options{
			Model:       a.Config.Generation.Model,
			Temperature: a.Config.Generation.Temperature,
			MaxTokens:   a.Config.Generation.MaxTokens,
			Pricing:     llm.Pricing(a.Config.Pricing),
			Policy:      policy,
		},
		Logger: a.Logger,
	}
	dispatcher := generation.NewDispatcher(
		generators.NewPillarGenerator(deps),
		generators.NewComparativeGenerator(deps),
		generators.NewStandardGenerator(deps),
	)

	a.Orchestrator = generation.NewOrchestrator(
		a.StorageManager.TitleStorage(),
		a.StorageManager.RequestStorage(),
		a.StorageManager.ArticleStorage(),
		a.Templates,
		a.Detector,
		generation.NewContextBuilder(a.Templates, a.Themes, a.Logger),
		dispatcher,
		generation.NewCostEstimator(a.Config.Generation.DefaultCost),
		a.Logger,
	)
	a.Orchestrator.SetConcurrency(a.Config.Queue.Concurrency)

	a.TitleService = titles.NewService(a.StorageManager.TitleStorage(), a.StorageManager.ReferenceStorage(), a.Logger)
	a.Scheduler = scheduler.NewQueueScheduler(a.Orchestrator, a.Config.Queue.Limit, a.Logger)

	return nil
}

// Run starts the queue scheduler and blocks until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	if !a.Config.Queue.Enabled {
		a.Logger.Warn().Msg("Queue processing disabled, nothing to run")
		return nil
	}

	if err := a.Scheduler.Start(a.Config.Queue.Schedule); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info().Msg("Stopping queue scheduler")
	a.Scheduler.Stop()
	return nil
}

// ProcessOnce runs a single queue batch
func (a *App) ProcessOnce(ctx context.Context) (*models.BatchResult, error) {
	return a.Scheduler.RunNow(ctx)
}

// ProcessTitle generates the article for one title
func (a *App) ProcessTitle(ctx context.Context, id string) (*models.GenerationRequest, error) {
	return a.Orchestrator.ProcessTitleByID(ctx, id)
}

// Close stops the scheduler and releases the provider clients and storage
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.Providers != nil {
		if err := a.Providers.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM providers")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
