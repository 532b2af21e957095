package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/aihub/hubadmin/pkg/cmd"
	"github.com/aihub/hubadmin/pkg/debuglog"
	"github.com/aihub/hubadmin/pkg/eventbus"
	"github.com/aihub/hubadmin/pkg/maintenance"
	"github.com/aihub/hubadmin/pkg/persistence"
	"github.com/aihub/hubadmin/pkg/services"
	"github.com/aihub/hubadmin/pkg/usage"
	"github.com/aihub/hubadmin/pkg/web"
)

type API struct {
	logger           *slog.Logger
	persistence      persistence.Persistence
	eventBus         eventbus.EventBus
	debugHub         *debuglog.Hub
	cache            *maintenance.RedisCache
	signingKey       []byte
	snapshotSchedule string
	validate         *validator.Validate

	executionService *services.Execution
	scheduler        *usage.Scheduler
}

type APIConfig struct {
	Logger           *slog.Logger
	Persistence      persistence.Persistence
	EventBus         eventbus.EventBus
	Cache            *maintenance.RedisCache
	SigningKey       []byte
	SnapshotSchedule string
}

func NewAPI(config APIConfig) *API {
	return &API{
		logger:           config.Logger,
		persistence:      config.Persistence,
		eventBus:         config.EventBus,
		debugHub:         debuglog.NewHub(config.Logger),
		cache:            config.Cache,
		signingKey:       config.SigningKey,
		snapshotSchedule: config.SnapshotSchedule,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	providerService := services.NewProvider(a.persistence, a.eventBus)
	clientService := services.NewOAuthClient(a.persistence, a.eventBus, a.signingKey)
	sourceService := services.NewSource(a.persistence, a.eventBus)
	workflowService := services.NewWorkflow(a.persistence)
	skillService := services.NewSkill(a.persistence, a.eventBus)
	shortLinkService := services.NewShortLink(a.persistence)
	reporter := usage.NewReporter(a.persistence)

	var cache services.ConfigCache
	if a.cache != nil {
		cache = a.cache
	}

	configService := services.NewConfig(a.persistence, a.eventBus, cache)

	a.executionService = services.NewExecution(a.persistence, a.eventBus)
	a.scheduler = usage.NewScheduler(reporter, a.snapshotSchedule, a.logger)

	handlers := web.NewAPIHandlers(web.APIHandlersConfig{
		Providers:  providerService,
		Clients:    clientService,
		Sources:    sourceService,
		Config:     configService,
		Workflows:  workflowService,
		Executions: a.executionService,
		Skills:     skillService,
		ShortLinks: shortLinkService,
		Usage:      reporter,
		DebugHub:   a.debugHub,
		Store:      a.persistence,
		BackupRoot: cmd.BackupRoot(a.persistence),
		Cache:      a.cache,
		Validator:  a.validate,
	})

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Hub Admin API")
	})

	app.Get("/health", handlers.HealthCheck)

	admin := app.Group("/admin", web.BearerAuth(a.signingKey))

	config := admin.Group("/config")
	config.Get("/", handlers.GetConfig)
	config.Put("/auth", handlers.UpdateAuthConfig)
	config.Put("/oauth", handlers.UpdateOAuthConfig)
	config.Put("/storage", handlers.UpdateCloudStorageConfig)
	config.Put("/branding", handlers.UpdateBrandingConfig)
	config.Put("/logging", handlers.UpdateLogLevel)

	providers := admin.Group("/providers")
	providers.Get("/", handlers.GetProviders)
	providers.Post("/", handlers.CreateProvider)
	providers.Get("/:id", handlers.GetProvider)
	providers.Patch("/:id", handlers.UpdateProvider)
	providers.Put("/:id/enabled", handlers.SetProviderEnabled)
	providers.Delete("/:id", handlers.DeleteProvider)

	clients := admin.Group("/oauth/clients")
	clients.Get("/", handlers.GetOAuthClients)
	clients.Post("/", handlers.CreateOAuthClient)
	clients.Get("/:id", handlers.GetOAuthClient)
	clients.Put("/:id/active", handlers.SetOAuthClientActive)
	clients.Post("/:id/regenerate-secret", handlers.RegenerateOAuthClientSecret)
	clients.Post("/:id/token", handlers.IssueOAuthClientToken)
	clients.Delete("/:id", handlers.DeleteOAuthClient)

	sources := admin.Group("/sources")
	sources.Get("/", handlers.GetSources)
	sources.Post("/", handlers.CreateSource)
	sources.Get("/schema/:type", handlers.GetSourceConfigSchema)
	sources.Get("/:id", handlers.GetSource)
	sources.Patch("/:id", handlers.UpdateSource)
	sources.Put("/:id/enabled", handlers.SetSourceEnabled)
	sources.Delete("/:id", handlers.DeleteSource)

	workflows := admin.Group("/workflows")
	workflows.Get("/", handlers.GetWorkflows)
	workflows.Post("/", handlers.CreateWorkflow)
	workflows.Post("/import", handlers.ImportWorkflow)
	workflows.Get("/:id", handlers.GetWorkflow)
	workflows.Patch("/:id", handlers.UpdateWorkflow)
	workflows.Get("/:id/export", handlers.ExportWorkflow)
	workflows.Delete("/:id", handlers.DeleteWorkflow)

	executions := admin.Group("/executions")
	executions.Get("/", handlers.GetExecutions)
	executions.Get("/:id", handlers.GetExecution)
	executions.Post("/:id/cancel", handlers.CancelExecution)
	executions.Post("/:id/pause", handlers.PauseExecution)

	skills := admin.Group("/skills")
	skills.Get("/", handlers.GetSkills)
	skills.Post("/", handlers.InstallSkill)
	skills.Put("/", handlers.UpgradeSkill)
	skills.Get("/:id", handlers.GetSkill)
	skills.Delete("/:id", handlers.DeleteSkill)

	shortlinks := admin.Group("/shortlinks")
	shortlinks.Get("/", handlers.GetShortLinks)
	shortlinks.Post("/:code/resolve", handlers.ResolveShortLink)
	shortlinks.Delete("/:code", handlers.DeleteShortLink)

	admin.Get("/usage", handlers.GetUsageReport)
	admin.Get("/usage/export", handlers.ExportUsageCSV)

	system := admin.Group("/system")
	system.Get("/backup", handlers.ExportBackup)
	system.Post("/backup", handlers.ImportBackup)
	system.Post("/rotate-secrets", handlers.RotateProviderSecrets)
	system.Post("/cache/refresh", handlers.RefreshCache)
	system.Get("/version", handlers.GetVersion)

	debug := admin.Group("/auth/debug")
	debug.Get("/", handlers.GetDebugLog)
	debug.Post("/", handlers.AppendDebugLog)
	debug.Delete("/", handlers.ClearDebugLog)
	debug.Get("/stream", handlers.StreamDebugLog)

	return app
}

func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	if err := a.debugHub.AttachBus(a.eventBus); err != nil {
		return err
	}

	if err := a.executionService.AttachBus(a.eventBus); err != nil {
		return err
	}

	go func() {
		if err := a.eventBus.Subscribe(ctx); err != nil {
			a.logger.ErrorContext(ctx, "Event bus subscription stopped", "error", err)
		}
	}()

	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	defer a.scheduler.Stop()

	return app.Listen(":" + strconv.Itoa(port))
}
