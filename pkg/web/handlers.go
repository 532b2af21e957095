// Package web provides HTTP handlers and REST API endpoints for the AI Hub
// admin console.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/debuglog"
	"github.com/aihub/hubadmin/pkg/maintenance"
	"github.com/aihub/hubadmin/pkg/persistence"
	"github.com/aihub/hubadmin/pkg/services"
	"github.com/aihub/hubadmin/pkg/usage"
)

type APIHandlers struct {
	providerService  *services.Provider
	clientService    *services.OAuthClient
	sourceService    *services.Source
	configService    *services.Config
	workflowService  *services.Workflow
	executionService *services.Execution
	skillService     *services.Skill
	shortLinkService *services.ShortLink
	usageReporter    *usage.Reporter
	debugHub         *debuglog.Hub
	store            persistence.Persistence
	backupRoot       string
	cache            *maintenance.RedisCache
	validator        *validator.Validate
}

type APIHandlersConfig struct {
	Providers  *services.Provider
	Clients    *services.OAuthClient
	Sources    *services.Source
	Config     *services.Config
	Workflows  *services.Workflow
	Executions *services.Execution
	Skills     *services.Skill
	ShortLinks *services.ShortLink
	Usage      *usage.Reporter
	DebugHub   *debuglog.Hub
	Store      persistence.Persistence
	BackupRoot string
	Cache      *maintenance.RedisCache
	Validator  *validator.Validate
}

func NewAPIHandlers(config APIHandlersConfig) *APIHandlers {
	return &APIHandlers{
		providerService:  config.Providers,
		clientService:    config.Clients,
		sourceService:    config.Sources,
		configService:    config.Config,
		workflowService:  config.Workflows,
		executionService: config.Executions,
		skillService:     config.Skills,
		shortLinkService: config.ShortLinks,
		usageReporter:    config.Usage,
		debugHub:         config.DebugHub,
		store:            config.Store,
		backupRoot:       config.BackupRoot,
		cache:            config.Cache,
		validator:        config.Validator,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.providerService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Hub admin API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Hub admin API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
