package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

func (h *APIHandlers) GetSources(c fiber.Ctx) error {
	sources, err := h.sourceService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(sources)
}

func (h *APIHandlers) GetSource(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Source ID is required")
	}

	source, err := h.sourceService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsSourceNotFound(err) {
			return notFound(c, "Source not found")
		}

		return internalError(c, err)
	}

	return c.JSON(source)
}

// GetSourceConfigSchema serves the JSON schema the console renders the
// type-specific config form from.
func (h *APIHandlers) GetSourceConfigSchema(c fiber.Ctx) error {
	sourceType := c.Params("type")
	if sourceType == "" {
		return badRequest(c, "Source type is required")
	}

	schema, err := h.sourceService.ConfigSchema(models.SourceType(sourceType))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(schema)
}

func (h *APIHandlers) CreateSource(c fiber.Ctx) error {
	var req CreateSourceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	source := &models.Source{
		Type:        models.SourceType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		Config:      req.Config,
		Enabled:     req.Enabled,
	}

	created, err := h.sourceService.Create(c.Context(), source)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateSource(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Source ID is required")
	}

	var req UpdateSourceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	existing, err := h.sourceService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsSourceNotFound(err) {
			return notFound(c, "Source not found")
		}

		return internalError(c, err)
	}

	if req.Name != nil {
		existing.Name = req.Name
	}

	if req.Description != nil {
		existing.Description = req.Description
	}

	if req.Config != nil {
		existing.Config = req.Config
	}

	if req.Enabled != nil {
		existing.Enabled = *req.Enabled
	}

	updated, err := h.sourceService.Update(c.Context(), existing)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) SetSourceEnabled(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Source ID is required")
	}

	var req SetEnabledRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	source, err := h.sourceService.SetEnabled(c.Context(), id, req.Enabled)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(source)
}

func (h *APIHandlers) DeleteSource(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Source ID is required")
	}

	if err := h.sourceService.Delete(c.Context(), id); err != nil {
		if persistence.IsSourceNotFound(err) {
			return notFound(c, "Source not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
