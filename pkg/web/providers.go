package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

func (h *APIHandlers) GetProviders(c fiber.Ctx) error {
	providers, err := h.providerService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(providers)
}

func (h *APIHandlers) GetProvider(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Provider ID is required")
	}

	provider, err := h.providerService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsProviderNotFound(err) {
			return notFound(c, "Provider not found")
		}

		return internalError(c, err)
	}

	return c.JSON(provider)
}

func (h *APIHandlers) CreateProvider(c fiber.Ctx) error {
	var req CreateProviderRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	provider := &models.AuthProvider{
		Type:        models.ProviderType(req.Type),
		Name:        req.Name,
		Description: req.Description,
		Config:      req.Config,
		Enabled:     req.Enabled,
	}

	created, err := h.providerService.Create(c.Context(), provider)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateProvider(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Provider ID is required")
	}

	var req UpdateProviderRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	existing, err := h.providerService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsProviderNotFound(err) {
			return notFound(c, "Provider not found")
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

	updated, err := h.providerService.Update(c.Context(), existing)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) SetProviderEnabled(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Provider ID is required")
	}

	var req SetEnabledRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	provider, err := h.providerService.SetEnabled(c.Context(), id, req.Enabled)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(provider)
}

func (h *APIHandlers) DeleteProvider(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Provider ID is required")
	}

	if err := h.providerService.Delete(c.Context(), id); err != nil {
		if persistence.IsProviderNotFound(err) {
			return notFound(c, "Provider not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
