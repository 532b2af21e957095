package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/models"
)

func (h *APIHandlers) GetConfig(c fiber.Ctx) error {
	config, err := h.configService.Get(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) UpdateAuthConfig(c fiber.Ctx) error {
	var req models.AuthConfig
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	config, err := h.configService.UpdateAuth(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) UpdateOAuthConfig(c fiber.Ctx) error {
	var req models.OAuthConfig
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config, err := h.configService.UpdateOAuth(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) UpdateCloudStorageConfig(c fiber.Ctx) error {
	var req models.CloudStorageConfig
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config, err := h.configService.UpdateCloudStorage(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) UpdateBrandingConfig(c fiber.Ctx) error {
	var req models.BrandingConfig
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	config, err := h.configService.UpdateBranding(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) UpdateLogLevel(c fiber.Ctx) error {
	var req UpdateLogLevelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config, err := h.configService.UpdateLogLevel(c.Context(), req.Level)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}
