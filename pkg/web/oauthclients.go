package web

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

func (h *APIHandlers) GetOAuthClients(c fiber.Ctx) error {
	clients, err := h.clientService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	responses := make([]OAuthClientResponse, 0, len(clients))
	for _, client := range clients {
		responses = append(responses, TransformOAuthClientResponse(client))
	}

	return c.JSON(responses)
}

func (h *APIHandlers) GetOAuthClient(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Client ID is required")
	}

	client, err := h.clientService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsOAuthClientNotFound(err) {
			return notFound(c, "OAuth client not found")
		}

		return internalError(c, err)
	}

	return c.JSON(TransformOAuthClientResponse(client))
}

func (h *APIHandlers) CreateOAuthClient(c fiber.Ctx) error {
	var req CreateOAuthClientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	client := &models.OAuthClient{
		Name:         req.Name,
		GrantTypes:   req.GrantTypes,
		RedirectURIs: req.RedirectURIs,
		Scopes:       req.Scopes,
	}

	created, err := h.clientService.Create(c.Context(), client)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreatedClientResponse{
		Client: TransformOAuthClientResponse(created.Client),
		Secret: created.Secret,
	})
}

func (h *APIHandlers) RegenerateOAuthClientSecret(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Client ID is required")
	}

	regenerated, err := h.clientService.RegenerateSecret(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(CreatedClientResponse{
		Client: TransformOAuthClientResponse(regenerated.Client),
		Secret: regenerated.Secret,
	})
}

func (h *APIHandlers) SetOAuthClientActive(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Client ID is required")
	}

	var req SetEnabledRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	client, err := h.clientService.SetActive(c.Context(), id, req.Enabled)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(TransformOAuthClientResponse(client))
}

func (h *APIHandlers) IssueOAuthClientToken(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Client ID is required")
	}

	var req TokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	token, err := h.clientService.IssueToken(c.Context(), id, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
	})
}

func (h *APIHandlers) DeleteOAuthClient(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Client ID is required")
	}

	if err := h.clientService.Delete(c.Context(), id); err != nil {
		if persistence.IsOAuthClientNotFound(err) {
			return notFound(c, "OAuth client not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
