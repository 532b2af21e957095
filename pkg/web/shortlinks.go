package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/persistence"
)

func (h *APIHandlers) GetShortLinks(c fiber.Ctx) error {
	links, err := h.shortLinkService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(links)
}

// ResolveShortLink test-resolves a code and counts the hit, mirroring what
// the public redirect endpoint would do.
func (h *APIHandlers) ResolveShortLink(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return badRequest(c, "Short link code is required")
	}

	link, err := h.shortLinkService.Resolve(c.Context(), code)
	if err != nil {
		if persistence.IsShortLinkNotFound(err) {
			return notFound(c, "Short link not found")
		}

		return internalError(c, err)
	}

	return c.JSON(link)
}

func (h *APIHandlers) DeleteShortLink(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return badRequest(c, "Short link code is required")
	}

	if err := h.shortLinkService.Delete(c.Context(), code); err != nil {
		if persistence.IsShortLinkNotFound(err) {
			return notFound(c, "Short link not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
