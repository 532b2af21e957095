package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/persistence"
)

func (h *APIHandlers) GetSkills(c fiber.Ctx) error {
	skills, err := h.skillService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(skills)
}

func (h *APIHandlers) GetSkill(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Skill ID is required")
	}

	skill, err := h.skillService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsSkillNotFound(err) {
			return notFound(c, "Skill not found")
		}

		return internalError(c, err)
	}

	return c.JSON(skill)
}

// InstallSkill accepts a zip package upload and registers the skill
// described by its manifest.
func (h *APIHandlers) InstallSkill(c fiber.Ctx) error {
	pkg := c.Body()
	if len(pkg) == 0 {
		return badRequest(c, "Skill package is required")
	}

	skill, err := h.skillService.Install(c.Context(), pkg)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// UpgradeSkill replaces an installed skill with the uploaded package.
func (h *APIHandlers) UpgradeSkill(c fiber.Ctx) error {
	pkg := c.Body()
	if len(pkg) == 0 {
		return badRequest(c, "Skill package is required")
	}

	skill, err := h.skillService.Upgrade(c.Context(), pkg)
	if err != nil {
		if persistence.IsSkillNotFound(err) {
			return notFound(c, "Skill not found")
		}

		return handleServiceError(c, err)
	}

	return c.JSON(skill)
}

func (h *APIHandlers) DeleteSkill(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Skill ID is required")
	}

	if err := h.skillService.Delete(c.Context(), id); err != nil {
		if persistence.IsSkillNotFound(err) {
			return notFound(c, "Skill not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
