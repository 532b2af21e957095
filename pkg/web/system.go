package web

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/maintenance"
	"github.com/aihub/hubadmin/pkg/usage"
)

func (h *APIHandlers) GetUsageReport(c fiber.Ctx) error {
	report, err := h.usageReporter.Report(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(report)
}

// ExportUsageCSV serves the usage report as a CSV download: a header line
// plus one line per metric.
func (h *APIHandlers) ExportUsageCSV(c fiber.Ctx) error {
	report, err := h.usageReporter.Report(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	var buf bytes.Buffer
	if err := usage.WriteCSV(&buf, report); err != nil {
		return internalError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="usage-report.csv"`)

	return c.Send(buf.Bytes())
}

// ExportBackup streams a zip archive of every stored document.
func (h *APIHandlers) ExportBackup(c fiber.Ctx) error {
	if h.backupRoot == "" {
		return badRequest(c, "Backup is only available with file persistence")
	}

	var buf bytes.Buffer
	if err := maintenance.ExportBackup(&buf, h.backupRoot); err != nil {
		return internalError(c, err)
	}

	filename := "hubadmin-backup-" + time.Now().UTC().Format("20060102-150405") + ".zip"

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	return c.Send(buf.Bytes())
}

// ImportBackup restores an uploaded archive into the store.
func (h *APIHandlers) ImportBackup(c fiber.Ctx) error {
	if h.backupRoot == "" {
		return badRequest(c, "Restore is only available with file persistence")
	}

	archive := c.Body()
	if len(archive) == 0 {
		return badRequest(c, "Backup archive is required")
	}

	if err := maintenance.ImportBackup(archive, h.backupRoot); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RotateProviderSecrets re-encrypts the sensitive provider config values
// under a new master key.
func (h *APIHandlers) RotateProviderSecrets(c fiber.Ctx) error {
	var req RotateSecretsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	current, err := maintenance.NewSecretBox([]byte(req.CurrentKey))
	if err != nil {
		return badRequest(c, err.Error())
	}

	next, err := maintenance.NewSecretBox([]byte(req.NextKey))
	if err != nil {
		return badRequest(c, err.Error())
	}

	rotated, err := maintenance.RotateProviderSecrets(c.Context(), h.store, current, next)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"rotated": rotated})
}

// RefreshCache drops every cached entry so the next reads rebuild from the
// store.
func (h *APIHandlers) RefreshCache(c fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"flushed": false, "message": "No cache configured"})
	}

	if err := h.cache.Flush(c.Context()); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"flushed": true})
}

func (h *APIHandlers) GetVersion(c fiber.Ctx) error {
	return c.JSON(maintenance.CurrentVersion())
}
