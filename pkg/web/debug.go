package web

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/aihub/hubadmin/pkg/debuglog"
	"github.com/aihub/hubadmin/pkg/models"
)

const streamHeartbeat = 15 * time.Second

// GetDebugLog returns the buffered authentication debug entries, newest
// first, optionally filtered by provider.
func (h *APIHandlers) GetDebugLog(c fiber.Ctx) error {
	return c.JSON(h.debugHub.Snapshot(c.Query("provider")))
}

// AppendDebugLog injects an entry into the buffer. Providers normally feed
// the hub through the event bus; this endpoint exists for exercising the
// console against a running instance.
func (h *APIHandlers) AppendDebugLog(c fiber.Ctx) error {
	var req DebugLogRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	level := models.DebugLogLevel(req.Level)
	if level == "" {
		level = models.DebugLevelInfo
	}

	h.debugHub.Append(models.DebugLogEntry{
		Level:     level,
		Provider:  req.Provider,
		Event:     req.Event,
		Data:      req.Data,
		Timestamp: time.Now().UTC(),
	})

	return c.SendStatus(fiber.StatusAccepted)
}

// ClearDebugLog empties the buffer and tells every connected stream to do
// the same.
func (h *APIHandlers) ClearDebugLog(c fiber.Ctx) error {
	h.debugHub.Clear()

	return c.SendStatus(fiber.StatusNoContent)
}

// StreamDebugLog serves the live SSE stream the console subscribes to. On
// connect the buffered history is replayed oldest first, then live
// envelopes follow as they arrive.
func (h *APIHandlers) StreamDebugLog(c fiber.Ctx) error {
	provider := c.Query("provider")

	history := h.debugHub.Snapshot(provider)
	envelopes, cancel := h.debugHub.Subscribe(provider)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for i := len(history) - 1; i >= 0; i-- {
			entry := history[i]
			if err := writeEnvelope(w, debuglog.Envelope{Type: debuglog.EnvelopeTypeLog, Data: &entry}); err != nil {
				return
			}
		}

		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case envelope, ok := <-envelopes:
				if !ok {
					return
				}

				if err := writeEnvelope(w, envelope); err != nil {
					return
				}
			case <-heartbeat.C:
				// Comment frames double as disconnect detection: the
				// flush fails once the client is gone.
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}

				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
}

func writeEnvelope(w *bufio.Writer, envelope debuglog.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", envelope.Type, payload); err != nil {
		return err
	}

	return w.Flush()
}
