package handlers

import (
	"errors"
	"net/http"
	"strings"

	"print_notifier/internal/models"
	"print_notifier/internal/monitor"
	"print_notifier/internal/service"

	"github.com/gin-gonic/gin"
)

// SnoozeRequest silences mmu-event or paused-user-event for a while.
type SnoozeRequest struct {
	EventCode string `json:"event_code" binding:"required" example:"mmu-event"`
	Minutes   *int   `json:"minutes" binding:"required" example:"30"`
}

// WatchRequest adds a layer or G-code command to a watch list.
type WatchRequest struct {
	Value string `json:"value" binding:"required" example:"M600"`
}

// @Summary      Snooze an assistance alert
// @Tags         monitor
// @Accept       json
// @Produce      json
// @Param        body  body      SnoozeRequest  true  "Snooze payload"
// @Success      200   {object}  map[string]interface{}  "event_code, until"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/snooze [post]
// @Security     BearerAuth
func (h *Handler) snooze(c *gin.Context) {
	var req SnoozeRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	code := models.EventCode(strings.TrimSpace(req.EventCode))
	until, err := h.services.Snooze(c.Request.Context(), code, *req.Minutes)
	switch {
	case errors.Is(err, monitor.ErrUnknownEventClass), errors.Is(err, service.ErrInvalidSnooze):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to snooze", "snooze_failed", err, "event_code", code)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_code": code, "until": until})
}

// @Summary      Send a test notification
// @Description  Delivers a print-complete style alert to every recipient and returns the per-recipient outcome.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  models.DeliveryOutcome
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/test [post]
// @Security     BearerAuth
func (h *Handler) sendTest(c *gin.Context) {
	out := h.services.SendTest(c.Request.Context())
	if h.log != nil {
		h.log.Infow("test_notification_sent", "alert_id", out.AlertID, "delivered", out.Delivered(), "failures", out.Failures())
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Monitor status
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  service.MonitorStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor/status [get]
// @Security     BearerAuth
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status())
}

// @Summary      SoC temperature history
// @Description  Samples of the last hour, oldest first.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, samples"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/soc/temps [get]
// @Security     BearerAuth
func (h *Handler) getSoCTemps(c *gin.Context) {
	samples := h.services.SoCSamples()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(samples),
		"samples": samples,
	})
}

// @Summary      List watched layers
// @Tags         watch
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/layers [get]
// @Security     BearerAuth
func (h *Handler) listLayers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"layers": h.services.Layers()})
}

// @Summary      Watch a layer
// @Tags         watch
// @Accept       json
// @Produce      json
// @Param        body  body      WatchRequest  true  "Layer number"
// @Success      200   {object}  map[string]interface{}  "added, layers"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/layers [post]
// @Security     BearerAuth
func (h *Handler) addLayer(c *gin.Context) {
	var req WatchRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	added, err := h.services.AddLayer(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "layers": h.services.Layers()})
}

// @Summary      Stop watching a layer
// @Tags         watch
// @Produce      json
// @Param        layer  path  string  true  "Layer number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/layers/{layer} [delete]
// @Security     BearerAuth
func (h *Handler) removeLayer(c *gin.Context) {
	if !h.services.RemoveLayer(c.Param("layer")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "layer not watched"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "layers": h.services.Layers()})
}

// @Summary      Clear watched layers
// @Tags         watch
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/layers [delete]
// @Security     BearerAuth
func (h *Handler) clearLayers(c *gin.Context) {
	h.services.ClearLayers()
	c.JSON(http.StatusOK, gin.H{"status": statusCleared})
}

// @Summary      List watched G-code commands
// @Tags         watch
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/gcode-commands [get]
// @Security     BearerAuth
func (h *Handler) listCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": h.services.Commands()})
}

// @Summary      Watch a G-code command
// @Tags         watch
// @Accept       json
// @Produce      json
// @Param        body  body      WatchRequest  true  "Command, matched on its first word"
// @Success      200   {object}  map[string]interface{}  "added, commands"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/gcode-commands [post]
// @Security     BearerAuth
func (h *Handler) addCommand(c *gin.Context) {
	var req WatchRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	added, err := h.services.AddCommand(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "commands": h.services.Commands()})
}

// @Summary      Stop watching a G-code command
// @Tags         watch
// @Produce      json
// @Param        command  path  string  true  "Command"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/gcode-commands/{command} [delete]
// @Security     BearerAuth
func (h *Handler) removeCommand(c *gin.Context) {
	if !h.services.RemoveCommand(c.Param("command")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "command not watched"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "commands": h.services.Commands()})
}

// @Summary      Clear watched G-code commands
// @Tags         watch
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/gcode-commands [delete]
// @Security     BearerAuth
func (h *Handler) clearCommands(c *gin.Context) {
	h.services.ClearCommands()
	c.JSON(http.StatusOK, gin.H{"status": statusCleared})
}
