package handlers

import (
	"net/http"
	"strings"

	"print_notifier/internal/models"

	"github.com/gin-gonic/gin"
)

// Ingest DTOs posted by the printer host.
type (
	TemperaturesRequest struct {
		Heaters  map[string]models.HeaterReading `json:"heaters" binding:"required"`
		Printing bool                            `json:"printing"`
	}
	ConsoleRequest struct {
		Lines []string `json:"lines" binding:"required"`
	}
	ProgressRequest struct {
		Completion *float64 `json:"completion" example:"42.5"`
	}
	StateRequest struct {
		StateID     string   `json:"state_id" binding:"required" example:"PRINTING"`
		StateString string   `json:"state_string" binding:"required" example:"Printing"`
		Completion  *float64 `json:"completion,omitempty"`
	}
	LayerRequest struct {
		Layer string `json:"layer" binding:"required" example:"12"`
	}
	GcodeRequest struct {
		Command string `json:"command" binding:"required" example:"M600"`
	}
)

func accepted(c *gin.Context) {
	c.JSON(http.StatusAccepted, gin.H{"status": statusQueued})
}

// @Summary      Report heater readings
// @Description  Readings are evaluated on the next temperature tick.
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      TemperaturesRequest  true  "Heater readings"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/printer/temperatures [post]
// @Security     BearerAuth
func (h *Handler) ingestTemperatures(c *gin.Context) {
	var req TemperaturesRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.services.ReportTemperatures(req.Heaters, req.Printing)
	accepted(c)
}

// @Summary      Report firmware console lines
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      ConsoleRequest  true  "Lines in arrival order"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/printer/console [post]
// @Security     BearerAuth
func (h *Handler) ingestConsole(c *gin.Context) {
	var req ConsoleRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	for _, line := range req.Lines {
		h.services.ReportConsoleLine(line)
	}
	accepted(c)
}

// @Summary      Report job progress
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Description  A null or missing completion means no job is loaded.
// @Param        body  body      ProgressRequest  true  "Completion percent"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/printer/progress [post]
// @Security     BearerAuth
func (h *Handler) ingestProgress(c *gin.Context) {
	var req ProgressRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	if req.Completion == nil {
		h.services.ClearProgress()
		accepted(c)
		return
	}
	if p := *req.Completion; p < 0 || p > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completion must be within [0, 100]"})
		return
	}
	h.services.ReportProgress(*req.Completion)
	accepted(c)
}

// @Summary      Report a host state change
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      StateRequest  true  "State id and display string"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/printer/state [post]
// @Security     BearerAuth
func (h *Handler) ingestState(c *gin.Context) {
	var req StateRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.services.ReportState(strings.TrimSpace(req.StateID), req.StateString, req.Completion)
	accepted(c)
}

// @Summary      Report a layer change
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      LayerRequest  true  "Current layer"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/printer/layer [post]
// @Security     BearerAuth
func (h *Handler) ingestLayer(c *gin.Context) {
	var req LayerRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.services.ReportLayer(req.Layer)
	accepted(c)
}

// @Summary      Report a sent G-code command
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      GcodeRequest  true  "Command line"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/printer/gcode [post]
// @Security     BearerAuth
func (h *Handler) ingestGcode(c *gin.Context) {
	var req GcodeRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.services.ReportCommandSent(req.Command)
	accepted(c)
}
