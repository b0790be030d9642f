package handlers

import (
	"net/http"

	"print_notifier/internal/service"

	"github.com/gin-gonic/gin"
)

// Settings request DTOs. Pointers tell a missing field apart from zero,
// which disables most rules.
type (
	ProgressModeRequest struct {
		Mode string `json:"mode" binding:"required" example:"25"`
	}
	ThresholdRequest struct {
		Value *float64 `json:"value" binding:"required" example:"30"`
	}
	ToolThresholdRequest struct {
		Low        *float64 `json:"low" binding:"required" example:"40"`
		TargetTemp bool     `json:"target_temp" example:"true"`
	}
	MinutesRequest struct {
		Minutes *int `json:"minutes" binding:"required" example:"10"`
	}
	ThermalProtectionRequest struct {
		MaxTempDiff          float64 `json:"max_temp_diff" example:"10"`
		BedShouldIncTemp     int     `json:"bed_should_inc_temp" example:"19"`
		HotendShouldIncTemp  int     `json:"hotend_should_inc_temp" example:"39"`
		ChamberShouldIncTemp int     `json:"chamber_should_inc_temp" example:"19"`
		DelayBetweenNotif    int     `json:"delay_between_notif" example:"10"`
	}
	SoundRequest struct {
		Sound string `json:"sound" binding:"required" example:"sound-1.mp3"`
	}
)

// applySetting runs one setter. Setter errors are validation failures.
func (h *Handler) applySetting(c *gin.Context, name string, set func() error) {
	if err := set(); err != nil {
		if h.log != nil {
			h.log.Infow("setting_rejected", "setting", name, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.log != nil {
		h.log.Infow("setting_updated", "setting", name)
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated, "setting": name})
}

// @Summary      Current settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  config.Settings
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	cfg := h.services.Current()
	cfg.Auth.SigningKey = ""
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Set progress notification mode
// @Description  0 disables, 100 notifies on completion only, 5/10/15/20 every step, 25 at quarters, 50 at half.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      ProgressModeRequest  true  "Mode"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/progress-mode [put]
// @Security     BearerAuth
func (h *Handler) setProgressMode(c *gin.Context) {
	var req ProgressModeRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "progress_mode", func() error { return h.services.SetProgressMode(req.Mode) })
}

// @Summary      Set bed cooled threshold
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      ThresholdRequest  true  "Degrees Celsius, 0 disables"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/bed-threshold [put]
// @Security     BearerAuth
func (h *Handler) setBedThreshold(c *gin.Context) {
	var req ThresholdRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "bed_threshold", func() error { return h.services.SetBedThreshold(*req.Value) })
}

// @Summary      Set tool0 thresholds
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      ToolThresholdRequest  true  "Cooled threshold and target notification"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/tool-threshold [put]
// @Security     BearerAuth
func (h *Handler) setToolThreshold(c *gin.Context) {
	var req ToolThresholdRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "tool_threshold", func() error { return h.services.SetToolThreshold(*req.Low, req.TargetTemp) })
}

// @Summary      Set bed warm hold duration
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      MinutesRequest  true  "Minutes at target before notifying"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/bed-warm-duration [put]
// @Security     BearerAuth
func (h *Handler) setBedWarmDuration(c *gin.Context) {
	var req MinutesRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "bed_warm_duration", func() error { return h.services.SetBedWarmDuration(*req.Minutes) })
}

// @Summary      Set paused-for-user interval
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      MinutesRequest  true  "Minutes between alerts, 0 disables"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/pause-interval [put]
// @Security     BearerAuth
func (h *Handler) setPauseInterval(c *gin.Context) {
	var req MinutesRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "pause_interval", func() error { return h.services.SetPauseInterval(*req.Minutes) })
}

// @Summary      Set MMU alert interval
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      MinutesRequest  true  "Minutes between alerts, 0 disables"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/mmu-interval [put]
// @Security     BearerAuth
func (h *Handler) setMMUInterval(c *gin.Context) {
	var req MinutesRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "mmu_interval", func() error { return h.services.SetMMUInterval(*req.Minutes) })
}

// @Summary      Set SoC temperature threshold
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      ThresholdRequest  true  "Degrees Celsius, 0 disables"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/soc-threshold [put]
// @Security     BearerAuth
func (h *Handler) setSoCThreshold(c *gin.Context) {
	var req ThresholdRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "soc_threshold", func() error { return h.services.SetSoCThreshold(*req.Value) })
}

// @Summary      Set thermal runaway protection
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      ThermalProtectionRequest  true  "Runaway parameters"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/thermal-protection [put]
// @Security     BearerAuth
func (h *Handler) setThermalProtection(c *gin.Context) {
	var req ThermalProtectionRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "thermal_protection", func() error {
		return h.services.SetThermalProtection(service.ThermalParams{
			MaxTempDiff:          req.MaxTempDiff,
			BedShouldIncTemp:     req.BedShouldIncTemp,
			HotendShouldIncTemp:  req.HotendShouldIncTemp,
			ChamberShouldIncTemp: req.ChamberShouldIncTemp,
			DelayBetweenNotif:    req.DelayBetweenNotif,
		})
	})
}

// @Summary      Set notification sound
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      SoundRequest  true  "default, sound-1.mp3, sound-2.mp3 or sound-3.mp3"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/settings/sound [put]
// @Security     BearerAuth
func (h *Handler) setSound(c *gin.Context) {
	var req SoundRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	h.applySetting(c, "sound", func() error { return h.services.SetSound(req.Sound) })
}
