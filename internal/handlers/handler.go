package handlers

import (
	"net/http"

	"print_notifier/internal/logger"
	"print_notifier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// NewHandler constructs a new HTTP handler with dependencies. Metrics are
// served from the default prometheus registry.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, metrics: promhttp.Handler()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics))

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// status and delivery stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerRecipientRoutes(api)
		h.registerMonitorRoutes(api)
		h.registerSettingsRoutes(api)
		h.registerIngestRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerRecipientRoutes(api *gin.RouterGroup) {
	recipients := api.Group("/recipients")
	{
		// Body example: {"old_token":"a","new_token":"b","device_name":"Pixel","printer_id":"printer-1"}
		recipients.POST("", h.updateToken)
		recipients.GET("", h.listRecipients)
		recipients.DELETE("/:token", h.deleteRecipient)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	api.POST("/snooze", h.snooze)
	api.POST("/test", h.sendTest)
	api.GET("/monitor/status", h.getStatus)
	api.GET("/soc/temps", h.getSoCTemps)

	layers := api.Group("/layers")
	{
		layers.GET("", h.listLayers)
		layers.POST("", h.addLayer)
		layers.DELETE("", h.clearLayers)
		layers.DELETE("/:layer", h.removeLayer)
	}
	commands := api.Group("/gcode-commands")
	{
		commands.GET("", h.listCommands)
		commands.POST("", h.addCommand)
		commands.DELETE("", h.clearCommands)
		commands.DELETE("/:command", h.removeCommand)
	}
}

func (h *Handler) registerSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/progress-mode", h.setProgressMode)
		settings.PUT("/bed-threshold", h.setBedThreshold)
		settings.PUT("/tool-threshold", h.setToolThreshold)
		settings.PUT("/bed-warm-duration", h.setBedWarmDuration)
		settings.PUT("/pause-interval", h.setPauseInterval)
		settings.PUT("/mmu-interval", h.setMMUInterval)
		settings.PUT("/soc-threshold", h.setSoCThreshold)
		settings.PUT("/thermal-protection", h.setThermalProtection)
		settings.PUT("/sound", h.setSound)
	}
}

func (h *Handler) registerIngestRoutes(api *gin.RouterGroup) {
	printer := api.Group("/printer")
	{
		// Body example: {"heaters":{"bed":{"actual":60,"target":60}},"printing":true}
		printer.POST("/temperatures", h.ingestTemperatures)
		printer.POST("/console", h.ingestConsole)
		printer.POST("/progress", h.ingestProgress)
		printer.POST("/state", h.ingestState)
		printer.POST("/layer", h.ingestLayer)
		printer.POST("/gcode", h.ingestGcode)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
