package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"roomrate/internal/infra/config"
	"roomrate/internal/infra/obs"
)

type RoomHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListByProperty(c *gin.Context)
	UpdateBasePrice(c *gin.Context)
	AddPeakRate(c *gin.Context)
	RemovePeakRate(c *gin.Context)
	AddBlock(c *gin.Context)
	RemoveBlock(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	SelectableMonth(c *gin.Context)
	SelectableDate(c *gin.Context)
}

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Cancel(c *gin.Context)
	Get(c *gin.Context)
}

type ReportHTTP interface {
	Report(c *gin.Context)
	Export(c *gin.Context)
}

type Handlers struct {
	Rooms        RoomHTTP
	Availability AvailabilityHTTP
	Quotes       QuoteHTTP
	Booking      BookingHTTP
	Reports      ReportHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Rooms != nil {
		api.POST("/rooms", h.Rooms.Create)
		api.GET("/rooms/:id", h.Rooms.Get)
		api.PUT("/rooms/:id/base-price", h.Rooms.UpdateBasePrice)
		api.POST("/rooms/:id/peak-rates", h.Rooms.AddPeakRate)
		api.DELETE("/rooms/:id/peak-rates/:rateId", h.Rooms.RemovePeakRate)
		api.POST("/rooms/:id/blocks", h.Rooms.AddBlock)
		api.DELETE("/rooms/:id/blocks/:blockId", h.Rooms.RemoveBlock)
		api.GET("/properties/:id/rooms", h.Rooms.ListByProperty)
	}
	if h.Availability != nil {
		api.GET("/rooms/:id/calendar", h.Availability.Calendar)
		api.GET("/rooms/:id/selectable", h.Availability.SelectableMonth)
		api.GET("/rooms/:id/selectable/:date", h.Availability.SelectableDate)
	}
	if h.Quotes != nil {
		api.GET("/rooms/:id/quote", h.Quotes.Quote)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	}
	if h.Reports != nil {
		api.GET("/properties/:id/report", h.Reports.Report)
		api.POST("/properties/:id/report/export", h.Reports.Export)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
