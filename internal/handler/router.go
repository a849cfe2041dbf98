package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	internalmiddleware "github.com/noah-isme/academy-crm/internal/middleware"
	"github.com/noah-isme/academy-crm/internal/service"
	"github.com/noah-isme/academy-crm/pkg/logger"
	corsmiddleware "github.com/noah-isme/academy-crm/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academy-crm/pkg/middleware/requestid"
)

// RouterConfig carries the HTTP surface settings.
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
}

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Session   *SessionHandler
	Sync      *SyncHandler
	Student   *StudentHandler
	Group     *GroupHandler
	Staff     *StaffHandler
	Payment   *PaymentHandler
	Contract  *ContractHandler
	Dashboard *DashboardHandler
	Metrics   *MetricsHandler
}

// NewRouter builds the gin engine. Everything except login, logout, the session view and
// the probes sits behind sessionGate.
func NewRouter(cfg RouterConfig, h Handlers, sessionGate gin.HandlerFunc, metrics *service.MetricsService, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", h.Session.Login)
	api.POST("/auth/logout", h.Session.Logout)
	api.GET("/session", h.Session.Current)

	secured := api.Group("")
	secured.Use(sessionGate)

	secured.POST("/sync", h.Sync.Sync)
	secured.GET("/sources", h.Sync.Sources)
	secured.GET("/dashboard", h.Dashboard.Summary)

	secured.GET("/students", h.Student.List)
	secured.POST("/students", h.Student.Create)
	secured.GET("/students/export", h.Student.Export)

	secured.GET("/groups", h.Group.List)
	secured.POST("/groups", h.Group.Create)
	secured.GET("/groups/:id", h.Group.Get)
	secured.POST("/groups/:id/students", h.Group.AssignStudent)

	secured.GET("/staff", h.Staff.List)
	secured.POST("/staff", h.Staff.Create)

	secured.GET("/payments", h.Payment.List)
	secured.POST("/payments", h.Payment.Record)
	secured.POST("/payments/invoices", h.Payment.GenerateInvoices)
	secured.GET("/payments/export", h.Payment.Export)

	secured.GET("/contracts", h.Contract.List)
	secured.POST("/contracts", h.Contract.Create)

	return r
}
