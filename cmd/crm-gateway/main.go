package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academy-crm/api/swagger"
	"github.com/noah-isme/academy-crm/internal/handler"
	internalmiddleware "github.com/noah-isme/academy-crm/internal/middleware"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
	"github.com/noah-isme/academy-crm/internal/service"
	"github.com/noah-isme/academy-crm/pkg/cache"
	"github.com/noah-isme/academy-crm/pkg/config"
	"github.com/noah-isme/academy-crm/pkg/logger"
	"github.com/noah-isme/academy-crm/pkg/storage"
)

// @title Academy CRM Gateway
// @version 0.1.0
// @description Operator-facing gateway in front of the academy management API
// @BasePath /api/v1
// @schemes http

type tokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	tokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		logr.Fatal("failed to init token store", zap.Error(err))
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.Dir, 0o644)
	if err != nil {
		logr.Fatal("failed to init export storage", zap.Error(err))
	}

	metricsSvc := service.NewMetricsService()
	httpClient := &http.Client{Timeout: cfg.AcademyAPI.Timeout}
	academy := repository.NewAcademyRepository(cfg.AcademyAPI.BaseURL, httpClient, metricsSvc, logr)
	state := repository.NewStateRepository(models.SeedPayments())

	sessionSvc := service.NewSessionService(academy, tokens, state, metricsSvc, nil, logr)
	syncSvc := service.NewSyncService(academy, state, sessionSvc, metricsSvc, logr)
	sessionSvc.UseSynchronizer(syncSvc)

	studentSvc := service.NewStudentService(academy, state, syncSvc, metricsSvc, nil, logr)
	groupSvc := service.NewGroupService(academy, state, syncSvc, nil, logr)
	staffSvc := service.NewStaffService(academy, state, syncSvc, nil, logr)
	paymentSvc := service.NewPaymentService(academy, state, metricsSvc, service.PaymentConfig{
		MonthlyFee: cfg.Invoices.MonthlyFee,
		DueDay:     cfg.Invoices.DueDay,
	}, nil, logr)
	contractSvc := service.NewContractService(academy, state, metricsSvc, nil, logr)
	dashboardSvc := service.NewDashboardService(state)
	exportSvc := service.NewExportService(paymentSvc, studentSvc, exportStore, logr)

	handlers := handler.Handlers{
		Session:   handler.NewSessionHandler(sessionSvc),
		Sync:      handler.NewSyncHandler(syncSvc, sessionSvc),
		Student:   handler.NewStudentHandler(studentSvc, exportSvc),
		Group:     handler.NewGroupHandler(groupSvc, studentSvc),
		Staff:     handler.NewStaffHandler(staffSvc),
		Payment:   handler.NewPaymentHandler(paymentSvc, exportSvc),
		Contract:  handler.NewContractHandler(contractSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Metrics:   handler.NewMetricsHandler(metricsSvc.Handler(), cfg.Metrics.Enabled),
	}

	r := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
	}, handlers, internalmiddleware.RequireSession(state), metricsSvc, logr)

	// A failed restore leaves the gateway logged out; the operator can still log in.
	if err := sessionSvc.Restore(ctx, cfg.Session.SyncOnStart); err != nil {
		logr.Warn("session restore failed", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "academy_api", cfg.AcademyAPI.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newTokenStore(ctx context.Context, cfg *config.Config) (tokenStore, error) {
	switch cfg.Session.Store {
	case config.TokenStoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisTokenRepository(client, cfg.Session.Key), nil
	case config.TokenStoreFile, "":
		dir, err := storage.NewLocalStorage(cfg.Session.Dir, 0o600)
		if err != nil {
			return nil, err
		}
		return repository.NewFileTokenRepository(dir, cfg.Session.Key), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.Session.Store)
	}
}
