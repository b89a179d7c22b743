package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/api"
	v1 "github.com/jurisflow/jurisflow/internal/api/v1"
	"github.com/jurisflow/jurisflow/internal/auth"
	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/httpclient"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/ratelimit"
	"github.com/jurisflow/jurisflow/internal/rbac"
	"github.com/jurisflow/jurisflow/internal/repository"
	"github.com/jurisflow/jurisflow/internal/s3"
	"github.com/jurisflow/jurisflow/internal/service"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/jurisflow/jurisflow/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// All timestamps are stored and compared in UTC
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// Object storage
			s3.NewService,

			// HTTP client
			httpclient.NewDefaultClient,

			// Access control and throttling
			rbac.NewRBACService,
			ratelimit.NewLimiter,

			// Identity provider
			auth.NewProvider,

			// Repositories
			repository.NewTenantRepository,
			repository.NewUserRepository,
			repository.NewAuthRepository,
			repository.NewClientRepository,
			repository.NewMatterRepository,
			repository.NewInvoiceRepository,
			repository.NewPaymentRepository,
			repository.NewEventRepository,
			repository.NewTaskRepository,
			repository.NewAlertRepository,
			repository.NewDocumentRepository,
			repository.NewPermissionRepository,
			repository.NewBailiffReportRepository,
			repository.NewNotaryActRepository,

			// Services
			service.NewServiceParams,
			service.NewSessionService,
			service.NewOnboardingService,
			service.NewTenantService,
			service.NewUserService,
			service.NewClientService,
			service.NewMatterService,
			service.NewInvoiceService,
			service.NewPaymentService,
			service.NewEventService,
			service.NewTaskService,
			service.NewAlertService,
			service.NewDocumentService,
			service.NewBailiffReportService,
			service.NewNotaryActService,
			service.NewAssistantService,

			// Handlers
			v1.NewHealthHandler,
			v1.NewAuthHandler,
			v1.NewSessionHandler,
			v1.NewTenantHandler,
			v1.NewUserHandler,
			v1.NewClientHandler,
			v1.NewMatterHandler,
			v1.NewInvoiceHandler,
			v1.NewPaymentHandler,
			v1.NewEventHandler,
			v1.NewTaskHandler,
			v1.NewAlertHandler,
			v1.NewDocumentHandler,
			v1.NewBailiffReportHandler,
			v1.NewNotaryActHandler,
			v1.NewAssistantHandler,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	health *v1.HealthHandler,
	authHandler *v1.AuthHandler,
	session *v1.SessionHandler,
	tenant *v1.TenantHandler,
	user *v1.UserHandler,
	client *v1.ClientHandler,
	matter *v1.MatterHandler,
	invoice *v1.InvoiceHandler,
	payment *v1.PaymentHandler,
	event *v1.EventHandler,
	task *v1.TaskHandler,
	alert *v1.AlertHandler,
	document *v1.DocumentHandler,
	bailiffReport *v1.BailiffReportHandler,
	notaryAct *v1.NotaryActHandler,
	assistant *v1.AssistantHandler,
) api.Handlers {
	return api.Handlers{
		Health:        health,
		Auth:          authHandler,
		Session:       session,
		Tenant:        tenant,
		User:          user,
		Client:        client,
		Matter:        matter,
		Invoice:       invoice,
		Payment:       payment,
		Event:         event,
		Task:          task,
		Alert:         alert,
		Document:      document,
		BailiffReport: bailiffReport,
		NotaryAct:     notaryAct,
		Assistant:     assistant,
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	log *logger.Logger,
	sessionService service.SessionService,
	limiter ratelimit.Limiter,
) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, log, sessionService, limiter)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
