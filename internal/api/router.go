package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/jurisflow/jurisflow/internal/api/v1"
	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/ratelimit"
	"github.com/jurisflow/jurisflow/internal/rest/middleware"
	"github.com/jurisflow/jurisflow/internal/service"
	"github.com/jurisflow/jurisflow/internal/types"
)

type Handlers struct {
	Health        *v1.HealthHandler
	Auth          *v1.AuthHandler
	Session       *v1.SessionHandler
	Tenant        *v1.TenantHandler
	User          *v1.UserHandler
	Client        *v1.ClientHandler
	Matter        *v1.MatterHandler
	Invoice       *v1.InvoiceHandler
	Payment       *v1.PaymentHandler
	Event         *v1.EventHandler
	Task          *v1.TaskHandler
	Alert         *v1.AlertHandler
	Document      *v1.DocumentHandler
	BailiffReport *v1.BailiffReportHandler
	NotaryAct     *v1.NotaryActHandler
	Assistant     *v1.AssistantHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	log *logger.Logger,
	sessionService service.SessionService,
	limiter ratelimit.Limiter,
) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")

	// Auth endpoints stay open; the per phone budget is enforced in
	// the onboarding service.
	auth := v1Group.Group("/auth")
	{
		auth.POST("/signup", handlers.Auth.SignUp)
		auth.POST("/login", handlers.Auth.Login)
	}

	private := v1Group.Group("")
	private.Use(
		middleware.AuthenticateMiddleware(cfg, sessionService, log),
		middleware.RateLimitMiddleware(limiter, types.RateLimitCategoryAPI),
	)
	registerPrivateRoutes(private, handlers)

	return router
}

func registerPrivateRoutes(router *gin.RouterGroup, handlers Handlers) {
	router.GET("/session", handlers.Session.GetSession)

	firm := router.Group("/firm")
	{
		firm.GET("", handlers.Tenant.GetTenant)
		firm.PUT("", handlers.Tenant.UpdateTenant)
		firm.GET("/permissions", handlers.User.GetPermissionMatrix)
		firm.PUT("/permissions", handlers.User.UpdatePermissionMatrix)
	}

	users := router.Group("/users")
	{
		users.GET("", handlers.User.ListUsers)
		users.GET("/:id", handlers.User.GetUser)
		users.PUT("/:id", handlers.User.UpdateUser)
	}

	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.ListClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
	}

	matters := router.Group("/matters")
	{
		matters.POST("", handlers.Matter.CreateMatter)
		matters.GET("", handlers.Matter.ListMatters)
		matters.GET("/:id", handlers.Matter.GetMatter)
		matters.PUT("/:id", handlers.Matter.UpdateMatter)
		matters.DELETE("/:id", handlers.Matter.DeleteMatter)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.POST("/:id/finalize", handlers.Invoice.FinalizeInvoice)
		invoices.POST("/:id/cancel", handlers.Invoice.CancelInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	payments := router.Group("/payments")
	{
		payments.POST("", handlers.Payment.RecordPayment)
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
	}

	events := router.Group("/events")
	{
		events.POST("", handlers.Event.CreateEvent)
		events.GET("", handlers.Event.ListEvents)
		events.GET("/:id", handlers.Event.GetEvent)
		events.PUT("/:id", handlers.Event.UpdateEvent)
		events.DELETE("/:id", handlers.Event.DeleteEvent)
	}

	tasks := router.Group("/tasks")
	{
		tasks.POST("", handlers.Task.CreateTask)
		tasks.GET("", handlers.Task.ListTasks)
		tasks.GET("/:id", handlers.Task.GetTask)
		tasks.PUT("/:id", handlers.Task.UpdateTask)
		tasks.DELETE("/:id", handlers.Task.DeleteTask)
	}

	alerts := router.Group("/alerts")
	{
		alerts.GET("", handlers.Alert.ListAlerts)
		alerts.POST("/generate", handlers.Alert.GenerateAlerts)
		alerts.POST("/:id/read", handlers.Alert.MarkRead)
	}

	bailiffReports := router.Group("/bailiff-reports")
	{
		bailiffReports.POST("", handlers.BailiffReport.CreateReport)
		bailiffReports.GET("", handlers.BailiffReport.ListReports)
		bailiffReports.GET("/:id", handlers.BailiffReport.GetReport)
		bailiffReports.PUT("/:id", handlers.BailiffReport.UpdateReport)
		bailiffReports.DELETE("/:id", handlers.BailiffReport.DeleteReport)
	}

	notaryActs := router.Group("/notary-acts")
	{
		notaryActs.POST("", handlers.NotaryAct.CreateAct)
		notaryActs.GET("", handlers.NotaryAct.ListActs)
		notaryActs.GET("/:id", handlers.NotaryAct.GetAct)
		notaryActs.PUT("/:id", handlers.NotaryAct.UpdateAct)
		notaryActs.DELETE("/:id", handlers.NotaryAct.DeleteAct)
	}

	documents := router.Group("/documents")
	{
		documents.POST("", handlers.Document.UploadDocument)
		documents.GET("", handlers.Document.ListDocuments)
		documents.GET("/:id", handlers.Document.GetDocument)
		documents.DELETE("/:id", handlers.Document.DeleteDocument)
	}

	router.POST("/assistant", handlers.Assistant.Ask)
}
