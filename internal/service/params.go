package service

import (
	"github.com/jurisflow/jurisflow/internal/auth"
	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/domain/alert"
	authRepo "github.com/jurisflow/jurisflow/internal/domain/auth"
	"github.com/jurisflow/jurisflow/internal/domain/bailiffreport"
	"github.com/jurisflow/jurisflow/internal/domain/client"
	"github.com/jurisflow/jurisflow/internal/domain/document"
	"github.com/jurisflow/jurisflow/internal/domain/event"
	"github.com/jurisflow/jurisflow/internal/domain/invoice"
	"github.com/jurisflow/jurisflow/internal/domain/matter"
	"github.com/jurisflow/jurisflow/internal/domain/notaryact"
	"github.com/jurisflow/jurisflow/internal/domain/payment"
	"github.com/jurisflow/jurisflow/internal/domain/permission"
	"github.com/jurisflow/jurisflow/internal/domain/task"
	"github.com/jurisflow/jurisflow/internal/domain/tenant"
	"github.com/jurisflow/jurisflow/internal/domain/user"
	"github.com/jurisflow/jurisflow/internal/httpclient"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/ratelimit"
	"github.com/jurisflow/jurisflow/internal/rbac"
	"github.com/jurisflow/jurisflow/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger  *logger.Logger
	Config  *config.Configuration
	DB      postgres.IClient
	S3      s3.Service
	Client  httpclient.Client
	Cache   cache.Cache
	RBAC    *rbac.RBACService
	Limiter ratelimit.Limiter

	AuthProvider auth.Provider

	// Repositories
	TenantRepo        tenant.Repository
	UserRepo          user.Repository
	AuthRepo          authRepo.Repository
	ClientRepo        client.Repository
	MatterRepo        matter.Repository
	InvoiceRepo       invoice.Repository
	PaymentRepo       payment.Repository
	EventRepo         event.Repository
	TaskRepo          task.Repository
	AlertRepo         alert.Repository
	DocumentRepo      document.Repository
	PermissionRepo    permission.Repository
	BailiffReportRepo bailiffreport.Repository
	NotaryActRepo     notaryact.Repository
}

// NewServiceParams wires the common dependency set consumed by every
// service constructor
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	s3Service s3.Service,
	client httpclient.Client,
	cacheClient cache.Cache,
	rbacService *rbac.RBACService,
	limiter ratelimit.Limiter,
	authProvider auth.Provider,
	tenantRepo tenant.Repository,
	userRepo user.Repository,
	authRepository authRepo.Repository,
	clientRepo client.Repository,
	matterRepo matter.Repository,
	invoiceRepo invoice.Repository,
	paymentRepo payment.Repository,
	eventRepo event.Repository,
	taskRepo task.Repository,
	alertRepo alert.Repository,
	documentRepo document.Repository,
	permissionRepo permission.Repository,
	bailiffReportRepo bailiffreport.Repository,
	notaryActRepo notaryact.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:            logger,
		Config:            config,
		DB:                db,
		S3:                s3Service,
		Client:            client,
		Cache:             cacheClient,
		RBAC:              rbacService,
		Limiter:           limiter,
		AuthProvider:      authProvider,
		TenantRepo:        tenantRepo,
		UserRepo:          userRepo,
		AuthRepo:          authRepository,
		ClientRepo:        clientRepo,
		MatterRepo:        matterRepo,
		InvoiceRepo:       invoiceRepo,
		PaymentRepo:       paymentRepo,
		EventRepo:         eventRepo,
		TaskRepo:          taskRepo,
		AlertRepo:         alertRepo,
		DocumentRepo:      documentRepo,
		PermissionRepo:    permissionRepo,
		BailiffReportRepo: bailiffReportRepo,
		NotaryActRepo:     notaryActRepo,
	}
}
