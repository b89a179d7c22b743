package testutil

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/auth"
	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/domain/alert"
	domainAuth "github.com/jurisflow/jurisflow/internal/domain/auth"
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
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/ratelimit"
	"github.com/jurisflow/jurisflow/internal/rbac"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/jurisflow/jurisflow/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	TenantRepo        tenant.Repository
	UserRepo          user.Repository
	AuthRepo          domainAuth.Repository
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

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Auth = config.AuthConfig{
		Provider: types.AuthProviderLocal,
		Secret:   "test-secret-for-unit-tests-only",
	}
	cfg.RateLimit.Enabled = true
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TenantRepo:        NewInMemoryTenantStore(),
		UserRepo:          NewInMemoryUserStore(),
		AuthRepo:          NewInMemoryAuthRepository(),
		ClientRepo:        NewInMemoryClientStore(),
		MatterRepo:        NewInMemoryMatterStore(),
		InvoiceRepo:       NewInMemoryInvoiceStore(),
		PaymentRepo:       NewInMemoryPaymentStore(),
		EventRepo:         NewInMemoryEventStore(),
		TaskRepo:          NewInMemoryTaskStore(),
		AlertRepo:         NewInMemoryAlertStore(),
		DocumentRepo:      NewInMemoryDocumentStore(),
		PermissionRepo:    NewInMemoryPermissionStore(),
		BailiffReportRepo: NewInMemoryBailiffReportStore(),
		NotaryActRepo:     NewInMemoryNotaryActStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TenantRepo.(*InMemoryTenantStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.AuthRepo.(*InMemoryAuthRepository).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.MatterRepo.(*InMemoryMatterStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.EventRepo.(*InMemoryEventStore).Clear()
	s.stores.TaskRepo.(*InMemoryTaskStore).Clear()
	s.stores.AlertRepo.(*InMemoryAlertStore).Clear()
	s.stores.DocumentRepo.(*InMemoryDocumentStore).Clear()
	s.stores.PermissionRepo.(*InMemoryPermissionStore).Clear()
	s.stores.BailiffReportRepo.(*InMemoryBailiffReportStore).Clear()
	s.stores.NotaryActRepo.(*InMemoryNotaryActStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext overrides the test context, e.g. to switch tenants
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetRBAC returns an RBAC service backed by the suite's permission
// store, so tests can exercise per-firm matrix overrides
func (s *BaseServiceTestSuite) GetRBAC() *rbac.RBACService {
	return rbac.NewRBACService(s.stores.PermissionRepo, cache.NewInMemoryCache())
}

// GetLimiter returns a limiter built from the test configuration
func (s *BaseServiceTestSuite) GetLimiter() ratelimit.Limiter {
	return ratelimit.NewLimiter(s.config, s.logger)
}

// GetAuthProvider returns the local auth provider for the test config
func (s *BaseServiceTestSuite) GetAuthProvider() auth.Provider {
	return auth.NewProvider(s.config)
}

// GetCache returns an in-memory cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return cache.NewInMemoryCache()
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
