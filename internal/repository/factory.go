package repository

import (
	"github.com/jurisflow/jurisflow/internal/domain/alert"
	"github.com/jurisflow/jurisflow/internal/domain/auth"
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
	postgresRepo "github.com/jurisflow/jurisflow/internal/repository/postgres"
)

func NewTenantRepository(db postgres.IClient, logger *logger.Logger) tenant.Repository {
	return postgresRepo.NewTenantRepository(db, logger)
}

func NewUserRepository(db postgres.IClient, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuthRepository(db postgres.IClient, logger *logger.Logger) auth.Repository {
	return postgresRepo.NewAuthRepository(db, logger)
}

func NewClientRepository(db postgres.IClient, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewMatterRepository(db postgres.IClient, logger *logger.Logger) matter.Repository {
	return postgresRepo.NewMatterRepository(db, logger)
}

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewPaymentRepository(db postgres.IClient, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewPermissionRepository(db postgres.IClient, logger *logger.Logger) permission.Repository {
	return postgresRepo.NewPermissionRepository(db, logger)
}

func NewEventRepository(db postgres.IClient, logger *logger.Logger) event.Repository {
	return postgresRepo.NewEventRepository(db, logger)
}

func NewTaskRepository(db postgres.IClient, logger *logger.Logger) task.Repository {
	return postgresRepo.NewTaskRepository(db, logger)
}

func NewAlertRepository(db postgres.IClient, logger *logger.Logger) alert.Repository {
	return postgresRepo.NewAlertRepository(db, logger)
}

func NewDocumentRepository(db postgres.IClient, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(db, logger)
}

func NewBailiffReportRepository(db postgres.IClient, logger *logger.Logger) bailiffreport.Repository {
	return postgresRepo.NewBailiffReportRepository(db, logger)
}

func NewNotaryActRepository(db postgres.IClient, logger *logger.Logger) notaryact.Repository {
	return postgresRepo.NewNotaryActRepository(db, logger)
}
