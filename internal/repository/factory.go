package repository

import (
	"github.com/flexprice/billingcore/internal/clickhouse"
	"github.com/flexprice/billingcore/internal/config"
	"github.com/flexprice/billingcore/internal/domain/commitment"
	"github.com/flexprice/billingcore/internal/domain/customer"
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/plan"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	clickhouseRepo "github.com/flexprice/billingcore/internal/repository/clickhouse"
	postgresRepo "github.com/flexprice/billingcore/internal/repository/postgres"
	"go.uber.org/fx"
)

// Module provides every repository the engine reads through
func Module() fx.Option {
	return fx.Provide(
		NewPlanRepository,
		NewCustomerRepository,
		NewSubscriptionRepository,
		NewInvoiceSubscriptionRepository,
		NewCommitmentRepository,
		NewFixedChargeRepository,
		NewFixedChargeEventRepository,
	)
}

func NewPlanRepository(client postgres.IClient, logger *logger.Logger) plan.Repository {
	return postgresRepo.NewPlanRepository(client, logger)
}

func NewCustomerRepository(client postgres.IClient, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(client, logger)
}

func NewSubscriptionRepository(client postgres.IClient, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(client, logger)
}

func NewInvoiceSubscriptionRepository(client postgres.IClient, logger *logger.Logger) subscription.InvoiceSubscriptionRepository {
	return postgresRepo.NewInvoiceSubscriptionRepository(client, logger)
}

func NewCommitmentRepository(client postgres.IClient, logger *logger.Logger) commitment.Repository {
	return postgresRepo.NewCommitmentRepository(client, logger)
}

func NewFixedChargeRepository(client postgres.IClient, logger *logger.Logger) fixedcharge.Repository {
	return postgresRepo.NewFixedChargeRepository(client, logger)
}

func NewFixedChargeEventRepository(store *clickhouse.ClickHouseStore, logger *logger.Logger, cfg *config.Configuration) fixedcharge.EventRepository {
	return clickhouseRepo.NewFixedChargeEventRepository(store, logger, cfg)
}
