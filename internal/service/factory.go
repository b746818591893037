package service

import (
	"github.com/flexprice/billingcore/internal/cache"
	"github.com/flexprice/billingcore/internal/config"
	"github.com/flexprice/billingcore/internal/domain/commitment"
	"github.com/flexprice/billingcore/internal/domain/customer"
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/domain/plan"
	"github.com/flexprice/billingcore/internal/domain/subscription"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/sentry"
	"go.uber.org/fx"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Sentry *sentry.Service
	Cache  cache.Cache

	// Repositories
	PlanRepo                plan.Repository
	CustomerRepo            customer.Repository
	SubRepo                 subscription.Repository
	InvoiceSubscriptionRepo subscription.InvoiceSubscriptionRepository
	CommitmentRepo          commitment.Repository
	FixedChargeRepo         fixedcharge.Repository
	FixedChargeEventRepo    fixedcharge.EventRepository
}

// Module provides the service params and the engine
func Module() fx.Option {
	return fx.Provide(
		NewServiceParams,
		NewEngine,
	)
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	sentry *sentry.Service,
	cache cache.Cache,
	planRepo plan.Repository,
	customerRepo customer.Repository,
	subRepo subscription.Repository,
	invoiceSubscriptionRepo subscription.InvoiceSubscriptionRepository,
	commitmentRepo commitment.Repository,
	fixedChargeRepo fixedcharge.Repository,
	fixedChargeEventRepo fixedcharge.EventRepository,
) ServiceParams {
	return ServiceParams{
		Logger:                  logger,
		Config:                  config,
		DB:                      db,
		Sentry:                  sentry,
		Cache:                   cache,
		PlanRepo:                planRepo,
		CustomerRepo:            customerRepo,
		SubRepo:                 subRepo,
		InvoiceSubscriptionRepo: invoiceSubscriptionRepo,
		CommitmentRepo:          commitmentRepo,
		FixedChargeRepo:         fixedChargeRepo,
		FixedChargeEventRepo:    fixedChargeEventRepo,
	}
}
