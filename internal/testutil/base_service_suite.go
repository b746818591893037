package testutil

import (
	"context"
	"time"

	"github.com/flexprice/billingcore/internal/cache"
	"github.com/flexprice/billingcore/internal/config"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/sentry"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/flexprice/billingcore/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories backing service tests
type Stores struct {
	PlanRepo                *InMemoryPlanStore
	CustomerRepo            *InMemoryCustomerStore
	SubscriptionRepo        *InMemorySubscriptionStore
	InvoiceSubscriptionRepo *InMemoryInvoiceSubscriptionStore
	CommitmentRepo          *InMemoryCommitmentStore
	FixedChargeRepo         *InMemoryFixedChargeStore
	FixedChargeEventRepo    *InMemoryFixedChargeEventStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     *MockPostgresClient
	logger *logger.Logger
	config *config.Configuration
	sentry *sentry.Service
	cache  cache.Cache
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.sentry = sentry.NewSentryService(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.db = NewMockPostgresClient()
	s.cache = cache.NewInMemoryCache(s.config)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		PlanRepo:                NewInMemoryPlanStore(),
		CustomerRepo:            NewInMemoryCustomerStore(),
		SubscriptionRepo:        NewInMemorySubscriptionStore(),
		InvoiceSubscriptionRepo: NewInMemoryInvoiceSubscriptionStore(),
		CommitmentRepo:          NewInMemoryCommitmentStore(),
		FixedChargeRepo:         NewInMemoryFixedChargeStore(),
		FixedChargeEventRepo:    NewInMemoryFixedChargeEventStore(),
	}
}

// ClearStores empties every store
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.PlanRepo.Clear()
	s.stores.CustomerRepo.Clear()
	s.stores.SubscriptionRepo.Clear()
	s.stores.InvoiceSubscriptionRepo.Clear()
	s.stores.CommitmentRepo.Clear()
	s.stores.FixedChargeRepo.Clear()
	s.stores.FixedChargeEventRepo.Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetBaseModel returns a published base model for the default tenant
func (s *BaseServiceTestSuite) GetBaseModel() types.BaseModel {
	return types.GetDefaultBaseModel(types.GetTenantID(s.ctx), s.now)
}
