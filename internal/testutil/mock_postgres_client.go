package testutil

import (
	"context"
	"sync/atomic"

	"github.com/flexprice/billingcore/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactional callbacks inline for services backed by in-memory stores
type MockPostgresClient struct {
	txCount int64
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	atomic.AddInt64(&c.txCount, 1)
	return fn(ctx)
}

// WithReadOnlyTx executes the given function without a real transaction
func (c *MockPostgresClient) WithReadOnlyTx(ctx context.Context, fn func(context.Context) error) error {
	atomic.AddInt64(&c.txCount, 1)
	return fn(ctx)
}

// Querier is never used by in-memory stores
func (c *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}

// TxCount returns how many transactions were opened
func (c *MockPostgresClient) TxCount() int {
	return int(atomic.LoadInt64(&c.txCount))
}
