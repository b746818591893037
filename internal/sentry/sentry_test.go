package sentry

import (
	"context"
	"testing"

	"github.com/flexprice/billingcore/internal/config"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	svc := NewSentryService(config.GetDefaultConfig(), logger.NewNopLogger())
	ctx := context.Background()

	span, spanCtx := svc.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{"operation": "transaction"})
	assert.Nil(t, span)
	assert.Equal(t, ctx, spanCtx)

	span, spanCtx = svc.StartTransaction(ctx, "engine.commitment_amount")
	assert.Nil(t, span)
	assert.Equal(t, ctx, spanCtx)

	assert.True(t, svc.Flush(0))
	(&SpanFinisher{}).Finish()
}

func TestNilServiceIsNoop(t *testing.T) {
	var svc *Service
	span, _ := svc.StartClickHouseSpan(context.Background(), "clickhouse.query", nil)
	assert.Nil(t, span)
	svc.CaptureException(assert.AnError)
}
