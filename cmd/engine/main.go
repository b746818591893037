package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/flexprice/billingcore/internal/api/dto"
	"github.com/flexprice/billingcore/internal/cache"
	"github.com/flexprice/billingcore/internal/clickhouse"
	"github.com/flexprice/billingcore/internal/config"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/repository"
	"github.com/flexprice/billingcore/internal/sentry"
	"github.com/flexprice/billingcore/internal/service"
	"github.com/flexprice/billingcore/internal/types"
	"go.uber.org/fx"
)

const (
	cmdCommitmentAmount = "commitment-amount"
	cmdFixedChargeUsage = "fixed-charge-usage"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	command := flag.String("cmd", cmdCommitmentAmount, "Operation to run: commitment-amount or fixed-charge-usage")
	tenantID := flag.String("tenant-id", types.DefaultTenantID, "Tenant the records belong to")
	invoiceSubscriptionID := flag.String("invoice-subscription-id", "", "Invoice subscription to compute for")
	fixedChargeID := flag.String("fixed-charge-id", "", "Fixed charge to aggregate (fixed-charge-usage only)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall deadline for the computation")
	flag.Parse()

	var engine *service.Engine
	var appLogger *logger.Logger

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
		),
		sentry.Module(),
		cache.Module(),
		postgres.Module(),
		clickhouse.Module(),
		repository.Module(),
		service.Module(),
		fx.Populate(&engine, &appLogger),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	ctx = types.SetTenantID(ctx, *tenantID)
	ctx = types.SetRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))

	transaction, ctx := engine.Sentry.StartTransaction(ctx, "billingcore."+*command)
	finisher := &sentry.SpanFinisher{Span: transaction}

	code := 0
	if err := run(ctx, engine, *command, *invoiceSubscriptionID, *fixedChargeID); err != nil {
		appLogger.Errorw("computation failed",
			"command", *command,
			"request_id", types.GetRequestID(ctx),
			"error", err,
			"code", ierr.CodeFromErr(err),
			"hints", ierr.HintsFromErr(err),
		)
		code = 1
	}
	finisher.Finish()

	if err := app.Stop(context.Background()); err != nil {
		appLogger.Errorw("failed to stop engine", "error", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, engine *service.Engine, command, invoiceSubscriptionID, fixedChargeID string) error {
	var (
		result interface{}
		err    error
	)
	switch command {
	case cmdCommitmentAmount:
		result, err = engine.ComputeCommitmentAmount(ctx, &dto.CommitmentAmountRequest{
			InvoiceSubscriptionID: invoiceSubscriptionID,
		})
	case cmdFixedChargeUsage:
		result, err = engine.ComputeFixedChargeUsage(ctx, &dto.FixedChargeUsageRequest{
			FixedChargeID:         fixedChargeID,
			InvoiceSubscriptionID: invoiceSubscriptionID,
		})
	default:
		return ierr.NewErrorf("unknown command %q", command).
			WithHintf("Use %s or %s", cmdCommitmentAmount, cmdFixedChargeUsage).
			Mark(ierr.ErrValidation)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
