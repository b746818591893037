package clickhouse

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartRepositorySpan opens a db.clickhouse span, nil when no hub is on the context
func StartRepositorySpan(ctx context.Context, repository, operation string, params map[string]interface{}) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	name := "repository." + repository + "." + operation
	span := sentry.StartSpan(ctx, name)
	span.Description = name
	span.Op = "db.clickhouse"
	span.SetData("repository", repository)
	span.SetData("operation", operation)
	for k, v := range params {
		span.SetData(k, v)
	}
	return span
}

func FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

func SetSpanError(span *sentry.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.Status = sentry.SpanStatusInternalError
	span.SetData("error", err.Error())
}

func SetSpanSuccess(span *sentry.Span) {
	if span != nil {
		span.Status = sentry.SpanStatusOK
	}
}
