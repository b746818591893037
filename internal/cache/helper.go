package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartCacheSpan opens a cache span when the context carries a sentry hub
func StartCacheSpan(ctx context.Context, cache, operation string, params map[string]interface{}) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "cache."+cache+"."+operation)
	span.Op = "cache." + operation
	span.Description = cache
	for k, v := range params {
		span.SetData(k, v)
	}
	return span
}

// finishSpan closes span, recording hit for lookups
func finishSpan(span *sentry.Span, hit *bool) {
	if span == nil {
		return
	}
	if hit != nil {
		span.SetData("cache.hit", *hit)
	}
	span.Status = sentry.SpanStatusOK
	span.Finish()
}
