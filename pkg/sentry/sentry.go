package sentry

import (
	"context"
	"time"

	"github.com/SeaCloudHub/eventhandler/domain"
	sentrygo "github.com/getsentry/sentry-go"
)

const FlushTime = 2 * time.Second

type Reporter struct {
	hub *sentrygo.Hub
}

// WithContext picks the hub attached to ctx, falling back to the current hub.
func WithContext(ctx context.Context) *Reporter {
	hub := sentrygo.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentrygo.CurrentHub()
	}

	return &Reporter{hub: hub}
}

func (r *Reporter) Error(err error) {
	r.hub.CaptureException(err)
}

// FailureReporter sends tolerated callback failures to sentry, tagged with
// the event and callback names.
func FailureReporter() domain.FailureReporter {
	return func(ctx context.Context, event, callback string, err error) {
		r := WithContext(ctx)
		r.hub.WithScope(func(scope *sentrygo.Scope) {
			scope.SetTag("event", event)
			scope.SetTag("callback", callback)
			r.Error(err)
		})
	}
}
