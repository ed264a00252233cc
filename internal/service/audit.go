package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/leafscan-service/internal/events"
)

// RegisterAuditSubscribers logs every identity and report event with
// structured fields. Payloads carry no secrets, so logging them whole is
// safe.
func RegisterAuditSubscribers(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("user_id", event.UserID),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventUserVerified,
		events.EventUserLoggedIn,
		events.EventPasswordChanged,
		events.EventReportCreated,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
