package producer

import (
	"context"
	"time"

	"go-hrdocs/internal/messaging/kafka"

	"go.uber.org/zap"
)

const batchSize = 50

// TenantOutbox is one tenant store's outbox.
type TenantOutbox struct {
	TenantID string
	Repo     kafka.OutboxRepository
}

// OutboxSource lists the outboxes to drain on each tick.
type OutboxSource func(ctx context.Context) ([]TenantOutbox, error)

func ProcessOutboxEvents(
	ctx context.Context,
	source OutboxSource,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			DrainOnce(ctx, source, writer, log)
		}
	}
}

// DrainOnce publishes one batch from every outbox the source returns. A
// tenant whose store fails is logged and skipped.
func DrainOnce(ctx context.Context, source OutboxSource, writer MessageWriter, logger *zap.Logger) {
	outboxes, err := source(ctx)
	if err != nil {
		logger.Error("list tenant outboxes failed", zap.Error(err))
		return
	}

	for _, ob := range outboxes {
		if ctx.Err() != nil {
			return
		}
		if err := processPendingEvents(ctx, ob.Repo, writer, logger.With(zap.String("tenant_id", ob.TenantID))); err != nil {
			logger.Error("process outbox events failed", zap.String("tenant_id", ob.TenantID), zap.Error(err))
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Debug("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}
