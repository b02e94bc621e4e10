package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrdocs/internal/events"
	"go-hrdocs/internal/generation"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/tenant"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const requestDedupTTL = 24 * time.Hour

func RequestDedupKey(tenantID, requestID string) string {
	return "consumer:document_requested:" + tenantID + ":" + requestID
}

// ConsumeDocumentRequested runs generation for each request. rdb may be
// nil, in which case redelivered requests generate again.
func ConsumeDocumentRequested(
	ctx context.Context,
	reader MessageReader,
	services tenant.Resolver[generation.Service],
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.document_requested")
	log.Info("document requested consumer started")

	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		return HandleDocumentRequested(ctx, msg.Value, services, rdb, log)
	})
}

func HandleDocumentRequested(
	ctx context.Context,
	payload []byte,
	services tenant.Resolver[generation.Service],
	rdb *redis.Client,
	log *zap.Logger,
) error {
	var event events.DocumentRequestedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errors.Join(errSkip, err)
	}

	ctx = contextutil.WithTenantID(ctx, event.TenantID)
	ctx = contextutil.WithRequestID(ctx, event.RequestID)

	if rdb != nil && event.RequestID != "" {
		key := RequestDedupKey(event.TenantID, event.RequestID)
		fresh, err := rdb.SetNX(ctx, key, "1", requestDedupTTL).Result()
		if err != nil {
			return err
		}
		if !fresh {
			log.Info("duplicate document request ignored", zap.String("request_id", event.RequestID))
			return nil
		}
		done := false
		defer func() {
			if !done {
				_ = rdb.Del(context.WithoutCancel(ctx), key).Err()
			}
		}()
		err = generate(ctx, event, services, log)
		done = err == nil
		return err
	}

	return generate(ctx, event, services, log)
}

func generate(ctx context.Context, event events.DocumentRequestedEvent, services tenant.Resolver[generation.Service], log *zap.Logger) error {
	svc, err := services(ctx, event.TenantID)
	if err != nil {
		return classify(err)
	}

	actor := event.RequestedBy
	if actor == "" {
		actor = "system:document-requested"
	}

	res, err := svc.Generate(ctx, event.TenantID, actor, generation.GenerateRequest{
		SubjectID:    event.SubjectID,
		DocumentType: event.DocumentType,
		AnnualCTC:    event.AnnualCTC,
		UseCatalog:   event.UseCatalog,
		TemplateRef:  event.TemplateRef,
		Format:       event.Format,
	})
	if err != nil {
		return classify(err)
	}

	log.Info("document generated from request",
		zap.String("tenant_id", event.TenantID),
		zap.String("request_id", event.RequestID),
		zap.String("document_id", res.Document.ID.String()),
	)
	return nil
}
