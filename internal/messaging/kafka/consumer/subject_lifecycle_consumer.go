package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-hrdocs/internal/events"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/subject"
	"go-hrdocs/internal/tenant"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SubjectServices are the tenant services a lifecycle event touches.
type SubjectServices struct {
	Subjects  subject.Service
	Snapshots salarysnapshot.Service
}

const systemActor = "system:subject-lifecycle"

func ConsumeSubjectLifecycle(
	ctx context.Context,
	reader MessageReader,
	services tenant.Resolver[SubjectServices],
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.subject_lifecycle")
	log.Info("subject lifecycle consumer started")

	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		return HandleSubjectLifecycle(ctx, msg.Value, services, log)
	})
}

// HandleSubjectLifecycle upserts the subject and, when the event carries a
// CTC that differs from the current snapshot's, records a default split.
func HandleSubjectLifecycle(
	ctx context.Context,
	payload []byte,
	services tenant.Resolver[SubjectServices],
	log *zap.Logger,
) error {
	var event events.SubjectLifecycleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errors.Join(errSkip, err)
	}

	ctx = contextutil.WithTenantID(ctx, event.TenantID)
	svc, err := services(ctx, event.TenantID)
	if err != nil {
		return classify(err)
	}

	_, err = svc.Subjects.Upsert(ctx, event.TenantID, event.SubjectID, subject.UpsertSubjectRequest{
		Kind:      event.Kind,
		FullName:  event.FullName,
		Email:     event.Email,
		AnnualCTC: event.AnnualCTC,
	})
	if err != nil {
		return classify(err)
	}

	if event.AnnualCTC == nil {
		log.Info("subject upserted", zap.String("tenant_id", event.TenantID), zap.String("subject_id", event.SubjectID))
		return nil
	}

	current, err := svc.Snapshots.GetCurrent(ctx, event.TenantID, event.SubjectID)
	if err != nil {
		return classify(err)
	}
	if current != nil && current.AnnualCTC.Valid && current.AnnualCTC.Decimal.Equal(*event.AnnualCTC) {
		log.Info("subject CTC unchanged, snapshot not created",
			zap.String("subject_id", event.SubjectID),
			zap.Int("current_version", current.Version),
		)
		return nil
	}

	snap, err := svc.Snapshots.CreateFromCTC(ctx, event.TenantID, event.SubjectID, systemActor, *event.AnnualCTC)
	if err != nil {
		return classify(err)
	}

	log.Info("subject upserted with default snapshot",
		zap.String("tenant_id", event.TenantID),
		zap.String("subject_id", event.SubjectID),
		zap.Int("version", snap.Version),
	)
	return nil
}
