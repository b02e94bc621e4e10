package app

import (
	"context"
	"fmt"

	"go-hrdocs/internal/bootstrap"
	"go-hrdocs/internal/config"
	"go-hrdocs/internal/messaging/kafka/producer"
	"go-hrdocs/internal/shared/connection"

	"go.uber.org/zap"
)

func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	infra, err := NewInfra(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer bootstrap.RunClosers(context.Background(), infra.Closers()...)

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.ControlDB.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	go producer.ProcessOutboxEvents(
		ctx,
		tenantOutboxes(infra),
		kafkaWriter,
		logger,
		cfg.Kafka.PollInterval,
	)

	sig := bootstrap.WaitForSignal()
	logger.Info("worker shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}

// tenantOutboxes drains every active tenant, opening stores as needed.
func tenantOutboxes(infra *Infra) producer.OutboxSource {
	log := zap.L().Named("app.worker")
	return func(ctx context.Context) ([]producer.TenantOutbox, error) {
		tenants, err := infra.Registry.Directory().ListActive(ctx)
		if err != nil {
			return nil, err
		}

		out := make([]producer.TenantOutbox, 0, len(tenants))
		for _, t := range tenants {
			h, err := infra.Registry.Resolve(ctx, t.ID.String())
			if err != nil {
				log.Warn("resolve tenant for outbox failed", zap.String("tenant_id", t.ID.String()), zap.Error(err))
				continue
			}
			out = append(out, producer.TenantOutbox{TenantID: t.ID.String(), Repo: h.Models.Outbox})
		}
		return out, nil
	}
}
