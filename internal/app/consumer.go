package app

import (
	"context"
	"fmt"
	"sync"

	"go-hrdocs/internal/bootstrap"
	"go-hrdocs/internal/config"
	"go-hrdocs/internal/events"
	"go-hrdocs/internal/generation"
	"go-hrdocs/internal/messaging/kafka/consumer"
	"go-hrdocs/internal/models"
	"go-hrdocs/internal/tenant"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	newReader := func(topic, group string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{cfg.Kafka.Broker},
			Topic:          topic,
			GroupID:        cfg.Kafka.ConsumerGroup + "-" + group,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	lifecycleReader := newReader(events.SubjectLifecycleTopic, "subject-lifecycle")
	defer lifecycleReader.Close()
	requestReader := newReader(events.DocumentRequestedTopic, "document-requested")
	defer requestReader.Close()

	subjectServices := tenant.Bind(infra.Registry, func(m *models.Models) consumer.SubjectServices {
		return consumer.SubjectServices{Subjects: m.SubjectService, Snapshots: m.SnapshotService}
	})
	generator := tenant.Bind(infra.Registry, func(m *models.Models) generation.Service { return m.GenerationService })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeSubjectLifecycle(ctx, lifecycleReader, subjectServices, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeDocumentRequested(ctx, requestReader, generator, infra.Redis, logger)
	}()

	sig := bootstrap.WaitForSignal()
	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
	wg.Wait()

	return nil
}
