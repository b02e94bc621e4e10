package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go-hrdocs/internal/document"
	"go-hrdocs/internal/events"
	"go-hrdocs/internal/generation"
	"go-hrdocs/internal/messaging/kafka/consumer"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/subject"
	subjecterrors "go-hrdocs/internal/subject/errors"
	"go-hrdocs/internal/tenant"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubjectService struct {
	subject.Service
	upsertFn func(ctx context.Context, tenantID, id string, req subject.UpsertSubjectRequest) (subject.SubjectResponse, error)
}

func (f *fakeSubjectService) Upsert(ctx context.Context, tenantID, id string, req subject.UpsertSubjectRequest) (subject.SubjectResponse, error) {
	return f.upsertFn(ctx, tenantID, id, req)
}

type fakeSnapshotService struct {
	salarysnapshot.Service
	current  *salarysnapshot.Snapshot
	fromCTC  []decimal.Decimal
	createFn func(ctc decimal.Decimal) (*salarysnapshot.Snapshot, error)
}

func (f *fakeSnapshotService) GetCurrent(ctx context.Context, tenantID, subjectID string) (*salarysnapshot.Snapshot, error) {
	return f.current, nil
}

func (f *fakeSnapshotService) CreateFromCTC(ctx context.Context, tenantID, subjectID, actorID string, ctc decimal.Decimal) (*salarysnapshot.Snapshot, error) {
	f.fromCTC = append(f.fromCTC, ctc)
	if f.createFn != nil {
		return f.createFn(ctc)
	}
	return &salarysnapshot.Snapshot{Version: len(f.fromCTC)}, nil
}

func subjectResolver(svc consumer.SubjectServices) tenant.Resolver[consumer.SubjectServices] {
	return func(context.Context, string) (consumer.SubjectServices, error) { return svc, nil }
}

func lifecyclePayload(t *testing.T, ctc *decimal.Decimal) []byte {
	t.Helper()
	b, err := json.Marshal(events.SubjectLifecycleEvent{
		EventType: events.EventSubjectUpserted,
		TenantID:  uuid.NewString(),
		SubjectID: uuid.NewString(),
		Kind:      subject.KindEmployee,
		FullName:  "Asha Rao",
		Email:     "asha@example.com",
		AnnualCTC: ctc,
	})
	require.NoError(t, err)
	return b
}

func TestHandleSubjectLifecycle(t *testing.T) {
	ctc := decimal.NewFromInt(1200000)

	t.Run("creates default snapshot when CTC present", func(t *testing.T) {
		snaps := &fakeSnapshotService{}
		subjects := &fakeSubjectService{upsertFn: func(ctx context.Context, tenantID, id string, req subject.UpsertSubjectRequest) (subject.SubjectResponse, error) {
			assert.Equal(t, "Asha Rao", req.FullName)
			return subject.SubjectResponse{ID: id}, nil
		}}

		err := consumer.HandleSubjectLifecycle(context.Background(), lifecyclePayload(t, &ctc),
			subjectResolver(consumer.SubjectServices{Subjects: subjects, Snapshots: snaps}), zap.NewNop())
		require.NoError(t, err)
		require.Len(t, snaps.fromCTC, 1)
		assert.True(t, snaps.fromCTC[0].Equal(ctc))
	})

	t.Run("no snapshot without CTC", func(t *testing.T) {
		snaps := &fakeSnapshotService{}
		subjects := &fakeSubjectService{upsertFn: func(context.Context, string, string, subject.UpsertSubjectRequest) (subject.SubjectResponse, error) {
			return subject.SubjectResponse{}, nil
		}}

		err := consumer.HandleSubjectLifecycle(context.Background(), lifecyclePayload(t, nil),
			subjectResolver(consumer.SubjectServices{Subjects: subjects, Snapshots: snaps}), zap.NewNop())
		require.NoError(t, err)
		assert.Empty(t, snaps.fromCTC)
	})

	t.Run("unchanged CTC keeps current snapshot", func(t *testing.T) {
		snaps := &fakeSnapshotService{current: &salarysnapshot.Snapshot{Version: 4, AnnualCTC: decimal.NewNullDecimal(ctc)}}
		subjects := &fakeSubjectService{upsertFn: func(context.Context, string, string, subject.UpsertSubjectRequest) (subject.SubjectResponse, error) {
			return subject.SubjectResponse{}, nil
		}}

		err := consumer.HandleSubjectLifecycle(context.Background(), lifecyclePayload(t, &ctc),
			subjectResolver(consumer.SubjectServices{Subjects: subjects, Snapshots: snaps}), zap.NewNop())
		require.NoError(t, err)
		assert.Empty(t, snaps.fromCTC)
	})

	t.Run("validation failure is skipped", func(t *testing.T) {
		subjects := &fakeSubjectService{upsertFn: func(context.Context, string, string, subject.UpsertSubjectRequest) (subject.SubjectResponse, error) {
			return subject.SubjectResponse{}, subjecterrors.ErrInvalidKind
		}}

		err := consumer.HandleSubjectLifecycle(context.Background(), lifecyclePayload(t, nil),
			subjectResolver(consumer.SubjectServices{Subjects: subjects, Snapshots: &fakeSnapshotService{}}), zap.NewNop())
		require.Error(t, err)
		assert.ErrorIs(t, err, subjecterrors.ErrInvalidKind)
	})

	t.Run("store timeout is retried", func(t *testing.T) {
		subjects := &fakeSubjectService{upsertFn: func(context.Context, string, string, subject.UpsertSubjectRequest) (subject.SubjectResponse, error) {
			return subject.SubjectResponse{}, apperror.ErrStoreTimeout
		}}

		err := consumer.HandleSubjectLifecycle(context.Background(), lifecyclePayload(t, nil),
			subjectResolver(consumer.SubjectServices{Subjects: subjects, Snapshots: &fakeSnapshotService{}}), zap.NewNop())
		assert.ErrorIs(t, err, apperror.ErrStoreTimeout)
	})
}

type fakeGenerationService struct {
	mu    sync.Mutex
	calls []generation.GenerateRequest
	err   error
}

func (f *fakeGenerationService) Generate(ctx context.Context, tenantID, actorID string, req generation.GenerateRequest) (*generation.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &generation.Result{Document: &document.GeneratedDocument{ID: uuid.New()}}, nil
}

func generationResolver(svc generation.Service) tenant.Resolver[generation.Service] {
	return func(context.Context, string) (generation.Service, error) { return svc, nil }
}

func requestPayload(t *testing.T, tenantID, requestID string) []byte {
	t.Helper()
	b, err := json.Marshal(events.DocumentRequestedEvent{
		EventType:    events.EventDocumentRequested,
		RequestID:    requestID,
		TenantID:     tenantID,
		SubjectID:    uuid.NewString(),
		DocumentType: "OFFER_LETTER",
		Format:       "none",
		UseCatalog:   true,
	})
	require.NoError(t, err)
	return b
}

func TestHandleDocumentRequested_Deduplicates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	tenantID := uuid.NewString()
	svc := &fakeGenerationService{}
	payload := requestPayload(t, tenantID, "req-1")

	require.NoError(t, consumer.HandleDocumentRequested(context.Background(), payload, generationResolver(svc), rdb, zap.NewNop()))
	require.NoError(t, consumer.HandleDocumentRequested(context.Background(), payload, generationResolver(svc), rdb, zap.NewNop()))

	require.Len(t, svc.calls, 1)
	assert.True(t, svc.calls[0].UseCatalog)
	assert.True(t, mr.Exists(consumer.RequestDedupKey(tenantID, "req-1")))
}

func TestHandleDocumentRequested_FailureReleasesKey(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	tenantID := uuid.NewString()
	svc := &fakeGenerationService{err: apperror.ErrStoreTimeout}

	err := consumer.HandleDocumentRequested(context.Background(), requestPayload(t, tenantID, "req-2"), generationResolver(svc), rdb, zap.NewNop())
	assert.ErrorIs(t, err, apperror.ErrStoreTimeout)
	assert.False(t, mr.Exists(consumer.RequestDedupKey(tenantID, "req-2")))
}

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func TestConsumeDocumentRequested_CommitPolicy(t *testing.T) {
	tenantID := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 1, Value: []byte("not json")},
			{Offset: 2, Value: requestPayload(t, tenantID, "")},
		},
	}

	svc := &fakeGenerationService{}
	consumer.ConsumeDocumentRequested(ctx, reader, generationResolver(svc), nil, zap.NewNop())

	assert.Equal(t, []int64{1, 2}, reader.committed)
	assert.Len(t, svc.calls, 1)
}

func TestConsumeDocumentRequested_TransientFailureNotCommitted(t *testing.T) {
	tenantID := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel:   cancel,
		messages: []kafkago.Message{{Offset: 7, Value: requestPayload(t, tenantID, "")}},
	}

	svc := &fakeGenerationService{err: errors.New("connection reset")}
	consumer.ConsumeDocumentRequested(ctx, reader, generationResolver(svc), nil, zap.NewNop())

	assert.Empty(t, reader.committed)
}
