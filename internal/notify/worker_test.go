package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/splitsum/splitsum_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) EnqueueEvents(ctx context.Context, events []domain.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *mockOutboxRepo) ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, eventID string, attempts int, dead bool) error {
	args := m.Called(ctx, eventID, attempts, dead)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

var _ Publisher = (*mockPublisher)(nil)

type DispatcherTestSuite struct {
	suite.Suite
	repo       *mockOutboxRepo
	publisher  *mockPublisher
	dispatcher *Dispatcher
	ctx        context.Context
}

func (s *DispatcherTestSuite) SetupTest() {
	s.repo = new(mockOutboxRepo)
	s.publisher = new(mockPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.dispatcher = NewDispatcher(s.repo, s.publisher, logger, DispatcherOptions{MaxAttempts: 3})
	s.ctx = context.Background()
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func pendingEvent(id, topic string, attempts int) domain.OutboxEvent {
	return domain.OutboxEvent{
		EventID:  id,
		Topic:    topic,
		Payload:  []byte(`{"listID":"list-1"}`),
		Status:   domain.OutboxPending,
		Attempts: attempts,
	}
}

func (s *DispatcherTestSuite) TestDrainOnce_PublishesAndMarks() {
	events := []domain.OutboxEvent{
		pendingEvent("ev-1", "alice:list-1", 0),
		pendingEvent("ev-2", "bob:list-1", 0),
	}
	s.repo.On("ListPendingEvents", s.ctx, 100).Return(events, nil)
	s.publisher.On("Publish", s.ctx, "alice:list-1", events[0].Payload).Return(nil)
	s.publisher.On("Publish", s.ctx, "bob:list-1", events[1].Payload).Return(nil)
	s.repo.On("MarkPublished", s.ctx, "ev-1").Return(nil)
	s.repo.On("MarkPublished", s.ctx, "ev-2").Return(nil)

	s.dispatcher.drainOnce(s.ctx)

	s.repo.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
}

func (s *DispatcherTestSuite) TestDrainOnce_FailureIncrementsAttempts() {
	events := []domain.OutboxEvent{pendingEvent("ev-1", "alice:list-1", 0)}
	s.repo.On("ListPendingEvents", s.ctx, 100).Return(events, nil)
	s.publisher.On("Publish", s.ctx, "alice:list-1", mock.Anything).
		Return(errors.New("broker unreachable"))
	s.repo.On("MarkFailed", s.ctx, "ev-1", 1, false).Return(nil)

	s.dispatcher.drainOnce(s.ctx)

	s.repo.AssertExpectations(s.T())
	s.repo.AssertNotCalled(s.T(), "MarkPublished", mock.Anything, mock.Anything)
}

func (s *DispatcherTestSuite) TestDrainOnce_ParksEventDeadAtMaxAttempts() {
	events := []domain.OutboxEvent{pendingEvent("ev-1", "alice:list-1", 2)}
	s.repo.On("ListPendingEvents", s.ctx, 100).Return(events, nil)
	s.publisher.On("Publish", s.ctx, "alice:list-1", mock.Anything).
		Return(errors.New("broker unreachable"))
	s.repo.On("MarkFailed", s.ctx, "ev-1", 3, true).Return(nil)

	s.dispatcher.drainOnce(s.ctx)

	s.repo.AssertExpectations(s.T())
}

func (s *DispatcherTestSuite) TestDrainOnce_OneFailureDoesNotBlockBatch() {
	events := []domain.OutboxEvent{
		pendingEvent("ev-1", "alice:list-1", 0),
		pendingEvent("ev-2", "bob:list-1", 0),
	}
	s.repo.On("ListPendingEvents", s.ctx, 100).Return(events, nil)
	s.publisher.On("Publish", s.ctx, "alice:list-1", mock.Anything).
		Return(errors.New("broker unreachable"))
	s.publisher.On("Publish", s.ctx, "bob:list-1", mock.Anything).Return(nil)
	s.repo.On("MarkFailed", s.ctx, "ev-1", 1, false).Return(nil)
	s.repo.On("MarkPublished", s.ctx, "ev-2").Return(nil)

	s.dispatcher.drainOnce(s.ctx)

	s.repo.AssertExpectations(s.T())
}
