package kafka_test

import (
	"context"
	"testing"

	"leavemgmt/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "leave_request",
		AggregateID:   uuid.NewString(),
		EventType:     "leave_request.submitted",
		Topic:         "hr.leave.request.v1",
		Payload:       []byte(`{"event_type":"leave_request.submitted"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(validEvent()))
	})

	t.Run("missing id", func(t *testing.T) {
		e := validEvent()
		e.ID = ""
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("missing topic", func(t *testing.T) {
		e := validEvent()
		e.Topic = ""
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("empty payload", func(t *testing.T) {
		e := validEvent()
		e.Payload = nil
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("bogus status", func(t *testing.T) {
		e := validEvent()
		e.Status = "shipped"
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		event := validEvent()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		repo := kafka.NewOutboxRepository(db)
		assert.NoError(t, repo.WithTx(tx).Create(ctx, event))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid event never reaches the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := validEvent()
		event.Topic = ""

		repo := kafka.NewOutboxRepository(db)
		assert.Error(t, repo.Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
