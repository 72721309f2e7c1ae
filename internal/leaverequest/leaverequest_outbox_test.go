package leaverequest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"leavemgmt/internal/allocation"
	"leavemgmt/internal/events"
	"leavemgmt/internal/leaverequest"
	"leavemgmt/internal/messaging/kafka"
	"leavemgmt/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestLeaveRequestService_OutboxEvents(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	setup := func(t *testing.T) (leaverequest.Service, sqlmock.Sqlmock, *sql.DB, *fakeLeaveRequestRepository, *fakeAllocationRepository, *fakeOutboxRepository) {
		t.Helper()
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)

		repo := &fakeLeaveRequestRepository{}
		allocs := &fakeAllocationRepository{}
		outbox := &fakeOutboxRepository{}
		validator := leaverequest.NewValidator(&fakeTypeReader{}, allocs)
		svc := leaverequest.NewServiceWithOutbox(db, repo, allocs, validator, outbox, clock.Fixed(fixedNow))
		return svc, sqlMock, db, repo, allocs, outbox
	}

	t.Run("submit records event in the same transaction", func(t *testing.T) {
		svc, sqlMock, db, _, allocs, outbox := setup(t)
		defer db.Close()

		expectTx(t, sqlMock, true)
		allocs.findForEmployeeFn = func(ctx context.Context, eid, ltid string, period int) (*allocation.LeaveAllocation, error) {
			return &allocation.LeaveAllocation{NumberOfDays: 10}, nil
		}

		resp, err := svc.Create(ctx, employeeID.String(), leaverequest.CreateLeaveRequestRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-04",
		})

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Len(t, outbox.created, 1)

		evt := outbox.created[0]
		assert.Equal(t, events.EventLeaveRequestSubmitted, evt.EventType)
		assert.Equal(t, events.LeaveRequestTopic, evt.Topic)
		assert.Equal(t, "leave_request", evt.AggregateType)
		assert.Equal(t, resp.ID, evt.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, evt.Status)

		var payload events.LeaveRequestEvent
		assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
		assert.Equal(t, employeeID.String(), payload.EmployeeID)
		assert.Equal(t, "2026-03-02", payload.StartDate)
		assert.Equal(t, "2026-03-04", payload.EndDate)
	})

	t.Run("approve records event", func(t *testing.T) {
		svc, sqlMock, db, repo, _, outbox := setup(t)
		defer db.Close()

		expectTx(t, sqlMock, true)
		req := pendingRequest(employeeID, leaveTypeID, 3)
		repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return req, nil
		}

		resp, err := svc.Approve(ctx, uuid.New().String(), req.ID.String())

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Len(t, outbox.created, 1)
		assert.Equal(t, events.EventLeaveRequestApproved, outbox.created[0].EventType)
	})

	t.Run("cancel records event", func(t *testing.T) {
		svc, sqlMock, db, repo, _, outbox := setup(t)
		defer db.Close()

		expectTx(t, sqlMock, true)
		req := pendingRequest(employeeID, leaveTypeID, 3)
		repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return req, nil
		}

		resp, err := svc.Cancel(ctx, employeeID.String(), req.ID.String())

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Len(t, outbox.created, 1)
		assert.Equal(t, events.EventLeaveRequestCancelled, outbox.created[0].EventType)
	})
}
