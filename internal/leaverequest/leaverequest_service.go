package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"leavemgmt/internal/allocation"
	"leavemgmt/internal/events"
	leaverequesterrors "leavemgmt/internal/leaverequest/errors"
	"leavemgmt/internal/messaging/kafka"
	"leavemgmt/internal/shared/clock"
	"leavemgmt/internal/shared/contextutil"
	"leavemgmt/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (response.CommandResponse, error)
	GetAll(ctx context.Context) ([]LeaveRequestResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actorID, id string) (response.CommandResponse, error)
	Reject(ctx context.Context, actorID, id string) (response.CommandResponse, error)
	Cancel(ctx context.Context, actorID, id string) (response.CommandResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	allocations allocation.Repository
	validator   *Validator
	outbox      kafka.OutboxRepository
	clock       clock.Clock
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	allocations allocation.Repository,
	validator *Validator,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, allocations, validator, nil, clk, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	allocations allocation.Repository,
	validator *Validator,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		allocations: allocations,
		validator:   validator,
		outbox:      outboxRepo,
		clock:       clk,
		logger:      l,
	}
}

// Create submits a new leave request. The balance is validated but not
// reserved; days are committed only at approval, so requests that are never
// approved hold nothing. Approval re-validates the balance.
func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest) (response.CommandResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	employeeUUID, err := uuid.Parse(actorID)
	if err != nil {
		return response.CommandResponse{}, leaverequesterrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return response.CommandResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return response.CommandResponse{}, err
	}

	candidate := Candidate{
		EmployeeID:  actorID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Period:      s.clock.Now().Year(),
	}

	violations, err := s.validator.Validate(ctx, candidate)
	if err != nil {
		s.logger.Error("create leave request validation read failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	if len(violations) > 0 {
		s.logger.Warn("create leave request validation failed",
			zap.String("actor_id", actorID),
			zap.Strings("violations", violations),
		)
		return response.CommandFailed("Request failed", violations), nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		LeaveTypeID:   uuid.MustParse(req.LeaveTypeID),
		StartDate:     startDate,
		EndDate:       endDate,
		Comments:      req.Comments,
		DateRequested: s.clock.Now(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.EventLeaveRequestSubmitted, l); err != nil {
		return response.CommandResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	s.logger.Info("create leave request success",
		zap.String("leave_request_id", l.ID.String()),
		zap.String("employee_id", actorID),
	)

	return response.CommandOK("Request submitted", l.ID.String()), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

// Approve decrements the allocation and flags the request in one committed
// unit; neither change is observable without the other. The decrement is a
// conditional update at the storage layer, so a concurrent approval that
// drained the balance first turns this one into an insufficient-balance
// failure with the request left pending.
func (s *service) Approve(ctx context.Context, actorID, id string) (response.CommandResponse, error) {
	s.logger.Debug("approve leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave request begin tx failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return response.CommandResponse{}, mapRepositoryError(err)
	}
	if l.Approved != nil || l.Cancelled {
		return response.CommandResponse{}, leaverequesterrors.ErrRequestNotPending
	}

	span := l.DaySpan()
	period := s.clock.Now().Year()

	consumed, err := s.allocations.WithTx(tx).ConsumeDays(ctx, l.EmployeeID.String(), l.LeaveTypeID.String(), period, span)
	if err != nil {
		s.logger.Error("approve leave request consume days failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	if !consumed {
		s.logger.Warn("approve leave request insufficient balance",
			zap.String("leave_request_id", id),
			zap.Int("span", span),
			zap.Int("period", period),
		)
		return response.CommandFailed("Approval failed", []string{ViolationInsufficientBalance}), nil
	}

	approved := true
	now := s.clock.Now()
	l.Approved = &approved
	l.DateActioned = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave request persist failed", zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.EventLeaveRequestApproved, l); err != nil {
		return response.CommandResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave request commit failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	s.logger.Info("approve leave request success",
		zap.String("leave_request_id", id),
		zap.Int("days_consumed", span),
	)

	return response.CommandOK("Request approved", l.ID.String()), nil
}

// Reject flags the request without touching the allocation; pending requests
// never held balance.
func (s *service) Reject(ctx context.Context, actorID, id string) (response.CommandResponse, error) {
	s.logger.Debug("reject leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return response.CommandResponse{}, mapRepositoryError(err)
	}
	if l.Approved != nil || l.Cancelled {
		return response.CommandResponse{}, leaverequesterrors.ErrRequestNotPending
	}

	rejected := false
	now := s.clock.Now()
	l.Approved = &rejected
	l.DateActioned = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave request persist failed", zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.EventLeaveRequestRejected, l); err != nil {
		return response.CommandResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return response.CommandResponse{}, err
	}
	s.logger.Info("reject leave request success", zap.String("leave_request_id", id))

	return response.CommandOK("Request rejected", l.ID.String()), nil
}

// Cancel withdraws a pending or approved request. An approved request gives
// its consumed days back before being flagged; rejected and already
// cancelled requests stay terminal, their days were already released.
func (s *service) Cancel(ctx context.Context, actorID, id string) (response.CommandResponse, error) {
	s.logger.Debug("cancel leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return response.CommandResponse{}, mapRepositoryError(err)
	}
	if l.EmployeeID.String() != actorID {
		return response.CommandResponse{}, leaverequesterrors.ErrNotRequestOwner
	}
	if l.Cancelled || (l.Approved != nil && !*l.Approved) {
		return response.CommandResponse{}, leaverequesterrors.ErrCannotCancel
	}

	if l.Approved != nil && *l.Approved {
		period := s.clock.Now().Year()
		if err := s.allocations.WithTx(tx).RestoreDays(ctx, l.EmployeeID.String(), l.LeaveTypeID.String(), period, l.DaySpan()); err != nil {
			s.logger.Error("cancel leave request restore days failed", zap.Error(err))
			return response.CommandResponse{}, err
		}
	}

	l.Cancelled = true

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave request persist failed", zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.EventLeaveRequestCancelled, l); err != nil {
		return response.CommandResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return response.CommandResponse{}, err
	}
	s.logger.Info("cancel leave request success", zap.String("leave_request_id", id))

	return response.CommandOK("Request cancelled", l.ID.String()), nil
}

// Delete is an administrative override. It never restores balance; callers
// that need the days back cancel first.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveRequestEvent{
		EventType:   eventType,
		RequestID:   l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		OccurredAt:  s.clock.Now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveRequestTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func statusOf(l LeaveRequest) string {
	switch {
	case l.Cancelled:
		return "CANCELLED"
	case l.Approved == nil:
		return "PENDING"
	case *l.Approved:
		return "APPROVED"
	default:
		return "REJECTED"
	}
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveTypeID:   l.LeaveTypeID.String(),
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.DaySpan(),
		Comments:      l.Comments,
		DateRequested: l.DateRequested.Format(time.RFC3339),
		Status:        statusOf(l),
		Approved:      l.Approved,
		Cancelled:     l.Cancelled,
	}
	if l.LeaveType != nil {
		resp.LeaveTypeName = l.LeaveType.Name
	}
	if l.DateActioned != nil {
		resp.DateActioned = l.DateActioned.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
