package leavetype

import (
	"context"
	"database/sql"
	"time"

	"leavemgmt/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (response.CommandResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (response.CommandResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (response.CommandResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("name", req.Name),
		zap.Int("default_days", req.DefaultDays),
	)

	if ok, violations := ValidateCreate(req); !ok {
		s.logger.Warn("create leave type validation failed", zap.Strings("violations", violations))
		return response.CommandFailed("Creation failed", violations), nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave type begin tx failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt := &LeaveType{
		ID:          uuid.New(),
		Name:        req.Name,
		DefaultDays: req.DefaultDays,
	}

	if err := qtx.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave type commit failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)

	return response.CommandOK("Creation successful", lt.ID.String()), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (response.CommandResponse, error) {
	s.logger.Debug("update leave type requested", zap.String("leave_type_id", id))

	if ok, violations := ValidateUpdate(req); !ok {
		s.logger.Warn("update leave type validation failed", zap.Strings("violations", violations))
		return response.CommandFailed("Update failed", violations), nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave type begin tx failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	// Changing DefaultDays never rewrites balances already allocated for a
	// period; it only seeds future allocations.
	lt.Name = req.Name
	lt.DefaultDays = req.DefaultDays

	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave type commit failed", zap.String("leave_type_id", id), zap.Error(err))
		return response.CommandResponse{}, err
	}
	s.logger.Info("update leave type success", zap.String("leave_type_id", id))

	return response.CommandOK("Update successful", lt.ID.String()), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Deleting a missing id is a hard not-found failure, never a no-op.
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave type failed", zap.String("leave_type_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Name:        lt.Name,
		DefaultDays: lt.DefaultDays,
		CreatedAt:   lt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   lt.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
