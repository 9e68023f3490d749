package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/workline-hq/hrms-backend-go/internal/domain/master"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/cache"
)

const (
	departmentsCacheKey = "reference:departments"
	positionsCacheKey   = "reference:positions"
)

type MasterServiceImpl struct {
	master.DepartmentRepository
	master.PositionRepository
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewMasterService(
	departmentRepository master.DepartmentRepository,
	positionRepository master.PositionRepository,
	cacheStore cache.Store,
	referenceTTL time.Duration,
	logger *slog.Logger,
) *MasterServiceImpl {
	return &MasterServiceImpl{
		DepartmentRepository: departmentRepository,
		PositionRepository:   positionRepository,
		cache:                cacheStore,
		ttl:                  referenceTTL,
		logger:               logger,
	}
}

// CreateDepartment implements master.MasterService.
func (s *MasterServiceImpl) CreateDepartment(ctx context.Context, req master.CreateDepartmentRequest) (master.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return master.DepartmentResponse{}, err
	}

	department := master.Department{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	}

	stored, err := s.DepartmentRepository.Create(ctx, department)
	if err != nil {
		return master.DepartmentResponse{}, err
	}

	s.invalidate(ctx, departmentsCacheKey)

	return toDepartmentResponse(stored), nil
}

// GetDepartment implements master.MasterService.
func (s *MasterServiceImpl) GetDepartment(ctx context.Context, id string) (master.DepartmentResponse, error) {
	department, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return master.DepartmentResponse{}, err
	}
	return toDepartmentResponse(department), nil
}

// ListDepartments implements master.MasterService.
func (s *MasterServiceImpl) ListDepartments(ctx context.Context) ([]master.DepartmentResponse, error) {
	var cached []master.DepartmentResponse
	if err := s.cache.Get(ctx, departmentsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("department cache read failed", slog.String("error", err.Error()))
	}

	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]master.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, toDepartmentResponse(d))
	}

	if err := s.cache.Set(ctx, departmentsCacheKey, responses, s.ttl); err != nil {
		s.logger.Warn("department cache write failed", slog.String("error", err.Error()))
	}

	return responses, nil
}

// UpdateDepartment implements master.MasterService.
func (s *MasterServiceImpl) UpdateDepartment(ctx context.Context, req master.UpdateDepartmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.DepartmentRepository.Update(ctx, req); err != nil {
		return err
	}

	s.invalidate(ctx, departmentsCacheKey)
	return nil
}

// DeleteDepartment implements master.MasterService.
func (s *MasterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.DepartmentRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, departmentsCacheKey)
	return nil
}

// CreatePosition implements master.MasterService.
func (s *MasterServiceImpl) CreatePosition(ctx context.Context, req master.CreatePositionRequest) (master.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return master.PositionResponse{}, err
	}

	position := master.Position{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Level:       req.Level,
		Description: req.Description,
	}

	stored, err := s.PositionRepository.Create(ctx, position)
	if err != nil {
		return master.PositionResponse{}, err
	}

	s.invalidate(ctx, positionsCacheKey)

	return toPositionResponse(stored), nil
}

// GetPosition implements master.MasterService.
func (s *MasterServiceImpl) GetPosition(ctx context.Context, id string) (master.PositionResponse, error) {
	position, err := s.PositionRepository.GetByID(ctx, id)
	if err != nil {
		return master.PositionResponse{}, err
	}
	return toPositionResponse(position), nil
}

// ListPositions implements master.MasterService.
func (s *MasterServiceImpl) ListPositions(ctx context.Context) ([]master.PositionResponse, error) {
	var cached []master.PositionResponse
	if err := s.cache.Get(ctx, positionsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("position cache read failed", slog.String("error", err.Error()))
	}

	positions, err := s.PositionRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]master.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, toPositionResponse(p))
	}

	if err := s.cache.Set(ctx, positionsCacheKey, responses, s.ttl); err != nil {
		s.logger.Warn("position cache write failed", slog.String("error", err.Error()))
	}

	return responses, nil
}

// UpdatePosition implements master.MasterService.
func (s *MasterServiceImpl) UpdatePosition(ctx context.Context, req master.UpdatePositionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.PositionRepository.Update(ctx, req); err != nil {
		return err
	}

	s.invalidate(ctx, positionsCacheKey)
	return nil
}

// DeletePosition implements master.MasterService.
func (s *MasterServiceImpl) DeletePosition(ctx context.Context, id string) error {
	if err := s.PositionRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, positionsCacheKey)
	return nil
}

func (s *MasterServiceImpl) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func toDepartmentResponse(d master.Department) master.DepartmentResponse {
	return master.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		ManagerName: d.ManagerName,
		Headcount:   d.Headcount,
	}
}

func toPositionResponse(p master.Position) master.PositionResponse {
	return master.PositionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Level:       p.Level,
		Description: p.Description,
	}
}
