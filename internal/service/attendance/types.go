package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/cache"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

const (
	leaveTypesCacheKey    = "reference:leave_types"
	overtimeTypesCacheKey = "reference:overtime_types"
)

type TypeServiceImpl struct {
	attendance.LeaveTypeRepository
	attendance.OvertimeTypeRepository
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewTypeService(
	leaveTypeRepository attendance.LeaveTypeRepository,
	overtimeTypeRepository attendance.OvertimeTypeRepository,
	cacheStore cache.Store,
	referenceTTL time.Duration,
	logger *slog.Logger,
) *TypeServiceImpl {
	return &TypeServiceImpl{
		LeaveTypeRepository:    leaveTypeRepository,
		OvertimeTypeRepository: overtimeTypeRepository,
		cache:                  cacheStore,
		ttl:                    referenceTTL,
		logger:                 logger,
	}
}

// CreateLeaveType implements attendance.TypeService.
func (s *TypeServiceImpl) CreateLeaveType(ctx context.Context, req attendance.CreateLeaveTypeRequest) (attendance.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LeaveTypeResponse{}, err
	}

	quota := decimal.Zero
	if req.AnnualQuota != "" {
		quota, _ = validator.IsValidAmount(req.AnnualQuota)
	}

	lt := attendance.LeaveType{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsPaid:      req.IsPaid,
		AnnualQuota: quota,
	}

	stored, err := s.LeaveTypeRepository.Create(ctx, lt)
	if err != nil {
		return attendance.LeaveTypeResponse{}, err
	}

	s.invalidate(ctx, leaveTypesCacheKey)

	return toLeaveTypeResponse(stored), nil
}

// ListLeaveTypes implements attendance.TypeService.
func (s *TypeServiceImpl) ListLeaveTypes(ctx context.Context) ([]attendance.LeaveTypeResponse, error) {
	var cached []attendance.LeaveTypeResponse
	if err := s.cache.Get(ctx, leaveTypesCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("leave type cache read failed", slog.String("error", err.Error()))
	}

	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]attendance.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, toLeaveTypeResponse(lt))
	}

	if err := s.cache.Set(ctx, leaveTypesCacheKey, responses, s.ttl); err != nil {
		s.logger.Warn("leave type cache write failed", slog.String("error", err.Error()))
	}

	return responses, nil
}

// UpdateLeaveType implements attendance.TypeService.
func (s *TypeServiceImpl) UpdateLeaveType(ctx context.Context, req attendance.UpdateLeaveTypeRequest) error {
	if validator.IsEmpty(req.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if req.AnnualQuota != nil {
		if _, ok := validator.IsValidAmount(*req.AnnualQuota); !ok {
			return validator.ValidationErrors{{Field: "annual_quota", Message: "annual_quota must be a non-negative number"}}
		}
	}

	if err := s.LeaveTypeRepository.Update(ctx, req); err != nil {
		return err
	}

	s.invalidate(ctx, leaveTypesCacheKey)
	return nil
}

// DeleteLeaveType implements attendance.TypeService.
func (s *TypeServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	if err := s.LeaveTypeRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, leaveTypesCacheKey)
	return nil
}

// CreateOvertimeType implements attendance.TypeService.
func (s *TypeServiceImpl) CreateOvertimeType(ctx context.Context, req attendance.CreateOvertimeTypeRequest) (attendance.OvertimeTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OvertimeTypeResponse{}, err
	}

	multiplier := decimal.NewFromInt(1)
	if req.Multiplier != "" {
		multiplier, _ = validator.IsValidAmount(req.Multiplier)
	}

	ot := attendance.OvertimeType{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Multiplier:  multiplier,
	}

	stored, err := s.OvertimeTypeRepository.Create(ctx, ot)
	if err != nil {
		return attendance.OvertimeTypeResponse{}, err
	}

	s.invalidate(ctx, overtimeTypesCacheKey)

	return toOvertimeTypeResponse(stored), nil
}

// ListOvertimeTypes implements attendance.TypeService.
func (s *TypeServiceImpl) ListOvertimeTypes(ctx context.Context) ([]attendance.OvertimeTypeResponse, error) {
	var cached []attendance.OvertimeTypeResponse
	if err := s.cache.Get(ctx, overtimeTypesCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("overtime type cache read failed", slog.String("error", err.Error()))
	}

	types, err := s.OvertimeTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime types: %w", err)
	}

	responses := make([]attendance.OvertimeTypeResponse, 0, len(types))
	for _, ot := range types {
		responses = append(responses, toOvertimeTypeResponse(ot))
	}

	if err := s.cache.Set(ctx, overtimeTypesCacheKey, responses, s.ttl); err != nil {
		s.logger.Warn("overtime type cache write failed", slog.String("error", err.Error()))
	}

	return responses, nil
}

// UpdateOvertimeType implements attendance.TypeService.
func (s *TypeServiceImpl) UpdateOvertimeType(ctx context.Context, req attendance.UpdateOvertimeTypeRequest) error {
	if validator.IsEmpty(req.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if req.Multiplier != nil {
		if m, ok := validator.IsValidAmount(*req.Multiplier); !ok || m.IsZero() {
			return validator.ValidationErrors{{Field: "multiplier", Message: "multiplier must be a positive number"}}
		}
	}

	if err := s.OvertimeTypeRepository.Update(ctx, req); err != nil {
		return err
	}

	s.invalidate(ctx, overtimeTypesCacheKey)
	return nil
}

// DeleteOvertimeType implements attendance.TypeService.
func (s *TypeServiceImpl) DeleteOvertimeType(ctx context.Context, id string) error {
	if err := s.OvertimeTypeRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, overtimeTypesCacheKey)
	return nil
}

func (s *TypeServiceImpl) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func toLeaveTypeResponse(lt attendance.LeaveType) attendance.LeaveTypeResponse {
	return attendance.LeaveTypeResponse{
		ID:          lt.ID,
		Name:        lt.Name,
		Description: lt.Description,
		IsPaid:      lt.IsPaid,
		AnnualQuota: lt.AnnualQuota.StringFixed(1),
	}
}

func toOvertimeTypeResponse(ot attendance.OvertimeType) attendance.OvertimeTypeResponse {
	return attendance.OvertimeTypeResponse{
		ID:          ot.ID,
		Name:        ot.Name,
		Description: ot.Description,
		Multiplier:  ot.Multiplier.String(),
	}
}
