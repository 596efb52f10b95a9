package service

import (
	"context"
	"fmt"
	"time"

	repository "medreminder/internal/database/postgres"
	"medreminder/internal/entity"

	"github.com/google/uuid"
)

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	userRepo     repository.UserRepository
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, userRepo repository.UserRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*entity.Schedule, error) {
	if !req.Interval.Valid() {
		return nil, entity.ErrInvalidInterval
	}
	// One of the two time representations must be present. Whether it
	// actually resolves is the evaluator's concern: an unparsable time_raw
	// makes the schedule inert, not invalid.
	if req.TimeAt == nil && req.TimeRaw == "" {
		return nil, entity.ErrMissingTime
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	now := time.Now()
	schedule := &entity.Schedule{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		TimeAt:    req.TimeAt,
		TimeRaw:   req.TimeRaw,
		Interval:  req.Interval,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, id string) (*entity.Schedule, error) {
	return s.scheduleRepo.GetByID(ctx, id)
}

func (s *scheduleService) GetAllSchedules(ctx context.Context) ([]*entity.Schedule, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules from repository: %w", err)
	}
	return schedules, nil
}

func (s *scheduleService) GetUserSchedules(ctx context.Context, userID string) ([]*entity.Schedule, error) {
	return s.scheduleRepo.GetByUserID(ctx, userID)
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, id string) error {
	return s.scheduleRepo.Delete(ctx, id)
}
