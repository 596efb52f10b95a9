package service

import (
	"context"
	"time"

	"medreminder/internal/entity"
)

type ScheduleService interface {
	// Основные операции
	CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*entity.Schedule, error)
	GetSchedule(ctx context.Context, id string) (*entity.Schedule, error)
	GetAllSchedules(ctx context.Context) ([]*entity.Schedule, error)
	GetUserSchedules(ctx context.Context, userID string) ([]*entity.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

type UserService interface {
	RegisterUser(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}

// ReminderService runs one matching tick: fetch every schedule, evaluate the
// due set against "now" in the configured zone, and dispatch each due
// occurrence through the claim gate to the push gateway.
type ReminderService interface {
	ProcessTick(ctx context.Context) error
}

// Sender hands a composed notification to the push gateway.
type Sender interface {
	Send(ctx context.Context, token, title, body string) error
}

// CreateScheduleRequest представляет данные для создания напоминания
type CreateScheduleRequest struct {
	UserID   string          `json:"user_id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Dosage   string          `json:"dosage"`
	TimeAt   *time.Time      `json:"time_at"`
	TimeRaw  string          `json:"time_raw"`
	Interval entity.Interval `json:"interval" binding:"required"`
}

// RegisterUserRequest представляет данные для регистрации пользователя
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	FCMToken string `json:"fcm_token"`
}
