package repository

import (
	"context"

	"medreminder/internal/entity"
)

type ScheduleRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, schedule *entity.Schedule) error
	GetByID(ctx context.Context, id string) (*entity.Schedule, error)
	Delete(ctx context.Context, id string) error

	// Query operations
	GetAll(ctx context.Context) ([]*entity.Schedule, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.Schedule, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error

	GetAll(ctx context.Context) ([]*entity.User, error)
}
