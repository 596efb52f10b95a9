package service

import (
	"context"
	"fmt"
	"time"

	repository "medreminder/internal/database/postgres"
	"medreminder/internal/entity"

	"github.com/google/uuid"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrUserAlreadyExists
	}

	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Name:      req.Name,
		FCMToken:  req.FCMToken,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.userRepo.UpdateFCMToken(ctx, userID, token)
}
