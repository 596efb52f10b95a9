package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medreminder/internal/entity"
	"medreminder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduleService struct {
	created *entity.Schedule
	err     error
}

func (s *stubScheduleService) CreateSchedule(ctx context.Context, req *service.CreateScheduleRequest) (*entity.Schedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &entity.Schedule{
		ID:       "generated-id",
		UserID:   req.UserID,
		Name:     req.Name,
		Dosage:   req.Dosage,
		TimeAt:   req.TimeAt,
		TimeRaw:  req.TimeRaw,
		Interval: req.Interval,
	}
	return s.created, nil
}

func (s *stubScheduleService) GetSchedule(ctx context.Context, id string) (*entity.Schedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Schedule{ID: id}, nil
}

func (s *stubScheduleService) GetAllSchedules(ctx context.Context) ([]*entity.Schedule, error) {
	return nil, nil
}

func (s *stubScheduleService) GetUserSchedules(ctx context.Context, userID string) ([]*entity.Schedule, error) {
	return nil, nil
}

func (s *stubScheduleService) DeleteSchedule(ctx context.Context, id string) error {
	return s.err
}

type stubUserService struct{}

func (s *stubUserService) RegisterUser(ctx context.Context, req *service.RegisterUserRequest) (*entity.User, error) {
	return &entity.User{ID: "u1", Email: req.Email, Name: req.Name}, nil
}

func (s *stubUserService) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, entity.ErrUserNotFound
}

func (s *stubUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return nil
}

func setupRouter(scheduleSvc service.ScheduleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return InitRoutes(NewScheduleHandler(scheduleSvc), NewUserHandler(&stubUserService{}))
}

func TestCreateSchedule(t *testing.T) {
	svc := &stubScheduleService{}
	router := setupRouter(svc)

	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	body, err := json.Marshal(service.CreateScheduleRequest{
		UserID:   "u1",
		Name:     "Aspirin",
		Dosage:   "100",
		TimeAt:   &at,
		Interval: entity.IntervalDaily,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Aspirin", svc.created.Name)
}

func TestCreateScheduleMissingFields(t *testing.T) {
	router := setupRouter(&stubScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewReader([]byte(`{"dosage":"100"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateScheduleUserNotFound(t *testing.T) {
	router := setupRouter(&stubScheduleService{err: entity.ErrUserNotFound})

	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	body, err := json.Marshal(service.CreateScheduleRequest{
		UserID:   "missing",
		Name:     "Aspirin",
		TimeAt:   &at,
		Interval: entity.IntervalDaily,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetScheduleNotFound(t *testing.T) {
	router := setupRouter(&stubScheduleService{err: entity.ErrScheduleNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules/unknown", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	router := setupRouter(&stubScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
