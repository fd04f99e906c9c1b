package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"comparsaGora/internal/models"
	"comparsaGora/internal/service"
)

type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) GetAll(ctx context.Context, collection string) ([]models.Record, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Record), args.Error(1)
}

func (m *MockStoreService) Add(ctx context.Context, collection string, data models.Record) (models.Record, error) {
	args := m.Called(ctx, collection, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Record), args.Error(1)
}

func (m *MockStoreService) Update(ctx context.Context, collection, id string, data models.Record) error {
	args := m.Called(ctx, collection, id, data)
	return args.Error(0)
}

func (m *MockStoreService) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockStoreService) ClearLocal() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStoreService) Usage() (int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreService) Subscribe(collection string, fn func(collection string)) {
	m.Called(collection, fn)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Optimize(img string, maxWidth, maxHeight int, quality float64) string {
	args := m.Called(img, maxWidth, maxHeight, quality)
	return args.String(0)
}

func (m *MockImageService) Upload(ctx context.Context, img string) string {
	args := m.Called(ctx, img)
	return args.String(0)
}

func (m *MockImageService) Process(ctx context.Context, img string, preset service.ImagePreset) string {
	args := m.Called(ctx, img, preset)
	return args.String(0)
}

func (m *MockImageService) Cleanup(ctx context.Context, img string) {
	m.Called(ctx, img)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}
