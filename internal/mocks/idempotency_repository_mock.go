// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pricing-service/internal/repository"
)

// MockIdempotencyRepository mocks repository.IdempotencyRepositoryInterface.
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) Get(ctx context.Context, key string) (*repository.IdempotencyRecord, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*repository.IdempotencyRecord), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyRepository) Set(ctx context.Context, key string, record *repository.IdempotencyRecord, ttl time.Duration) error {
	args := m.Called(ctx, key, record, ttl)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
