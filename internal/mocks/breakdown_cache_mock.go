// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

// MockBreakdownCache mocks cache.Cache[model.OrderBreakdown].
type MockBreakdownCache struct {
	mock.Mock
}

func (m *MockBreakdownCache) Get(key string) (model.OrderBreakdown, bool) {
	args := m.Called(key)
	return args.Get(0).(model.OrderBreakdown), args.Bool(1)
}

func (m *MockBreakdownCache) Set(key string, value model.OrderBreakdown) {
	m.Called(key, value)
}

func (m *MockBreakdownCache) Invalidate(key string) {
	m.Called(key)
}

func (m *MockBreakdownCache) Clear() {
	m.Called()
}

func (m *MockBreakdownCache) Stop() {
	m.Called()
}
