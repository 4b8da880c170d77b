// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pricing-service/internal/domain/model"
)

// MockPricingCalculator mocks service.PricingCalculator.
type MockPricingCalculator struct {
	mock.Mock
}

// NewMockPricingCalculator creates a mock and registers expectation checks on cleanup.
func NewMockPricingCalculator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPricingCalculator {
	m := &MockPricingCalculator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPricingCalculator) ComputeBreakdown(input model.OrderInput) model.OrderBreakdown {
	args := m.Called(input)
	return args.Get(0).(model.OrderBreakdown)
}

func (m *MockPricingCalculator) Rates() model.Rates {
	args := m.Called()
	return args.Get(0).(model.Rates)
}

func (m *MockPricingCalculator) InvalidateCache() {
	m.Called()
}

func (m *MockPricingCalculator) Stop() {
	m.Called()
}
