package mocks

import (
	"context"

	"order-reconciler/core/warehouse"

	"github.com/stretchr/testify/mock"
)

// Executor is a mock implementation of warehouse.Executor
type Executor struct {
	mock.Mock
}

func (m *Executor) Query(ctx context.Context, sql string, params []warehouse.Param) ([]warehouse.Row, error) {
	args := m.Called(ctx, sql, params)
	if rows, ok := args.Get(0).([]warehouse.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Executor) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
