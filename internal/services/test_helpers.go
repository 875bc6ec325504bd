package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/matanparker/optimize-poc-v2/internal/dataprocessing"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// MockDataSource is a mock for the DataSource interface
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) Load(ctx context.Context) (*dataprocessing.Table, *dataprocessing.Table) {
	args := m.Called(ctx)
	return args.Get(0).(*dataprocessing.Table), args.Get(1).(*dataprocessing.Table)
}

// MockRecorder implements every recorder interface of this package
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordWindowFallback(ctx context.Context, source string, days int) {
	m.Called(ctx, source, days)
}

func (m *MockRecorder) RecordRecommendations(ctx context.Context, count int) {
	m.Called(ctx, count)
}

func (m *MockRecorder) RecordExport(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockRecorder) RecordLogin(ctx context.Context, success bool) {
	m.Called(ctx, success)
}

func (m *MockRecorder) RecordAssistantQuery(ctx context.Context, source string) {
	m.Called(ctx, source)
}

// MockUserDirectory is a mock for the UserDirectory interface
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindUser(username, password string) (domain.User, bool) {
	args := m.Called(username, password)
	return args.Get(0).(domain.User), args.Bool(1)
}

// MockDataChecker is a mock for the DataChecker interface
type MockDataChecker struct {
	mock.Mock
}

func (m *MockDataChecker) Check() error {
	args := m.Called()
	return args.Error(0)
}
