package logger

import (
	"github.com/stretchr/testify/mock"
)

// MockLogger is a testify mock of Logger for asserting what components log.
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Type() LoggerType {
	return LoggerTypeMock
}

func (m *MockLogger) Log(level Level, msg string, fields map[string]any) {
	m.Called(level, msg, fields)
}

func (m *MockLogger) Printf(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Println(message string) {
	m.Called(message)
}

func (m *MockLogger) Close() error {
	args := m.Called()
	return args.Error(0)
}
