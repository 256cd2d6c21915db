package engine

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock for the real-time runner
type TimeProvider interface {
	Now() time.Time
}

// monotonicTimeProvider reads the system clock
type monotonicTimeProvider struct{}

func (monotonicTimeProvider) Now() time.Time { return time.Now() }

// NewMonotonicTimeProvider returns the system clock provider
func NewMonotonicTimeProvider() TimeProvider {
	return monotonicTimeProvider{}
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
