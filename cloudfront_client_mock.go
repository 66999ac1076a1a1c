package main

import (
	"context"
	"sync"
)

// MockCFInvalidator is a test double for CFInvalidator that records
// invalidation requests and can be configured to fail.
type MockCFInvalidator struct {
	mu sync.Mutex

	// Requests records all invalidation attempts in order
	Requests []*RecordedInvalidation

	// Err, when set, is returned by every CreateInvalidation call.
	Err error

	// ID is the invalidation id returned on success.
	ID string
}

// RecordedInvalidation stores the details of an invalidation attempt.
type RecordedInvalidation struct {
	DistributionID string
	Paths          []string
	CallerRef      string
}

// NewMockCFInvalidator creates a new mock invalidator.
func NewMockCFInvalidator() *MockCFInvalidator {
	return &MockCFInvalidator{ID: "IMOCKINVALIDATION"}
}

// CreateInvalidation implements CFInvalidator.CreateInvalidation by recording
// the request.
func (m *MockCFInvalidator) CreateInvalidation(_ context.Context, distributionID string, paths []string, callerRef string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, &RecordedInvalidation{
		DistributionID: distributionID,
		Paths:          append([]string{}, paths...),
		CallerRef:      callerRef,
	})

	if m.Err != nil {
		return "", m.Err
	}
	return m.ID, nil
}

// Count returns the number of recorded invalidation attempts.
func (m *MockCFInvalidator) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
