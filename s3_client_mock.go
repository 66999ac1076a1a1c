package main

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockS3Uploader is a test double for S3Uploader that records all upload
// attempts and can be configured to return specific errors.
type MockS3Uploader struct {
	mu sync.Mutex

	// Uploads records all upload attempts in order
	Uploads []*RecordedUpload

	// ErrorFunc allows dynamic error injection based on the upload input.
	// If nil, uploads succeed. Return an error to simulate failures.
	ErrorFunc func(input *UploadInput) error

	// UploadCount tracks the total number of upload attempts
	UploadCount int
}

// RecordedUpload stores the details of an upload attempt for verification.
type RecordedUpload struct {
	Input   *UploadInput
	Content []byte // Body content is read and stored for verification
	Error   error  // The error returned (if any)
}

// NewMockS3Uploader creates a new mock uploader that records uploads.
func NewMockS3Uploader() *MockS3Uploader {
	return &MockS3Uploader{
		Uploads: make([]*RecordedUpload, 0),
	}
}

// Upload implements S3Uploader.Upload by recording the upload and
// optionally returning an error from ErrorFunc.
func (m *MockS3Uploader) Upload(_ context.Context, input *UploadInput) (*UploadOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UploadCount++

	// Read the body content for verification
	var content []byte
	if input.Body != nil {
		var err error
		content, err = io.ReadAll(input.Body)
		if err != nil {
			return nil, fmt.Errorf("mock: failed to read body: %w", err)
		}
	}

	recorded := &RecordedUpload{
		Input:   input,
		Content: content,
	}

	// Check if we should return an error
	var err error
	if m.ErrorFunc != nil {
		err = m.ErrorFunc(input)
		recorded.Error = err
	}

	m.Uploads = append(m.Uploads, recorded)

	if err != nil {
		return nil, err
	}

	return &UploadOutput{
		Location: fmt.Sprintf("https://%s.s3.amazonaws.com/%s", input.Bucket, input.Key),
		ETag:     strPtr("\"mock-etag\""),
	}, nil
}

// Reset clears all recorded uploads and resets the counter.
func (m *MockS3Uploader) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = make([]*RecordedUpload, 0)
	m.UploadCount = 0
}

// GetUploadByKey returns the first upload matching the given key, or nil if not found.
// Note: The returned pointer references internal test data and should not be modified by callers.
func (m *MockS3Uploader) GetUploadByKey(key string) *RecordedUpload {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Uploads {
		if u.Input.Key == key {
			return u
		}
	}
	return nil
}

// Keys returns the destination keys of all recorded uploads, in order.
func (m *MockS3Uploader) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Uploads))
	for _, u := range m.Uploads {
		keys = append(keys, u.Input.Key)
	}
	return keys
}

// --- Error injection helpers ---

// ErrorOnKey returns an ErrorFunc that fails uploads matching the given key.
func ErrorOnKey(key string, err error) func(*UploadInput) error {
	return func(input *UploadInput) error {
		if input.Key == key {
			return err
		}
		return nil
	}
}

// ErrorAlways returns an ErrorFunc that fails all uploads.
func ErrorAlways(err error) func(*UploadInput) error {
	return func(input *UploadInput) error {
		return err
	}
}
