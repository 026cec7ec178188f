package llm

import (
	"context"
	"sync"
	"time"
)

// MockClient is a Client for tests. It returns canned responses, tracks
// every request it receives, and can be told to fail.
type MockClient struct {
	mu sync.Mutex

	fixed     string
	responses []string
	next      int
	err       error
	vision    bool

	// Calls holds every request received, in order.
	Calls []CompletionRequest
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock that always returns response.
func NewMockClient(response string) *MockClient {
	return &MockClient{fixed: response, vision: true}
}

// WithResponses makes the mock return the given responses in sequence,
// cycling back to the first after the last.
func (m *MockClient) WithResponses(responses ...string) *MockClient {
	m.responses = responses
	return m
}

// WithError makes every Complete call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	m.err = err
	return m
}

// WithoutVision marks the mock as text-only.
func (m *MockClient) WithoutVision() *MockClient {
	m.vision = false
	return m
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.err != nil {
		return nil, m.err
	}

	content := m.fixed
	if len(m.responses) > 0 {
		content = m.responses[m.next%len(m.responses)]
		m.next++
	}

	return &CompletionResponse{
		Content:      content,
		Model:        "mock",
		FinishReason: "stop",
		Duration:     time.Millisecond,
	}, nil
}

// SupportsVision implements Client.
func (m *MockClient) SupportsVision() bool {
	return m.vision
}

// CallCount returns how many Complete calls the mock has received.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or nil before any call.
func (m *MockClient) LastCall() *CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}
