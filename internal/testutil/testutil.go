// Package testutil provides common test utilities, mocks, and helpers for testing.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Error code constants for testing
const (
	ErrCodeInvalidSession   = "INVALID_SESSION"
	ErrCodeInvalidShapeKind = "INVALID_SHAPE_KIND"
	ErrCodeBadRequest       = "BAD_REQUEST"
)

// MockWebSocketConn is a mock implementation of WebSocket connection for testing.
type MockWebSocketConn struct {
	mu          sync.Mutex
	Messages    [][]byte
	LastMessage []byte
	IsClosed    bool
	ReadChan    chan []byte
	CloseChan   chan struct{}
	WriteErr    error
	CloseErr    error
}

// NewMockWebSocketConn creates a new MockWebSocketConn.
func NewMockWebSocketConn() *MockWebSocketConn {
	return &MockWebSocketConn{
		Messages:  make([][]byte, 0),
		ReadChan:  make(chan []byte, 100),
		CloseChan: make(chan struct{}),
	}
}

// WriteMessage mocks writing a message to WebSocket.
func (m *MockWebSocketConn) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}

	m.Messages = append(m.Messages, data)
	m.LastMessage = data
	return nil
}

// WriteJSON mocks writing JSON to WebSocket.
func (m *MockWebSocketConn) WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return m.WriteMessage(1, data)
}

// ReadMessage mocks reading a message from WebSocket.
func (m *MockWebSocketConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-m.ReadChan:
		return 1, msg, nil
	case <-m.CloseChan:
		return 0, nil, io.EOF
	}
}

// Close mocks closing the WebSocket connection.
func (m *MockWebSocketConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsClosed {
		return nil
	}

	m.IsClosed = true
	close(m.CloseChan)

	return m.CloseErr
}

// Closed reports whether Close was called.
func (m *MockWebSocketConn) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IsClosed
}

// GetMessages returns all messages sent through this connection.
func (m *MockWebSocketConn) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Messages
}

// GetMessagesAsMaps returns every message decoded as a map.
func (m *MockWebSocketConn) GetMessagesAsMaps() []map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]map[string]interface{}, 0, len(m.Messages))
	for _, msg := range m.Messages {
		var decoded map[string]interface{}
		_ = json.Unmarshal(msg, &decoded)
		result = append(result, decoded)
	}
	return result
}

// GetLastMessageAsMap returns the last message as a map.
func (m *MockWebSocketConn) GetLastMessageAsMap() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LastMessage == nil {
		return nil
	}

	var result map[string]interface{}
	_ = json.Unmarshal(m.LastMessage, &result)
	return result
}

// SequenceSampler replays fixed values in order, wrapping around at the end.
// It satisfies placement.Sampler.
type SequenceSampler struct {
	mu          sync.Mutex
	Floats      []float64
	Ints        []int
	floatPos    int
	intPos      int
	FloatCalls  int
	ChooseCalls int
}

// NewSequenceSampler creates a SequenceSampler.
func NewSequenceSampler(floats []float64, ints []int) *SequenceSampler {
	return &SequenceSampler{
		Floats: floats,
		Ints:   ints,
	}
}

// NewConstantSampler returns a sampler that always yields f and multiplier i.
func NewConstantSampler(f float64, i int) *SequenceSampler {
	return NewSequenceSampler([]float64{f}, []int{i})
}

// Float64 returns the next float in the sequence.
func (s *SequenceSampler) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.FloatCalls++
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.floatPos%len(s.Floats)]
	s.floatPos++
	return v
}

// Choose returns the next int in the sequence, or the first element of set
// when no ints were configured.
func (s *SequenceSampler) Choose(set []int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ChooseCalls++
	if len(s.Ints) == 0 {
		return set[0]
	}
	v := s.Ints[s.intPos%len(s.Ints)]
	s.intPos++
	return v
}

// Calls returns the total number of draws.
func (s *SequenceSampler) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.FloatCalls + s.ChooseCalls
}

// TestContext wraps Echo context for testing.
type TestContext struct {
	Echo     *echo.Echo
	Context  echo.Context
	Request  *http.Request
	Recorder *httptest.ResponseRecorder
}

// NewTestContext creates a new test context for Echo handlers.
func NewTestContext(method, path string, body io.Reader) *TestContext {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return &TestContext{
		Echo:     e,
		Context:  c,
		Request:  req,
		Recorder: rec,
	}
}

// NewTestContextWithJSON creates a test context with JSON body.
func NewTestContextWithJSON(method, path string, body interface{}) *TestContext {
	jsonBody, _ := json.Marshal(body)
	tc := NewTestContext(method, path, bytes.NewReader(jsonBody))
	tc.Request.Header.Set("Content-Type", "application/json")
	return tc
}

// SetCookie adds a cookie to the test request.
func (tc *TestContext) SetCookie(name, value string) {
	tc.Request.AddCookie(&http.Cookie{Name: name, Value: value})
}

// GetResponseBody returns the response body as a map.
func (tc *TestContext) GetResponseBody() map[string]interface{} {
	var result map[string]interface{}
	_ = json.Unmarshal(tc.Recorder.Body.Bytes(), &result)
	return result
}

// GetResponseCode returns the HTTP response status code.
func (tc *TestContext) GetResponseCode() int {
	return tc.Recorder.Code
}

// GetResponseCookie returns the named cookie set on the response, or nil.
func (tc *TestContext) GetResponseCookie(name string) *http.Cookie {
	for _, c := range tc.Recorder.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// WaitFor waits for a condition to be true within timeout.
func WaitFor(timeout, interval time.Duration, condition func() bool) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return nil
		}
		time.Sleep(interval)
	}
	return &TimeoutError{Timeout: timeout}
}

// TimeoutError is returned when WaitFor times out.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout waiting for condition"
}
