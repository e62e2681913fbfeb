package websocket

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/kyiku/shapefill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	tests := []struct {
		name          string
		allowedOrigin string
		origin        string
		want          bool
	}{
		{name: "正常系: Originヘッダなし", allowedOrigin: "https://example.com", origin: "", want: true},
		{name: "正常系: 許可されたOrigin", allowedOrigin: "https://example.com", origin: "https://example.com", want: true},
		{name: "正常系: localhost", allowedOrigin: "https://example.com", origin: "http://localhost:5173", want: true},
		{name: "正常系: 設定なし", allowedOrigin: "", origin: "https://evil.example", want: true},
		{name: "異常系: 許可されていないOrigin", allowedOrigin: "https://example.com", origin: "https://evil.example", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUpgrader(tt.allowedOrigin)
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			assert.Equal(t, tt.want, u.CheckOrigin(req))
		})
	}
}

func TestReadLoop(t *testing.T) {
	mockConn := testutil.NewMockWebSocketConn()
	var received []string

	mockConn.ReadChan <- []byte(`{"type": "ping"}`)
	mockConn.ReadChan <- []byte(`{"type": "hello"}`)

	done := make(chan error, 1)
	go func() {
		done <- ReadLoop(mockConn, func(msg []byte) {
			received = append(received, string(msg))
		})
	}()

	require.NoError(t, testutil.WaitFor(time.Second, 5*time.Millisecond, func() bool {
		return len(mockConn.GetMessages()) == 1 && len(mockConn.ReadChan) == 0
	}))
	_ = mockConn.Close()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, io.EOF))
	case <-time.After(time.Second):
		t.Fatal("read loop did not stop")
	}

	assert.Equal(t, "pong", mockConn.GetLastMessageAsMap()["type"])
	assert.Equal(t, []string{`{"type": "hello"}`}, received)
}

func TestSafeConn_RoundTrip(t *testing.T) {
	upgrader := NewUpgrader("")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewSafeConn(raw)
		defer conn.Close()
		_ = ReadLoop(conn, nil)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.WriteJSON(map[string]interface{}{"type": "ping"}))

	var pong map[string]interface{}
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, client.ReadJSON(&pong))
	assert.Equal(t, "pong", pong["type"])
}

func TestIsUnexpectedClose(t *testing.T) {
	assert.False(t, IsUnexpectedClose(&gorilla.CloseError{Code: gorilla.CloseNormalClosure}))
	assert.True(t, IsUnexpectedClose(&gorilla.CloseError{Code: gorilla.CloseAbnormalClosure}))
}
