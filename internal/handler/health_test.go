package handler

import (
	"net/http"
	"testing"

	"github.com/kyiku/shapefill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name         string
		sessions     int
		withStore    bool
		wantSessions interface{}
	}{
		{
			name:         "正常系: セッション数を含む",
			sessions:     2,
			withStore:    true,
			wantSessions: float64(2),
		},
		{
			name:         "正常系: セッションなし",
			withStore:    true,
			wantSessions: float64(0),
		},
		{
			name:      "正常系: ストア未設定ならセッション数を省略",
			withStore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h *HealthHandler
			if tt.withStore {
				store := newCenteredStore()
				for i := 0; i < tt.sessions; i++ {
					store.Create()
				}
				h = NewHealthHandler(store)
			} else {
				h = NewHealthHandler(nil)
			}

			tc := testutil.NewTestContext(http.MethodGet, "/health", nil)
			require.NoError(t, h.Check(tc.Context))

			assert.Equal(t, http.StatusOK, tc.GetResponseCode())
			resp := tc.GetResponseBody()
			assert.Equal(t, "ok", resp["status"])
			if tt.withStore {
				assert.Equal(t, tt.wantSessions, resp["sessions"])
			} else {
				assert.NotContains(t, resp, "sessions")
			}
		})
	}
}

func TestHealthHandler_SessionStatus(t *testing.T) {
	store := newCenteredStore()
	_, id := store.Create()
	store.Create()
	h := NewHealthHandler(store)

	tc := testutil.NewTestContext(http.MethodGet, "/api/sessions/status", nil)
	require.NoError(t, h.SessionStatus(tc.Context))
	assert.Equal(t, float64(2), tc.GetResponseBody()["sessions"])

	store.Delete(id)
	tc = testutil.NewTestContext(http.MethodGet, "/api/sessions/status", nil)
	require.NoError(t, h.SessionStatus(tc.Context))
	assert.Equal(t, float64(1), tc.GetResponseBody()["sessions"])
}
