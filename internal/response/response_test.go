package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/history"
	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]interface{}
		wantFields []string
	}{
		{
			name: "正常系: 基本的な成功レスポンス",
			data: map[string]interface{}{
				"status": "placed",
				"click":  3,
			},
			wantFields: []string{"error", "status", "click"},
		},
		{
			name:       "正常系: 空のデータ",
			data:       map[string]interface{}{},
			wantFields: []string{"error"},
		},
		{
			name: "正常系: ネストしたデータ",
			data: map[string]interface{}{
				"canvas": map[string]interface{}{
					"width":  300,
					"height": 300,
				},
			},
			wantFields: []string{"error", "canvas"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(http.MethodGet, "/", nil)

			err := Success(tc.Context, tt.data)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, tc.Recorder.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(tc.Recorder.Body.Bytes(), &resp))

			assert.Equal(t, false, resp["error"])
			for _, field := range tt.wantFields {
				assert.Contains(t, resp, field)
			}
		})
	}
}

func TestResponse_SuccessWithStatus(t *testing.T) {
	tc := testutil.NewTestContext(http.MethodPost, "/", nil)

	err := SuccessWithStatus(tc.Context, http.StatusCreated, map[string]interface{}{"session_id": "abc"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, tc.Recorder.Code)
	assert.Equal(t, "abc", tc.GetResponseBody()["session_id"])
}

func TestResponse_ErrorWithCode(t *testing.T) {
	tc := testutil.NewTestContext(http.MethodPost, "/", nil)

	err := ErrorWithCode(tc.Context, http.StatusBadRequest, CodeInvalidShapeKind, "不明な図形です")

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, tc.Recorder.Code)

	resp := tc.GetResponseBody()
	assert.Equal(t, true, resp["error"])
	assert.Equal(t, CodeInvalidShapeKind, resp["code"])
	assert.Equal(t, "不明な図形です", resp["message"])
}

func TestEntryPayload(t *testing.T) {
	e := history.Entry{
		Shape:  model.Circle{X: 150, Y: 150, SizeMultiplier: 1, Color: "#abcdef"},
		Bounds: geometry.Rect{X: 125, Y: 125, Width: 50, Height: 50},
	}

	tc := testutil.NewTestContext(http.MethodGet, "/", nil)
	require.NoError(t, Success(tc.Context, map[string]interface{}{
		"shapes": EntriesPayload([]history.Entry{e}),
	}))

	resp := tc.GetResponseBody()
	shapes, ok := resp["shapes"].([]interface{})
	require.True(t, ok)
	require.Len(t, shapes, 1)

	first := shapes[0].(map[string]interface{})
	shape := first["shape"].(map[string]interface{})
	bounds := first["bounds"].(map[string]interface{})

	assert.Equal(t, "circle", shape["kind"])
	assert.Equal(t, float64(1), shape["size_multiplier"])
	assert.Equal(t, "#abcdef", shape["color"])
	assert.Equal(t, float64(125), bounds["x"])
	assert.Equal(t, float64(50), bounds["width"])
}
