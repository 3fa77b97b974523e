package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/occlusion-dev/occlusion/internal/model"
	"github.com/occlusion-dev/occlusion/internal/query"
	"github.com/occlusion-dev/occlusion/internal/snapshot"
	"github.com/occlusion-dev/occlusion/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	entries := []store.Entry{
		{UUID: uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), Level: 8},
		{UUID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), Level: 20},
	}
	s, err := store.Build(store.KindHashMap, entries)
	require.NoError(t, err)

	holder := snapshot.New()
	holder.Publish(query.New(s, model.Stats{TotalEntries: s.Len()}, 0))

	return NewRouter(holder)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["uuid_count"])
}

func TestHandleCheck_Visible(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/check", map[string]any{
		"object":          "550e8400-e29b-41d4-a716-446655440000",
		"visibility_mask": 10,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["visible"])
}

func TestHandleCheck_UnknownRendersFalse(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/check", map[string]any{
		"object":          "00000000-0000-0000-0000-000000000000",
		"visibility_mask": 255,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["visible"])
}

func TestHandleCheck_MalformedUUIDIs400(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/check", map[string]any{
		"object":          "not-a-uuid",
		"visibility_mask": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCheckBatch_MalformedElementDegradesToUnknown(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/check/batch", map[string]any{
		"objects":         []string{"550e8400-e29b-41d4-a716-446655440000", "not-a-uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		"visibility_mask": 10,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Results []struct {
			Object  string `json:"object"`
			Visible bool   `json:"visible"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 3)
	assert.True(t, body.Results[0].Visible)
	assert.False(t, body.Results[1].Visible)
	assert.False(t, body.Results[2].Visible)
}

func TestHandleStats(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats model.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, uint64(2), stats.TotalEntries)
}

func TestHandleOPAVisible(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/v1/data/occlusion/visible", map[string]any{
		"input": map[string]any{
			"object":          "550e8400-e29b-41d4-a716-446655440000",
			"visibility_mask": 10,
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["result"])
}

func TestHandleOPAVisibleBatch_ReturnsFlatList(t *testing.T) {
	router := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/v1/data/occlusion/visible_batch", map[string]any{
		"input": map[string]any{
			"objects":         []string{"550e8400-e29b-41d4-a716-446655440000", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
			"visibility_mask": 10,
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Result []bool `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []bool{true, false}, body.Result)
}

func TestHandleStats_NoSnapshotPublishedIs503(t *testing.T) {
	holder := snapshot.New()
	router := NewRouter(holder)

	w := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
