package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasedu/interest-engine/internal/catalog"
	"github.com/trilhasedu/interest-engine/internal/database"
	"github.com/trilhasedu/interest-engine/internal/engine"
	"github.com/trilhasedu/interest-engine/internal/monitoring"
)

func newTestRouter(t *testing.T, repo *database.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng := engine.New(engine.DefaultConfig(), nil, nil)
	logger := monitoring.NewLogger()
	metrics := monitoring.NewMetrics()
	h := NewHandler(eng, catalog.Default(), repo, logger, metrics)

	cfg := DefaultRouterConfig()
	cfg.RateRPS = 1000
	cfg.RateBurst = 1000
	return NewRouter(h, cfg, logger, metrics)
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.10.10.10:5000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["text_enabled"])
	assert.NotEmpty(t, body["uptime"])
}

func TestQuestions(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/mapping/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Questions      []catalog.Question `json:"questions"`
		TotalQuestions int                `json:"total_questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.TotalQuestions)
	require.Len(t, body.Questions, 5)
	assert.Equal(t, 1, body.Questions[0].ID)
}

func TestSubmitQuestionnaireOnly(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/mapping/submit", SubmitRequest{
		Responses: []catalog.Response{
			{QuestionID: 1, SelectedOptions: []string{"1"}},
			{QuestionID: 4, SelectedOptions: []string{"1"}},
			{QuestionID: 5, SelectedOptions: []string{"4"}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result engine.MappingResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, catalog.AreaTechnology, result.RecommendedArea)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Empty(t, result.TextScores)
	assert.NotEmpty(t, result.Top3)
}

func TestSubmitRejectsMissingResponses(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/mapping/submit", map[string]any{
		"text_response": "gosto de programar",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body["category"])
}

func TestSubmitRejectsUnknownOption(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/mapping/submit", SubmitRequest{
		Responses: []catalog.Response{
			{QuestionID: 1, SelectedOptions: []string{"99"}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRejectsOversizedText(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/mapping/submit", SubmitRequest{
		Responses: []catalog.Response{
			{QuestionID: 1, SelectedOptions: []string{"1"}},
		},
		TextResponse: string(bytes.Repeat([]byte("a"), 5001)),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "5000")
}

func TestHistoryWithoutRepository(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/mapping/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Mappings []any `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Mappings)
}

func TestSubmitPersistsAndHistoryReturns(t *testing.T) {
	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	router := newTestRouter(t, database.NewRepository(db))

	w := doJSON(router, http.MethodPost, "/api/v1/mapping/submit", SubmitRequest{
		Responses: []catalog.Response{
			{QuestionID: 5, SelectedOptions: []string{"2"}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/mapping/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Mappings []struct {
			ID     string               `json:"id"`
			Result engine.MappingResult `json:"result"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Mappings, 1)
	assert.NotEmpty(t, body.Mappings[0].ID)
	assert.Equal(t, catalog.AreaExactSciences, body.Mappings[0].Result.RecommendedArea)
}

func TestStats(t *testing.T) {
	router := newTestRouter(t, nil)

	doJSON(router, http.MethodGet, "/health", nil)
	w := doJSON(router, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, body["request_count"].(float64), 1.0)
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
