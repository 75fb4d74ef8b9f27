package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"essay-scorer/internal/catalog"
	"essay-scorer/internal/domain"
	"essay-scorer/internal/llm"
	"essay-scorer/internal/service"
)

const testEssay = `Some people believe that technology has made classrooms better. I agree, because students can reach more sources than ever before.`

func newTestRouter(t *testing.T, backend llm.LLMClient, timeout time.Duration, opts RouterOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := catalog.Default()
	require.NoError(t, err)
	logger := zap.NewNop()
	evaluator := service.NewTraitEvaluator(backend, logger)
	evalSvc := service.NewEvaluationService(evaluator, cat, "llama3-8b-8192", 0, logger)
	return NewRouter(logger, NewEvaluationHandler(logger, evalSvc, timeout), opts)
}

func postJSON(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func evaluateBody(essay, topic string) string {
	b, _ := json.Marshal(map[string]string{"essay": essay, "topic": topic})
	return string(b)
}

type errorBody struct {
	Error        string `json:"error"`
	Field        string `json:"field"`
	FailedTraits []struct {
		Trait string `json:"trait"`
		Stage string `json:"stage"`
		Error string `json:"error"`
	} `json:"failed_traits"`
}

func TestEvaluate_ReturnsScorePerTrait(t *testing.T) {
	backend := &llm.MockClient{Response: "Solid work overall. <final>7<final>"}
	r := newTestRouter(t, backend, time.Second, RouterOptions{})

	rec := postJSON(r, "/api/evaluate", evaluateBody(testEssay, "Technology in education"), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]float64{
		"Task Response":                  7,
		"Coherence and Cohesion":         7,
		"Lexical Resource":               7,
		"Grammatical Range and Accuracy": 7,
	}, got)
	assert.Equal(t, 8, backend.Calls())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestEvaluate_AcceptsPromptAsTopic(t *testing.T) {
	backend := &llm.MockClient{Response: "<final>6<final>"}
	r := newTestRouter(t, backend, time.Second, RouterOptions{})

	rec := postJSON(r, "/api/evaluate", `{"essay":"`+testEssay+`","prompt":"Technology in education"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "blank essay", body: evaluateBody("   ", "Technology"), field: "essay"},
		{name: "missing topic", body: `{"essay":"` + testEssay + `"}`, field: "topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &llm.MockClient{Response: "<final>7<final>"}
			r := newTestRouter(t, backend, time.Second, RouterOptions{})

			rec := postJSON(r, "/api/evaluate", tt.body, nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.field, body.Field)
			assert.Zero(t, backend.Calls())
		})
	}
}

func TestEvaluate_MalformedJSON(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{}, time.Second, RouterOptions{})

	rec := postJSON(r, "/api/evaluate", `{"essay":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluate_BackendFailureIsBadGateway(t *testing.T) {
	backend := &llm.MockClient{Err: &domain.BackendError{Cause: errors.New("llm http error: status=500")}}
	r := newTestRouter(t, backend, time.Second, RouterOptions{})

	rec := postJSON(r, "/api/evaluate", evaluateBody(testEssay, "Technology"), nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.FailedTraits)
	for _, f := range body.FailedTraits {
		assert.Equal(t, "quotation", f.Stage)
		assert.Contains(t, f.Error, "status=500")
	}
}

func TestEvaluate_TimeoutIsGatewayTimeout(t *testing.T) {
	backend := &llm.MockClient{Response: "<final>7<final>", Delay: 2 * time.Second}
	r := newTestRouter(t, backend, 30*time.Millisecond, RouterOptions{})

	start := time.Now()
	rec := postJSON(r, "/api/evaluate", evaluateBody(testEssay, "Technology"), nil)

	assert.Less(t, time.Since(start), time.Second)
	require.Equal(t, http.StatusGatewayTimeout, rec.Code, rec.Body.String())
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.FailedTraits, 4)
}

func TestListTraits(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{}, time.Second, RouterOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/traits", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Version string   `json:"version"`
		Model   string   `json:"model"`
		Traits  []string `json:"traits"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ielts-v1", body.Version)
	assert.Equal(t, "llama3-8b-8192", body.Model)
	assert.Equal(t, []string{"Task Response", "Coherence and Cohesion", "Lexical Resource", "Grammatical Range and Accuracy"}, body.Traits)
}
