package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/internal/config"
	"godilemma/internal/container"
	"godilemma/internal/logging"
)

const utilitarianBody = `{
  "id": "utilitarian-scenario",
  "title": "Utilitarian scenario",
  "frameworks": ["utilitarian"],
  "parameters": {
    "population_served_option_a": 100,
    "benefit_per_person_option_a": 2,
    "population_served_option_b": {"value": 50},
    "benefit_per_person_option_b": 5
  },
  "possible_actions": [
    {"id": "approve_option_a", "description": "A"},
    {"id": "approve_option_b", "description": "B"}
  ]
}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, err := container.New(config.Default())
	require.NoError(t, err)
	return NewRouter(NewDilemmaHandler(c.EvaluationService, logging.Discard()), logging.Discard())
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEvaluateReturnsResult(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodPost, "/v1/evaluate", utilitarianBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Final struct {
			Action     string  `json:"action"`
			Confidence float64 `json:"confidence"`
		} `json:"final_recommendation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "approve_option_b", body.Final.Action)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestEvaluateAsText(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodPost, "/v1/evaluate?format=text", utilitarianBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Recommendation:")
}

func TestEvaluateRejectsCriticalIssues(t *testing.T) {
	body := strings.Replace(utilitarianBody, `["utilitarian"]`, `["utilitarian", "astrology"]`, 1)
	rec := do(newTestRouter(t), http.MethodPost, "/v1/evaluate", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Code   string `json:"code"`
		Issues []struct {
			Field    string `json:"field"`
			Critical bool   `json:"critical"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_FAILURE", resp.Code)
	require.NotEmpty(t, resp.Issues)
	assert.Equal(t, "frameworks[1]", resp.Issues[0].Field)
}

func TestEvaluateRejectsNonFiniteParameters(t *testing.T) {
	body := strings.Replace(utilitarianBody, `"benefit_per_person_option_a": 2`, `"benefit_per_person_option_a": 1e400`, 1)
	rec := do(newTestRouter(t), http.MethodPost, "/v1/evaluate", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var resp struct {
		Code   string `json:"code"`
		Issues []struct {
			Field    string `json:"field"`
			Critical bool   `json:"critical"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_FAILURE", resp.Code)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "parameters.benefit_per_person_option_a", resp.Issues[0].Field)
	assert.True(t, resp.Issues[0].Critical)
}

func TestBadRequests(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/v1/evaluate", `{"id": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/v1/evaluate?format=pdf", utilitarianBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate(t *testing.T) {
	body := strings.Replace(utilitarianBody, `"title": "Utilitarian scenario"`, `"title": ""`, 1)
	rec := do(newTestRouter(t), http.MethodPost, "/v1/validate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			Field string `json:"field"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "title", resp.Issues[0].Field)
}

func TestTemplates(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/v1/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clinic-funding")

	rec = do(router, http.MethodGet, "/v1/templates/whistleblower", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"whistleblower"`)

	rec = do(router, http.MethodGet, "/v1/templates/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
