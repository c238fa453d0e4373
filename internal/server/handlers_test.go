package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/limaJavier/stablematching/internal/metrics"
	"github.com/limaJavier/stablematching/pkg/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, Dependencies{
		Logger:          logr.Discard(),
		Recorder:        metrics.NewRecorder(),
		DefaultStrategy: matcher.Queue,
		MaxRequestBytes: 1 << 20,
	})
	return router
}

func post(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMatchHandler(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
		expectedCode   ErrorCode
		expected       [][2]int
	}{
		{
			name:           "first choices",
			requestBody:    gin.H{"hospitals": [][]int{{1, 2}, {2, 1}}, "students": [][]int{{1, 2}, {2, 1}}},
			expectedStatus: http.StatusOK,
			expected:       [][2]int{{1, 1}, {2, 2}},
		},
		{
			name:           "stack strategy",
			requestBody:    gin.H{"hospitals": [][]int{{1, 2}, {1, 2}}, "students": [][]int{{2, 1}, {1, 2}}, "strategy": "stack"},
			expectedStatus: http.StatusOK,
			expected:       [][2]int{{1, 2}, {2, 1}},
		},
		{
			name:           "empty instance",
			requestBody:    gin.H{"hospitals": [][]int{}, "students": [][]int{}},
			expectedStatus: http.StatusOK,
			expected:       [][2]int{},
		},
		{
			name:           "not a permutation",
			requestBody:    gin.H{"hospitals": [][]int{{1, 1}, {2, 1}}, "students": [][]int{{1, 2}, {2, 1}}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidInput,
		},
		{
			name:           "fractional preference",
			requestBody:    gin.H{"hospitals": [][]float64{{1.9, 2.2}, {2, 1}}, "students": [][]int{{1, 2}, {2, 1}}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidInput,
		},
		{
			name:           "explicit size disagrees with the lists",
			requestBody:    gin.H{"n": 0, "hospitals": [][]int{{1}}, "students": [][]int{{1}}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidInput,
		},
		{
			name:           "unknown strategy",
			requestBody:    gin.H{"hospitals": [][]int{{1}}, "students": [][]int{{1}}, "strategy": "random"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidStrategy,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, "/match", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			if tt.expectedStatus != http.StatusOK {
				var apiError APIError
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiError))
				assert.Equal(t, tt.expectedCode, apiError.Code)
				assert.Equal(t, w.Header().Get(RequestIDHeader), apiError.RequestID)
				return
			}

			var response MatchResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expected, response.Matching)
		})
	}
}

func TestVerifyHandler(t *testing.T) {
	router := setupTestRouter()
	hospitals := [][]int{{2, 1}, {1, 2}}
	students := [][]int{{1, 2}, {1, 2}}

	tests := []struct {
		name     string
		matching string
		expected VerifyResponse
	}{
		{"stable", "1 2\n2 1\n", VerifyResponse{Verdict: "VALID STABLE", Kind: "stable"}},
		{"unstable", "1 1\n2 2\n", VerifyResponse{Verdict: "UNSTABLE (Blocking pair: Hospital 1, Student 2)", Kind: "unstable"}},
		{"duplicate", "1 2\n1 3\n", VerifyResponse{Verdict: "INVALID (Hospital 1 matched twice)", Kind: "invalid"}},
		{"empty", "", VerifyResponse{Verdict: "INVALID (Empty output from matcher)", Kind: "invalid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, "/verify", gin.H{"hospitals": hospitals, "students": students, "matching": tt.matching})

			require.Equal(t, http.StatusOK, w.Code)
			var response VerifyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expected, response)
		})
	}

	t.Run("malformed preferences", func(t *testing.T) {
		w := post(t, router, "/verify", gin.H{"hospitals": [][]int{{1, 3}, {1, 2}}, "students": students, "matching": "1 1\n2 2\n"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var apiError APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiError))
		assert.Equal(t, ErrorCodeInvalidPreferences, apiError.Code)
	})
}

func TestRequestIDIsReused(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "trial-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trial-7", w.Header().Get(RequestIDHeader))
}

func TestMetricsHandler(t *testing.T) {
	router := setupTestRouter()
	post(t, router, "/match", gin.H{"hospitals": [][]int{{1}}, "students": [][]int{{1}}})

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `stablematch_matches_total{outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "stablematch_proposals_total 1")
}

func TestRequestSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, Dependencies{Logger: logr.Discard(), Recorder: metrics.NewRecorder(), MaxRequestBytes: 16})

	w := post(t, router, "/match", gin.H{"hospitals": [][]int{{1, 2}, {2, 1}}, "students": [][]int{{1, 2}, {2, 1}}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", NewRouter(Dependencies{Logger: logr.Discard(), Recorder: metrics.NewRecorder()}))
	}()

	cancel()
	assert.NoError(t, <-done)
}
