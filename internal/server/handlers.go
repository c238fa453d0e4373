package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/limaJavier/stablematching/internal/metrics"
	"github.com/limaJavier/stablematching/pkg/matcher"
	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/limaJavier/stablematching/pkg/verifier"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
)

// Dependencies holds everything the handlers need
type Dependencies struct {
	Logger          logr.Logger
	Recorder        *metrics.Recorder
	DefaultStrategy matcher.Strategy
	MaxRequestBytes int64
}

// API holds dependencies for API handlers
type API struct {
	deps Dependencies
}

type MatchResponse struct {
	Matching   [][2]int           `json:"matching"` // 1-indexed [hospital, student] pairs in hospital order
	Statistics matcher.Statistics `json:"statistics"`
}

type VerifyResponse struct {
	Verdict string `json:"verdict"`
	Kind    string `json:"kind"`
}

// SetupRoutes defines all the API routes
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	api := &API{deps: deps}

	router.Use(RequestIDMiddleware(), LoggingMiddleware(deps.Logger))
	if deps.MaxRequestBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(deps.MaxRequestBytes))
	}

	router.GET("/health", api.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Recorder.Registry(), promhttp.HandlerOpts{})))
	router.POST("/match", api.MatchHandler)
	router.POST("/verify", api.VerifyHandler)
}

func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MatchHandler runs the matcher.
// Request Body: {"hospitals": [[...]], "students": [[...]], "strategy": "queue"} with 1-indexed lists
func (api *API) MatchHandler(c *gin.Context) {
	body, preferences, ok := api.bindPreferences(c, ErrorCodeInvalidInput)
	if !ok {
		return
	}

	strategy := api.deps.DefaultStrategy
	if name, ok := body["strategy"].(string); ok && name != "" {
		parsed, err := matcher.ParseStrategy(name)
		if err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidStrategy, err.Error())
			return
		}
		strategy = parsed
	}

	matching, statistics, err := matcher.NewGaleShapleyMatcher(strategy, matcher.WithLogger(api.deps.Logger)).Match(preferences)
	if errors.Is(err, model.ErrInvalidInput) {
		api.deps.Recorder.RecordInvalidInput()
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidInput, err.Error())
		return
	} else if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
		return
	}
	api.deps.Recorder.RecordMatch(preferences.N, statistics)

	c.JSON(http.StatusOK, MatchResponse{
		Matching: lo.Map(matching.Pairs(), func(pair model.Pair, _ int) [2]int {
			return [2]int{pair.Hospital + 1, pair.Student + 1}
		}),
		Statistics: statistics,
	})
}

// VerifyHandler certifies a candidate matching given as the matcher's textual output.
// Request Body: {"hospitals": [[...]], "students": [[...]], "matching": "1 1\n2 2\n"}
func (api *API) VerifyHandler(c *gin.Context) {
	body, preferences, ok := api.bindPreferences(c, ErrorCodeInvalidPreferences)
	if !ok {
		return
	}

	output, _ := body["matching"].(string)
	verdict, err := verifier.VerifyReader(preferences, strings.NewReader(output))
	if errors.Is(err, model.ErrInvalidInput) {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidPreferences, err.Error())
		return
	} else if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
		return
	}
	api.deps.Recorder.RecordVerdict(preferences.N, verdict)

	c.JSON(http.StatusOK, VerifyResponse{
		Verdict: verdict.String(),
		Kind:    verdict.Kind.String(),
	})
}

func (api *API) bindPreferences(c *gin.Context, code ErrorCode) (map[string]any, model.Preferences, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, fmt.Sprintf("invalid request body: %v", err))
		return nil, model.Preferences{}, false
	}

	preferences, err := model.DecodePreferences(body)
	if err != nil {
		SendError(c, http.StatusBadRequest, code, err.Error())
		return nil, model.Preferences{}, false
	}
	return body, preferences, true
}
