package matcher

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/samber/lo"
)

type Matcher interface {
	// Returns the hospital-optimal stable matching for the given preferences, or an error wrapping model.ErrInvalidInput when they are malformed
	Match(preferences model.Preferences) (model.Matching, Statistics, error)
}

// Statistics describes a single run of the proposal loop
type Statistics struct {
	Proposals     int `json:"proposals"`
	Rejections    int `json:"rejections"`
	Displacements int `json:"displacements"`
}

// Strategy selects the container holding free hospitals. It changes the proposal trace but never the resulting matching
type Strategy int

const (
	Queue Strategy = iota
	Stack
)

var strategies = map[string]Strategy{
	"queue": Queue,
	"stack": Stack,
}

func ParseStrategy(name string) (Strategy, error) {
	strategy, ok := strategies[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%v is not a valid strategy: allowed values are %v", name, StrategyNames())
	}
	return strategy, nil
}

func StrategyNames() []string {
	return []string{"queue", "stack"}
}

func (strategy Strategy) String() string {
	name, _ := lo.FindKey(strategies, strategy)
	return name
}

type Option func(*galeShapleyMatcher)

// WithLogger attaches a logger receiving one V(1) line per run
func WithLogger(logger logr.Logger) Option {
	return func(matcher *galeShapleyMatcher) {
		matcher.logger = logger
	}
}

func NewGaleShapleyMatcher(strategy Strategy, options ...Option) Matcher {
	matcher := &galeShapleyMatcher{
		strategy: strategy,
		logger:   logr.Discard(),
	}
	for _, option := range options {
		option(matcher)
	}
	return matcher
}
