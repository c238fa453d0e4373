package matcher

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/limaJavier/stablematching/pkg/model"
)

type galeShapleyMatcher struct {
	strategy Strategy
	logger   logr.Logger
}

func (matcher *galeShapleyMatcher) Match(preferences model.Preferences) (model.Matching, Statistics, error) {
	if err := model.Validate(preferences); err != nil {
		return nil, Statistics{}, fmt.Errorf("cannot match: %w", err)
	}

	matching, statistics := galeShapley(preferences, newWorklist(matcher.strategy, preferences.N))

	matcher.logger.V(1).Info("matching computed",
		"n", preferences.N,
		"strategy", matcher.strategy.String(),
		"proposals", statistics.Proposals,
		"rejections", statistics.Rejections,
		"displacements", statistics.Displacements,
	)
	return matching, statistics, nil
}

// galeShapley runs hospital-proposing deferred acceptance over validated preferences
func galeShapley(preferences model.Preferences, free worklist) (model.Matching, Statistics) {
	n := preferences.N
	var statistics Statistics

	studentRankings := model.NewRankings(preferences.Students) // O(1) comparisons between two hospitals proposing to the same student

	hospitalMatch := model.NewMatching(n)
	studentMatch := model.NewMatching(n)
	nextProposal := make([]int, n) // Number of proposals each hospital has made so far

	for hospital := range n {
		free.Push(hospital)
	}

	for free.Len() > 0 {
		hospital := free.Pop()

		// A hospital that has proposed to every student stays unmatched; unreachable with equal-sized sides and complete lists
		if nextProposal[hospital] >= n {
			continue
		}

		student := preferences.Hospitals[hospital][nextProposal[hospital]]
		nextProposal[hospital]++
		statistics.Proposals++

		current := studentMatch[student]
		switch {
		case current == model.Unmatched:
			studentMatch[student] = hospital
			hospitalMatch[hospital] = student
		case studentRankings[student].Prefers(hospital, current):
			studentMatch[student] = hospital
			hospitalMatch[hospital] = student
			hospitalMatch[current] = model.Unmatched
			free.Push(current) // Resumes from its own cursor, never proposing twice to the same student
			statistics.Displacements++
		default:
			free.Push(hospital)
			statistics.Rejections++
		}
	}

	return hospitalMatch, statistics
}
