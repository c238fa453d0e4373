// Package oracle enumerates matchings exhaustively. Tests compare the matcher and the verifier against it on small instances.
package oracle

import (
	"slices"

	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/samber/lo"
)

// ConstrainedMatchings enumerates every perfect matching of size n that holds all the constraints.
// Hospitals are assigned in index order and constraints are evaluated on each partial matching, hence a constraint must hold whenever an entry it relies on is still model.Unmatched.
// The enumeration is exponential and meant for small instances.
//
// Example:
//
//	matchings := oracle.ConstrainedMatchings(3, func(matching model.Matching) bool {
//		// Verify "matching[0] == model.Unmatched", since the predicate "matching[0] != 2" relies in this index
//		return matching[0] == model.Unmatched || matching[0] != 2
//	})
func ConstrainedMatchings(n int, constraints ...func(matching model.Matching) bool) []model.Matching {
	matchings := make([]model.Matching, 0)
	constrainedMatchings(constraints, 0, model.NewMatching(n), make([]bool, n), &matchings)
	return matchings
}

func constrainedMatchings(
	constraints []func(matching model.Matching) bool,
	hospital int,
	matching model.Matching,
	taken []bool,
	matchings *[]model.Matching) {

	if hospital >= len(matching) {
		*matchings = append(*matchings, slices.Clone(matching))
		return
	}

	for student := range len(matching) {
		if taken[student] {
			continue
		}

		matching[hospital] = student
		if !lo.EveryBy(constraints, func(constraint func(model.Matching) bool) bool { return constraint(matching) }) {
			continue
		}

		taken[student] = true
		constrainedMatchings(constraints, hospital+1, matching, taken, matchings)
		taken[student] = false
	}

	matching[hospital] = model.Unmatched
}

// StableMatchings enumerates every stable matching of the preferences, pruning partial matchings that already contain a blocking pair
func StableMatchings(preferences model.Preferences) []model.Matching {
	hospitalRankings := model.NewRankings(preferences.Hospitals)
	studentRankings := model.NewRankings(preferences.Students)

	noBlockingPair := func(matching model.Matching) bool {
		inverse := matching.Inverse()
		for hospital, partner := range matching {
			if partner == model.Unmatched {
				continue
			}
			for student := range preferences.N {
				if inverse[student] == model.Unmatched {
					continue
				}
				if hospitalRankings[hospital].Prefers(student, partner) &&
					studentRankings[student].Prefers(hospital, inverse[student]) {
					return false
				}
			}
		}
		return true
	}

	return ConstrainedMatchings(preferences.N, noBlockingPair)
}
