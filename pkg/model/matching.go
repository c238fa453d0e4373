package model

import (
	"fmt"
	"io"
	"strings"
)

// Unmatched marks a hospital (or student) without a partner
const Unmatched = -1

// Ranking is the inverse of a preference list: ranking[index] is the rank given to the opposite-side index
type Ranking []int

func NewRanking(list []int) Ranking {
	ranking := make(Ranking, len(list))
	for rank, index := range list {
		ranking[index] = rank
	}
	return ranking
}

// Rank returns the position of index in the original preference list, 0 being the most preferred
func (ranking Ranking) Rank(index int) int {
	return ranking[index]
}

// Prefers reports whether a is strictly preferred over b
func (ranking Ranking) Prefers(a, b int) bool {
	return ranking[a] < ranking[b]
}

// NewRankings builds a ranking per preference list
func NewRankings(lists [][]int) []Ranking {
	rankings := make([]Ranking, len(lists))
	for i, list := range lists {
		rankings[i] = NewRanking(list)
	}
	return rankings
}

type Pair struct {
	Hospital int
	Student  int
}

// Matching maps hospital index to student index, Unmatched for a free hospital
type Matching []int

func NewMatching(n int) Matching {
	matching := make(Matching, n)
	for i := range matching {
		matching[i] = Unmatched
	}
	return matching
}

// Pairs lists the matched pairs in hospital-index order
func (matching Matching) Pairs() []Pair {
	pairs := make([]Pair, 0, len(matching))
	for hospital, student := range matching {
		if student != Unmatched {
			pairs = append(pairs, Pair{Hospital: hospital, Student: student})
		}
	}
	return pairs
}

// Inverse maps student index to hospital index
func (matching Matching) Inverse() []int {
	inverse := NewMatching(len(matching))
	for hospital, student := range matching {
		if student != Unmatched {
			inverse[student] = hospital
		}
	}
	return inverse
}

// WriteMatching writes one "<hospital> <student>" line per matched hospital, 1-indexed and in hospital order
func WriteMatching(writer io.Writer, matching Matching) error {
	var builder strings.Builder
	for _, pair := range matching.Pairs() {
		fmt.Fprintf(&builder, "%d %d\n", pair.Hospital+1, pair.Student+1)
	}
	_, err := io.WriteString(writer, builder.String())
	return err
}
