package verifier

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/samber/lo"
)

// ParseMatching reads "<hospital> <student>" lines (1-indexed) into 0-indexed pairs in input order.
// Lines that do not hold exactly two integers are skipped. A non-nil verdict means parsing stopped at a structural violation
func ParseMatching(reader io.Reader, n int) ([]model.Pair, *Verdict, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read matching: %w", err)
	}

	output := strings.TrimSpace(string(bytes))
	if output == "" {
		if n == 0 {
			return []model.Pair{}, nil, nil
		}
		return nil, invalid("Empty output from matcher"), nil
	}

	pairs := make([]model.Pair, 0, n)
	hospitals := make(map[int]bool, n)
	students := make(map[int]bool, n)
	for _, line := range strings.Split(output, "\n") {
		pair, ok := parsePair(line)
		if !ok {
			continue
		}

		if hospitals[pair.Hospital] {
			return nil, invalid("Hospital %d matched twice", pair.Hospital+1), nil
		} else if students[pair.Student] {
			return nil, invalid("Student %d matched twice", pair.Student+1), nil
		}

		hospitals[pair.Hospital] = true
		students[pair.Student] = true
		pairs = append(pairs, pair)
	}

	return pairs, nil, nil
}

func parsePair(line string) (model.Pair, bool) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return model.Pair{}, false
	}

	values := lo.FilterMap(tokens, func(token string, _ int) (int, bool) {
		return parseIndex(token)
	})
	if len(values) != 2 {
		return model.Pair{}, false
	}
	return model.Pair{Hospital: values[0], Student: values[1]}, true
}

// parseIndex converts a 1-indexed token to 0-indexed. Integers beyond the int range saturate at its bounds
// so that they are reported as out of range instead of making the line unreadable
func parseIndex(token string) (int, bool) {
	value, err := strconv.Atoi(token)
	if errors.Is(err, strconv.ErrRange) {
		if value > 0 {
			return value - 1, true
		}
		return value, true
	} else if err != nil {
		return 0, false
	}
	return value - 1, true
}

// CheckValidity requires exactly n pairs with every index inside [0, n) and no index repeated.
// Pairs coming from ParseMatching are already free of repeats
func CheckValidity(n int, pairs []model.Pair) *Verdict {
	if len(pairs) != n {
		return invalid("Size mismatch: expected %d matches, got %d", n, len(pairs))
	}

	hospitals := make([]bool, n)
	students := make([]bool, n)
	for _, pair := range pairs {
		if pair.Hospital < 0 || pair.Hospital >= n {
			return invalid("Hospital %d out of range", pair.Hospital+1)
		} else if pair.Student < 0 || pair.Student >= n {
			return invalid("Student %d out of range", pair.Student+1)
		} else if hospitals[pair.Hospital] {
			return invalid("Hospital %d matched twice", pair.Hospital+1)
		} else if students[pair.Student] {
			return invalid("Student %d matched twice", pair.Student+1)
		}
		hospitals[pair.Hospital] = true
		students[pair.Student] = true
	}
	return nil
}

// CheckStability reports the first blocking pair found scanning hospitals in index order and, for each,
// the students it prefers over its partner in preference order. Pairs must already be valid
func CheckStability(preferences model.Preferences, pairs []model.Pair) *Verdict {
	n := preferences.N

	// Rankings are rebuilt from the raw lists, nothing computed by the matcher is trusted
	studentRankings := model.NewRankings(preferences.Students)
	hospitalRankings := model.NewRankings(preferences.Hospitals)

	hospitalMatch := model.NewMatching(n)
	for _, pair := range pairs {
		hospitalMatch[pair.Hospital] = pair.Student
	}
	studentMatch := hospitalMatch.Inverse()

	for hospital := range n {
		current := hospitalMatch[hospital]
		for _, better := range preferences.Hospitals[hospital][:hospitalRankings[hospital].Rank(current)] {
			if studentRankings[better].Prefers(hospital, studentMatch[better]) {
				return unstable(hospital, better)
			}
		}
	}
	return nil
}

// Verify checks validity and, only for a valid matching, stability. Preferences must satisfy model.Validate
func Verify(preferences model.Preferences, pairs []model.Pair) Verdict {
	if verdict := CheckValidity(preferences.N, pairs); verdict != nil {
		return *verdict
	} else if verdict := CheckStability(preferences, pairs); verdict != nil {
		return *verdict
	}
	return stable()
}

// VerifyReader parses the matcher's textual output and verifies it. The error is only set for malformed preferences or a failing reader
func VerifyReader(preferences model.Preferences, reader io.Reader) (Verdict, error) {
	if err := model.Validate(preferences); err != nil {
		return Verdict{}, fmt.Errorf("cannot verify against malformed preferences: %w", err)
	}

	pairs, verdict, err := ParseMatching(reader, preferences.N)
	if err != nil {
		return Verdict{}, err
	} else if verdict != nil {
		return *verdict, nil
	}
	return Verify(preferences, pairs), nil
}
