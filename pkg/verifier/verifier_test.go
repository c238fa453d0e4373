package verifier

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/limaJavier/stablematching/internal/oracle"
	"github.com/limaJavier/stablematching/pkg/generator"
	"github.com/limaJavier/stablematching/pkg/matcher"
	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hospital 1 prefers student 2, hospital 2 prefers student 1 and both students prefer hospital 1
var crossed = model.Preferences{
	N:         2,
	Hospitals: [][]int{{1, 0}, {0, 1}},
	Students:  [][]int{{0, 1}, {0, 1}},
}

func verifyText(t *testing.T, preferences model.Preferences, output string) string {
	verdict, err := VerifyReader(preferences, strings.NewReader(output))
	require.NoError(t, err)
	return verdict.String()
}

func TestVerifyReader(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{"stable", "1 2\n2 1\n", "VALID STABLE"},
		{"unstable", "1 1\n2 2", "UNSTABLE (Blocking pair: Hospital 1, Student 2)"},
		{"duplicate hospital", "1 2\n1 3\n", "INVALID (Hospital 1 matched twice)"},
		{"duplicate student", "1 2\n2 2\n", "INVALID (Student 2 matched twice)"},
		{"duplicate hospital is reported before duplicate student", "1 1\n1 1\n", "INVALID (Hospital 1 matched twice)"},
		{"first duplicate wins", "2 1\n1 2\n1 1\n2 2\n", "INVALID (Hospital 1 matched twice)"},
		{"duplicate out of range hospital", "7 1\n7 2\n", "INVALID (Hospital 7 matched twice)"},
		{"too few pairs", "1 1\n", "INVALID (Size mismatch: expected 2 matches, got 1)"},
		{"too many pairs", "1 1\n2 2\n3 3\n", "INVALID (Size mismatch: expected 2 matches, got 3)"},
		{"hospital out of range", "3 1\n2 2\n", "INVALID (Hospital 3 out of range)"},
		{"student out of range", "1 0\n2 2\n", "INVALID (Student 0 out of range)"},
		{"hospital checked before student", "1 1\n0 9\n", "INVALID (Hospital 0 out of range)"},
		{"student beyond the int range", "1 99999999999999999999\n2 1\n", "INVALID (Student 9223372036854775807 out of range)"},
		{"hospital beyond the int range", "-99999999999999999999 1\n2 2\n", "INVALID (Hospital -9223372036854775807 out of range)"},
		{"empty output", "", "INVALID (Empty output from matcher)"},
		{"blank output", " \n\n\t", "INVALID (Empty output from matcher)"},
		{"malformed lines are skipped", "hello\n1 2 3\n2 x\n1 2\n\n2 1\n#", "VALID STABLE"},
		{"only malformed lines", "a b\n1\n", "INVALID (Size mismatch: expected 2 matches, got 0)"},
		{"windows line endings", "1 2\r\n2 1\r\n", "VALID STABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, verifyText(t, crossed, tt.output))
		})
	}
}

func TestVerifyBoundaries(t *testing.T) {
	t.Run("Single agent", func(t *testing.T) {
		single := model.Preferences{N: 1, Hospitals: [][]int{{0}}, Students: [][]int{{0}}}

		assert.Equal(t, "VALID STABLE", verifyText(t, single, "1 1\n"))
	})

	t.Run("Empty instance", func(t *testing.T) {
		assert.Equal(t, "VALID STABLE", verifyText(t, model.Preferences{}, ""))
		assert.Equal(t, "INVALID (Size mismatch: expected 0 matches, got 1)", verifyText(t, model.Preferences{}, "1 1"))
	})
}

func TestVerifyRejectsRepeatedPairs(t *testing.T) {
	verdict := Verify(crossed, []model.Pair{{Hospital: 0, Student: 1}, {Hospital: 1, Student: 1}})

	assert.Equal(t, Invalid, verdict.Kind)
	assert.Equal(t, "INVALID (Student 2 matched twice)", verdict.String())
}

func TestVerifyReportsFirstBlockingPair(t *testing.T) {
	// Every hospital and every student ranks by index, so the identity reversed is blocked many times over
	preferences := model.Preferences{
		N:         3,
		Hospitals: [][]int{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}},
		Students:  [][]int{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}},
	}

	verdict := Verify(preferences, []model.Pair{{Hospital: 0, Student: 2}, {Hospital: 1, Student: 1}, {Hospital: 2, Student: 0}})

	assert.Equal(t, Unstable, verdict.Kind)
	assert.Equal(t, model.Pair{Hospital: 0, Student: 0}, verdict.BlockingPair)
	assert.Equal(t, "UNSTABLE (Blocking pair: Hospital 1, Student 1)", verdict.String())
}

func TestVerifyRejectsMalformedPreferences(t *testing.T) {
	preferences := model.Preferences{N: 2, Hospitals: [][]int{{0, 0}, {0, 1}}, Students: [][]int{{0, 1}, {0, 1}}}

	_, err := VerifyReader(preferences, strings.NewReader("1 1\n2 2\n"))

	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestVerifyReaderPropagatesReadErrors(t *testing.T) {
	_, err := VerifyReader(crossed, failingReader{})

	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestMatcherOutputIsAlwaysAccepted(t *testing.T) {
	g := gomega.NewWithT(t)

	for _, trial := range generator.Trials(generator.Sizes(256), 5) {
		preferences := generator.Generate(trial.N, trial.Seed)
		for _, strategy := range []matcher.Strategy{matcher.Queue, matcher.Stack} {
			matching, _, err := matcher.NewGaleShapleyMatcher(strategy).Match(preferences)
			g.Expect(err).NotTo(gomega.HaveOccurred())

			var output bytes.Buffer
			g.Expect(model.WriteMatching(&output, matching)).To(gomega.Succeed())

			verdict, err := VerifyReader(preferences, &output)
			g.Expect(err).NotTo(gomega.HaveOccurred())
			g.Expect(verdict.String()).To(gomega.Equal("VALID STABLE"))
		}
	}
}

func TestValidVerdictsArePerfectMatchings(t *testing.T) {
	preferences := generator.Generate(4, 99)

	for _, candidate := range [][]model.Pair{
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
		{{3, 1}, {0, 2}, {2, 0}, {1, 3}},
	} {
		verdict := Verify(preferences, candidate)
		require.NotEqual(t, Invalid, verdict.Kind)

		// Whatever the stability outcome, a matching that passed validity is a bijection
		values := lo.Map(lo.Range(preferences.N), func(i int, _ int) any { return i })
		graph, err := bipartitegraph.NewBipartiteGraph(values, values, func(hospital, student any) (bool, error) {
			return lo.Contains(candidate, model.Pair{Hospital: hospital.(int), Student: student.(int)}), nil
		})
		require.NoError(t, err)
		assert.Len(t, graph.LargestMatching(), preferences.N)
	}
}

func TestCheckStabilityAgreesWithExhaustiveSearch(t *testing.T) {
	for seed := range uint64(30) {
		preferences := generator.Generate(4, seed)
		stableMatchings := oracle.StableMatchings(preferences)

		for _, candidate := range oracle.ConstrainedMatchings(4) {
			stable := lo.ContainsBy(stableMatchings, func(matching model.Matching) bool {
				return slices.Equal(matching, candidate)
			})

			assert.Equal(t, stable, CheckStability(preferences, candidate.Pairs()) == nil, "seed = %v, candidate = %v", seed, candidate)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	preferences := generator.Generate(512, 1)
	matching, _, _ := matcher.NewGaleShapleyMatcher(matcher.Queue).Match(preferences)
	var output bytes.Buffer
	_ = model.WriteMatching(&output, matching)
	text := output.String()

	for range b.N {
		_, _ = VerifyReader(preferences, strings.NewReader(text))
	}
}
