package generator

import (
	"math/rand/v2"

	"github.com/limaJavier/stablematching/pkg/model"
	"github.com/samber/lo"
)

// Trial is a single benchmark instance with its own seed
type Trial struct {
	N    int
	Seed uint64
}

// Generate builds 2n uniformly random permutations of [0, n) from a private source; equal seeds yield equal instances
func Generate(n int, seed uint64) model.Preferences {
	source := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	permutation := func(_ int) []int {
		list := lo.Range(n)
		source.Shuffle(n, func(i, j int) { list[i], list[j] = list[j], list[i] })
		return list
	}

	return model.Preferences{
		N:         n,
		Hospitals: lo.Times(n, permutation),
		Students:  lo.Times(n, permutation),
	}
}

// Trials derives one seed per size from the base seed so that every trial can run on its own goroutine without sharing randomness
func Trials(ns []int, seed uint64) []Trial {
	source := rand.New(rand.NewPCG(seed, uint64(len(ns))))
	return lo.Map(ns, func(n int, _ int) Trial {
		return Trial{N: n, Seed: source.Uint64()}
	})
}

// Sizes returns the doubling sequence 1, 2, 4, ... up to and including limit
func Sizes(limit int) []int {
	sizes := make([]int, 0)
	for n := 1; n <= limit; n *= 2 {
		sizes = append(sizes, n)
	}
	return sizes
}
