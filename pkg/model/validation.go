package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Validate checks that both families hold exactly n lists and that every list is a permutation of [0, n)
func Validate(preferences Preferences) error {
	n := preferences.N
	if n < 0 {
		return fmt.Errorf("%w: size must not be negative: %v", ErrInvalidInput, n)
	} else if len(preferences.Hospitals) != n {
		return fmt.Errorf("%w: expected %v hospital preference lists, got %v", ErrInvalidInput, n, len(preferences.Hospitals))
	} else if len(preferences.Students) != n {
		return fmt.Errorf("%w: expected %v student preference lists, got %v", ErrInvalidInput, n, len(preferences.Students))
	}

	for _, tuple := range lo.Zip2([]string{"hospital", "student"}, [][][]int{preferences.Hospitals, preferences.Students}) {
		side, lists := tuple.A, tuple.B
		for agent, list := range lists {
			if err := validatePermutation(list, n); err != nil {
				return fmt.Errorf("%w: %v %v: %v", ErrInvalidInput, side, agent+1, err)
			}
		}
	}
	return nil
}

func validatePermutation(list []int, n int) error {
	if len(list) != n {
		return fmt.Errorf("expected %v preferences, got %v", n, len(list))
	}

	seen := make([]bool, n)
	for _, value := range list {
		if value < 0 || value >= n {
			return fmt.Errorf("preference %v is out of range", value+1)
		} else if seen[value] {
			return fmt.Errorf("preference %v appears more than once", value+1)
		}
		seen[value] = true
	}
	// With n in-range values and no repeats every value of [0, n) is present
	return nil
}
