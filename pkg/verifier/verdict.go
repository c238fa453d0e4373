package verifier

import (
	"fmt"

	"github.com/limaJavier/stablematching/pkg/model"
)

type Kind int

const (
	Stable Kind = iota
	Invalid
	Unstable
)

var kinds = map[Kind]string{
	Stable:   "stable",
	Invalid:  "invalid",
	Unstable: "unstable",
}

func (kind Kind) String() string {
	return kinds[kind]
}

// Verdict is the outcome of certifying a candidate matching. Invalid and Unstable verdicts describe the matching, not a failure of the run
type Verdict struct {
	Kind         Kind
	Reason       string     // Only set for Invalid verdicts
	BlockingPair model.Pair // Only set for Unstable verdicts, 0-indexed
}

func stable() Verdict {
	return Verdict{Kind: Stable}
}

func invalid(format string, args ...any) *Verdict {
	return &Verdict{Kind: Invalid, Reason: fmt.Sprintf(format, args...)}
}

func unstable(hospital, student int) *Verdict {
	return &Verdict{Kind: Unstable, BlockingPair: model.Pair{Hospital: hospital, Student: student}}
}

// String renders the verdict line, every index printed 1-indexed
func (verdict Verdict) String() string {
	switch verdict.Kind {
	case Invalid:
		return fmt.Sprintf("INVALID (%v)", verdict.Reason)
	case Unstable:
		return fmt.Sprintf("UNSTABLE (Blocking pair: Hospital %d, Student %d)", verdict.BlockingPair.Hospital+1, verdict.BlockingPair.Student+1)
	default:
		return "VALID STABLE"
	}
}
