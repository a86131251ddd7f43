package condaenv

import "fmt"

// OutcomeKind tags the variants of an install outcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	// OutcomeDeclarativeFailed marks a failed bulk install from a manifest.
	// Always recoverable via the imperative fallback.
	OutcomeDeclarativeFailed
	// OutcomePackageFailed marks a single imperative package that failed to
	// install. Recorded, never aborts the run.
	OutcomePackageFailed
)

// Outcome is the tagged result of one install step. The reconciler's
// dispatch table consumes these instead of nesting conditionals.
type Outcome struct {
	Kind    OutcomeKind
	Package string
	Reason  string
}

func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

func DeclarativeFailed(reason string) Outcome {
	return Outcome{Kind: OutcomeDeclarativeFailed, Reason: reason}
}

func PackageFailed(pkg, reason string) Outcome {
	return Outcome{Kind: OutcomePackageFailed, Package: pkg, Reason: reason}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "success"
	case OutcomeDeclarativeFailed:
		return fmt.Sprintf("declarative install failed: %s", o.Reason)
	case OutcomePackageFailed:
		return fmt.Sprintf("package %s failed: %s", o.Package, o.Reason)
	default:
		return "unknown outcome"
	}
}
