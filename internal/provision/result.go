package provision

import "fmt"

// Outcome classifies a single link operation.
type Outcome int

const (
	// Created means the link was created by this call.
	Created Outcome = iota
	// AlreadyExists means something already occupied the link path.
	AlreadyExists
	// Failed means the link could not be created; Result.Err holds the cause.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case AlreadyExists:
		return "already-exists"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes one link operation.
type Result struct {
	Name    string
	Source  string
	Link    string
	Outcome Outcome
	Err     error
}

// Notice returns the console line reported for the result.
func (r Result) Notice() string {
	switch r.Outcome {
	case Created:
		return fmt.Sprintf("Symlink created for %s file", r.Name)
	case AlreadyExists:
		return fmt.Sprintf("Symlink already exists for %s file", r.Name)
	default:
		return fmt.Sprintf("Symlink failed for %s file: %v", r.Name, r.Err)
	}
}

// Counts tallies results by outcome.
func Counts(results []Result) (created, existing, failed int) {
	for _, r := range results {
		switch r.Outcome {
		case Created:
			created++
		case AlreadyExists:
			existing++
		case Failed:
			failed++
		}
	}
	return created, existing, failed
}
