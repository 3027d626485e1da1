package model

// TestStatus represents the verdict of one test-suite execution.
type TestStatus int

const (
	// Killed indicates the test run failed: the mutation was caught.
	Killed TestStatus = iota
	// Survived indicates the test run passed despite the mutation.
	Survived
	// Fatal indicates the test runner itself failed to produce a verdict.
	// It aborts the whole run.
	Fatal
)

// String returns the human readable status label.
func (s TestStatus) String() string {
	switch s {
	case Killed:
		return "killed"
	case Survived:
		return "survived"
	case Fatal:
		return "fatal"
	}

	return "unknown"
}

// Outcome classifies a single generated mutation after processing. Exactly
// one outcome is assigned per mutation.
type Outcome string

const (
	// OutcomeKilled marks a tested mutation that was caught by the tests.
	OutcomeKilled Outcome = "killed"
	// OutcomeSurvived marks a tested mutation the tests did not catch.
	OutcomeSurvived Outcome = "survived"
	// OutcomeIgnored marks a mutation whose source span matched an ignore rule.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeDiscarded marks a mutation whose replacement matched a discard rule.
	OutcomeDiscarded Outcome = "discarded"
	// OutcomeUntestedNested marks a mutation skipped because it lies inside a
	// region already proven to survive.
	OutcomeUntestedNested Outcome = "untested-nested"
)

// MutationRecord pairs a mutation with its outcome and the rendered message.
type MutationRecord struct {
	Mutation Mutation `yaml:"mutation"`
	Outcome  Outcome  `yaml:"outcome"`
	Message  string   `yaml:"message,omitempty"`
	Diff     string   `yaml:"diff,omitempty"`
}

// FileResult holds the complete pipeline output for one source file. It is
// immutable once the file's pipeline finishes.
type FileResult struct {
	File           Path             `yaml:"file"`
	OriginalSource string           `yaml:"original_source,omitempty"`
	Stats          Stats            `yaml:"stats"`
	Records        []MutationRecord `yaml:"records"`
}
