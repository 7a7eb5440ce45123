package domain

type OutcomeKind string

const (
	OutcomeSaved   OutcomeKind = "saved"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeFailed  OutcomeKind = "failed"
)

// Outcome is the terminal result of processing one identifier.
type Outcome struct {
	ID        int
	Kind      OutcomeKind
	Book      *Book
	TextPath  string
	CoverPath string

	// Reason explains a skipped outcome, Err a failed one.
	Reason string
	Err    error
}
