package checkout

// State is a step of the checkout wizard
type State string

const (
	StateReviewAndSelectPayment State = "review_and_select_payment"
	StateAwaitingTransaction    State = "awaiting_transaction"
	StateUploadProof            State = "upload_proof"
	StateDone                   State = "done"
)

// Step returns the 1-based wizard step shown to the user
func (s State) Step() int {
	switch s {
	case StateAwaitingTransaction:
		return 1
	case StateUploadProof:
		return 2
	case StateDone:
		return 3
	default:
		return 1
	}
}

// IsValid checks if the state is one of the known states
func (s State) IsValid() bool {
	switch s {
	case StateReviewAndSelectPayment, StateAwaitingTransaction, StateUploadProof, StateDone:
		return true
	}
	return false
}

// CanTransitionTo reports whether the wizard may move from s to next
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateReviewAndSelectPayment:
		return next == StateAwaitingTransaction || next == StateUploadProof
	case StateAwaitingTransaction:
		return next == StateUploadProof || next == StateReviewAndSelectPayment
	case StateUploadProof:
		return next == StateDone || next == StateReviewAndSelectPayment
	}
	return false
}
