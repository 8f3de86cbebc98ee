package generator

// itemState is the per-requested-item lifecycle. Transitions:
// Pending -> Generating -> Validating -> Accepted | RetryPending
// RetryPending -> Generating (budget left) | PermanentlyFailed (exhausted)
// Accepted and PermanentlyFailed are terminal.
type itemState int

const (
	statePending itemState = iota
	stateGenerating
	stateValidating
	stateAccepted
	stateRetryPending
	statePermanentlyFailed
)

func (s itemState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateGenerating:
		return "generating"
	case stateValidating:
		return "validating"
	case stateAccepted:
		return "accepted"
	case stateRetryPending:
		return "retry_pending"
	case statePermanentlyFailed:
		return "permanently_failed"
	default:
		return "unknown"
	}
}

func (s itemState) terminal() bool {
	return s == stateAccepted || s == statePermanentlyFailed
}
