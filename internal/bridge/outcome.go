package bridge

import "fmt"

// OutcomeKind classifies the result of a single bridge round-trip.
type OutcomeKind int

const (
	// KindSuccess means the bridge accepted and executed the request.
	KindSuccess OutcomeKind = iota
	// KindFailure means the bridge answered but reported a non-success
	// result (HTTP error status or a body without ok:true).
	KindFailure
	// KindNetworkError means the request never completed: DNS failure,
	// connection refused, timeout.
	KindNetworkError
)

// Outcome is the three-way result of one send or stop attempt. Exactly one
// attempt is made; the caller surfaces the outcome and decides what follows.
type Outcome struct {
	Kind OutcomeKind

	// Success fields.
	ElemID        string
	Center        *Center
	CaptureTiming string
	File          string

	// Failure / network-error detail.
	Reason string
}

// StatusLine renders the outcome as the one-line status text shown to the
// operator.
func (o Outcome) StatusLine() string {
	switch o.Kind {
	case KindSuccess:
		s := "sent"
		if o.ElemID != "" {
			s += " " + o.ElemID
		}
		if o.Center != nil {
			s += fmt.Sprintf(" (%d,%d)", o.Center.X, o.Center.Y)
		}
		if o.CaptureTiming != "" {
			s += " capture=" + o.CaptureTiming
		}
		if o.File != "" {
			s += " " + o.File
		}
		return s
	case KindFailure:
		return "bridge error: " + o.Reason
	default:
		return "network error: " + o.Reason
	}
}
