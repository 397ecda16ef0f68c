// Package host defines the narrow capability surface the panel needs from a
// UI-inspection web application. One adapter per host application keeps the
// rest of the tool host-agnostic.
package host

import "github.com/mj1618/bridgectl/internal/model"

// Node is a handle to an element on the host page, carrying the containment
// facts the panel needs to classify a click target. DOM queries happen on
// the host side; decisions happen in Go.
type Node interface {
	// MatchesOrInside reports whether the node or any of its ancestors
	// matches the CSS selector. Adapters resolve this against the selector
	// set registered at attach time.
	MatchesOrInside(selector string) bool

	// Contains reports whether other is the node itself or a descendant.
	Contains(other Node) bool
}

// ClickEvent is one click observed on the host page, delivered from the
// capture phase so the panel sees it before the host's own handlers.
type ClickEvent struct {
	Target Node
	// Trusted is true for operator-initiated clicks, false for synthetic
	// ones (including the refresh scheduler's own).
	Trusted bool
}

// Host is a live attachment to the inspection page.
type Host interface {
	// CurrentSelection returns the addressing data the host exposes for its
	// currently selected node, if any. The second return is false when the
	// host has no live selection object.
	CurrentSelection() (model.Selection, bool)

	// RegionText returns the rendered text of the first element matching
	// selector, in document order. False when no element matches.
	RegionText(selector string) (string, bool)

	// FindRefreshControl locates the host's refresh control. It is located
	// dynamically on every call, never cached by identity: the host may
	// re-render it at any time.
	FindRefreshControl() (Node, bool)

	// Click dispatches a synthetic click on the node.
	Click(Node) error

	// Events returns the capture-phase click stream. The channel closes
	// when the attachment ends.
	Events() <-chan ClickEvent

	// ReadFields returns the current values of the overlay panel's input
	// fields, keyed by field name.
	ReadFields() (map[string]string, error)

	// SetField writes a value back into an overlay panel field (e.g. the
	// derived rectangle).
	SetField(name, value string) error

	// ApplyVisibility shows or hides overlay fields.
	ApplyVisibility(visible map[string]bool) error

	// SetStatus updates the overlay's status line.
	SetStatus(text string) error

	// Close detaches from the page.
	Close() error
}
