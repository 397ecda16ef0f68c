package panel

import (
	"sync"

	"github.com/mj1618/bridgectl/internal/host"
	"github.com/mj1618/bridgectl/internal/model"
)

// fakeNode carries pre-resolved containment facts, the way a real adapter
// reports them.
type fakeNode struct {
	matched   map[string]bool
	inRefresh bool
}

func (n *fakeNode) MatchesOrInside(selector string) bool { return n.matched[selector] }
func (n *fakeNode) Contains(host.Node) bool              { return false }

type fakeRefreshNode struct{}

func (fakeRefreshNode) MatchesOrInside(string) bool { return false }
func (fakeRefreshNode) Contains(other host.Node) bool {
	n, ok := other.(*fakeNode)
	return ok && n.inRefresh
}

func plainNode() *fakeNode {
	return &fakeNode{matched: map[string]bool{}}
}

func nodeMatching(selectors ...string) *fakeNode {
	m := map[string]bool{}
	for _, s := range selectors {
		m[s] = true
	}
	return &fakeNode{matched: m}
}

// fakeHost is an in-memory host.Host for panel tests.
type fakeHost struct {
	mu sync.Mutex

	selection    model.Selection
	hasSelection bool
	regions      map[string]string

	refreshAvailable bool
	refreshClicks    int

	events chan host.ClickEvent

	fields    map[string]string
	setFields map[string]string

	visibility map[string]bool
	status     string
	closed     bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		regions:   map[string]string{},
		events:    make(chan host.ClickEvent, 16),
		fields:    map[string]string{},
		setFields: map[string]string{},
	}
}

func (h *fakeHost) CurrentSelection() (model.Selection, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.selection, h.hasSelection
}

func (h *fakeHost) RegionText(selector string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	text, ok := h.regions[selector]
	return text, ok
}

func (h *fakeHost) FindRefreshControl() (host.Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.refreshAvailable {
		return nil, false
	}
	return fakeRefreshNode{}, true
}

func (h *fakeHost) Click(n host.Node) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := n.(fakeRefreshNode); ok {
		h.refreshClicks++
	}
	return nil
}

func (h *fakeHost) clickCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshClicks
}

func (h *fakeHost) Events() <-chan host.ClickEvent { return h.events }

func (h *fakeHost) ReadFields() (map[string]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.fields))
	for k, v := range h.fields {
		out[k] = v
	}
	return out, nil
}

func (h *fakeHost) SetField(name, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setFields[name] = value
	return nil
}

func (h *fakeHost) ApplyVisibility(visible map[string]bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visibility = visible
	return nil
}

func (h *fakeHost) SetStatus(text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = text
	return nil
}

func (h *fakeHost) lastStatus() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *fakeHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
