package panel

import "github.com/mj1618/bridgectl/internal/host"

// Marker selectors recognized on the host page. The overlay root marks the
// panel's own subtree; pages can opt regions out of selection with the
// ignore attribute or class.
const (
	PanelRootSelector      = "#bridgectl-panel"
	IgnoreAttrSelector     = "[data-bridgectl-ignore]"
	IgnoreClassSelector    = ".bridgectl-ignore"
	StatusFieldSelector    = "#bridgectl-status"
	RefreshControlSelector = "button[title='Refresh'], .btn-refresh, #btn-refresh"
)

// Filter decides whether a click originated inside the panel, on the refresh
// control, or in a marked ignore region — in which case it must not be
// treated as an operator selection. It is evaluated before any other click
// handling, including for synthetic clicks: that is what keeps the refresh
// scheduler's own clicks out of the selection pipeline.
type Filter struct {
	host host.Host
}

// NewFilter creates a filter bound to a host attachment.
func NewFilter(h host.Host) *Filter {
	return &Filter{host: h}
}

// Ignore applies the rules in order, first match wins:
//
//  1. target inside the panel's own subtree
//  2. target is, or is contained by, the located refresh control
//  3. target inside an explicitly marked ignore region
//
// No side effects.
func (f *Filter) Ignore(ev host.ClickEvent) bool {
	if ev.Target == nil {
		return true
	}
	if ev.Target.MatchesOrInside(PanelRootSelector) {
		return true
	}
	if refresh, ok := f.host.FindRefreshControl(); ok {
		if refresh.Contains(ev.Target) {
			return true
		}
	}
	if ev.Target.MatchesOrInside(IgnoreAttrSelector) || ev.Target.MatchesOrInside(IgnoreClassSelector) {
		return true
	}
	return false
}
