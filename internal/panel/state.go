// Package panel implements the operator control surface: it classifies
// clicks on the host page, derives addressing data, builds bridge requests
// from the current field values, and coordinates the post-action refresh.
package panel

import (
	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/config"
)

// Overlay field names, shared between State, field visibility, and the host
// adapter's panel markup.
const (
	FieldAction      = "action"
	FieldRectangle   = "rectangle"
	FieldElementPath = "element-path"
	FieldText        = "text"
	FieldDuration    = "duration-ms"
	FieldDX          = "dx"
	FieldDY          = "dy"
	FieldDirection   = "direction"
	FieldDistance    = "distance"
	FieldCaptureMode = "capture-mode"
	FieldMidDelay    = "mid-delay-ms"
	FieldWaitAfter   = "wait-after-ms"
	FieldAutoSend    = "auto-send"
)

// Server-side defaults mirrored into fresh panel state.
const (
	DefaultDurationMs      = 800
	DefaultRefreshTimes    = 3
	DefaultRefreshInterval = 1000
)

// RefreshPolicy controls the post-success refresh clicks.
type RefreshPolicy struct {
	Times      int `yaml:"times"       json:"times"`
	IntervalMs int `yaml:"interval_ms" json:"interval_ms"`
}

// State holds the live values of every panel field plus the auto-send flag
// and refresh policy. It is the single source of truth the request builder
// reads at send time. All access happens on the controller's event loop.
type State struct {
	Action      string
	Rectangle   string
	ElementPath string

	Text       string
	DurationMs int
	DX, DY     int
	Direction  string
	Distance   int

	CaptureMode string
	MidDelayMs  int
	WaitAfterMs int

	AutoSend bool
	Refresh  RefreshPolicy
}

// NewState seeds panel state from the persisted config, filling the
// remaining fields with the bridge service's own defaults.
func NewState(cfg config.Config) State {
	return State{
		Action:      bridge.ActionTap,
		Direction:   bridge.DirectionCustom,
		DurationMs:  DefaultDurationMs,
		CaptureMode: cfg.CaptureMode,
		MidDelayMs:  cfg.MidDelayMs,
		WaitAfterMs: cfg.WaitAfterMs,
		AutoSend:    true,
		Refresh: RefreshPolicy{
			Times:      DefaultRefreshTimes,
			IntervalMs: DefaultRefreshInterval,
		},
	}
}

// FieldVisibility computes which panel fields are visible (and enabled) for
// the current action kind and capture-timing mode:
//
//	text                 input only
//	dx/dy/direction/distance   swipe only
//	duration             long_press and swipe
//	rectangle            every action except back
//	mid-delay            mid mode only
//	wait-after           post mode only
func FieldVisibility(s State) map[string]bool {
	isSwipe := s.Action == bridge.ActionSwipe
	return map[string]bool{
		FieldAction:      true,
		FieldRectangle:   s.Action != bridge.ActionBack,
		FieldElementPath: s.Action != bridge.ActionBack,
		FieldText:        s.Action == bridge.ActionInput,
		FieldDuration:    s.Action == bridge.ActionLongPress || isSwipe,
		FieldDX:          isSwipe,
		FieldDY:          isSwipe,
		FieldDirection:   isSwipe,
		FieldDistance:    isSwipe,
		FieldCaptureMode: true,
		FieldMidDelay:    s.CaptureMode == config.CaptureMid,
		FieldWaitAfter:   s.CaptureMode == config.CapturePost,
		FieldAutoSend:    true,
	}
}
