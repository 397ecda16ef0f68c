package panel

import (
	"errors"
	"fmt"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/model"
)

// ErrMissingAddress means no valid rectangle was available for an action
// that needs one. The operator should select an element first.
var ErrMissingAddress = errors.New("no element selected: pick an element before sending")

// ValidationError reports a malformed rectangle or a missing action-required
// field. The send is aborted before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BuildRequest maps the current panel state and derived selection into a
// bridge request, enforcing per-action field requirements. Pure: no network
// or storage I/O.
func BuildRequest(s State, sel model.Selection) (*bridge.ActionRequest, error) {
	if !bridge.KnownAction(s.Action) {
		return nil, &ValidationError{Field: FieldAction, Reason: fmt.Sprintf("unknown action %q", s.Action)}
	}

	req := &bridge.ActionRequest{Action: s.Action}

	// Back is the only address-free action; every other kind requires a
	// pattern-valid rectangle.
	if s.Action != bridge.ActionBack {
		rect := model.NormalizeRect(sel.Rectangle)
		if rect == "" {
			return nil, ErrMissingAddress
		}
		if !model.ValidRect(rect) {
			return nil, &ValidationError{Field: FieldRectangle, Reason: fmt.Sprintf("%q does not match [x1,y1][x2,y2]", sel.Rectangle)}
		}
		req.Bounds = rect
		req.XPath = sel.ElementPath
		if len(sel.Node) > 0 {
			req.Node = sel.Node
		}
	}

	switch s.Action {
	case bridge.ActionTap:
		req.Tap = boolPtr(true)

	case bridge.ActionInput:
		// Text must be present; the empty string is a legal input.
		text := s.Text
		req.Text = &text

	case bridge.ActionSwipe:
		if !bridge.KnownDirection(s.Direction) {
			return nil, &ValidationError{Field: FieldDirection, Reason: fmt.Sprintf("unknown direction %q", s.Direction)}
		}
		if s.Direction != bridge.DirectionCustom {
			// Direction+distance wins; dx/dy are dropped entirely.
			if s.Distance < 0 {
				return nil, &ValidationError{Field: FieldDistance, Reason: "must be non-negative"}
			}
			req.Direction = s.Direction
			req.Distance = intPtr(s.Distance)
		} else {
			if s.DX == 0 && s.DY == 0 {
				return nil, &ValidationError{Field: FieldDX, Reason: "custom swipe needs a non-zero dx or dy"}
			}
			req.DX = intPtr(s.DX)
			req.DY = intPtr(s.DY)
		}
	}

	// Duration only travels with the actions that hold a gesture down.
	if s.Action == bridge.ActionLongPress || s.Action == bridge.ActionSwipe {
		if s.DurationMs <= 0 {
			return nil, &ValidationError{Field: FieldDuration, Reason: "must be a positive integer"}
		}
		req.DurationMs = intPtr(s.DurationMs)
	}

	// Capture timing is always attached; the two delay fields are mutually
	// exclusive in the payload.
	switch s.CaptureMode {
	case config.CaptureMid:
		if s.MidDelayMs < 0 {
			return nil, &ValidationError{Field: FieldMidDelay, Reason: "must be non-negative"}
		}
		req.MidCapture = true
		req.MidDelayMs = intPtr(s.MidDelayMs)
	case config.CapturePost:
		if s.WaitAfterMs < 0 {
			return nil, &ValidationError{Field: FieldWaitAfter, Reason: "must be non-negative"}
		}
		req.WaitAfterMs = intPtr(s.WaitAfterMs)
	default:
		return nil, &ValidationError{Field: FieldCaptureMode, Reason: fmt.Sprintf("unknown mode %q", s.CaptureMode)}
	}

	return req, nil
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }
