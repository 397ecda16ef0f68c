// Package bridge speaks the automation bridge service's HTTP contract:
// one capture_tap POST per action, plus the body-less final_screenshot POST.
package bridge

// Action kinds accepted by the bridge service.
const (
	ActionTap       = "tap"
	ActionLongPress = "long_press"
	ActionInput     = "input"
	ActionSwipe     = "swipe"
	ActionBack      = "back"
)

// Swipe directions. DirectionCustom means dx/dy drive the movement.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionLeft   = "left"
	DirectionRight  = "right"
	DirectionCustom = "custom"
)

// KnownAction reports whether s is one of the supported action kinds.
func KnownAction(s string) bool {
	switch s {
	case ActionTap, ActionLongPress, ActionInput, ActionSwipe, ActionBack:
		return true
	}
	return false
}

// KnownDirection reports whether s is a supported swipe direction.
func KnownDirection(s string) bool {
	switch s {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight, DirectionCustom:
		return true
	}
	return false
}

// ActionRequest is the capture_tap request body. Field presence is
// action-specific; pointer fields are omitted when nil so the wire payload
// carries exactly what the action requires.
type ActionRequest struct {
	Action string `json:"action"`

	// Addressing. Back carries neither.
	Bounds string            `json:"bounds,omitempty"`
	XPath  string            `json:"xpath,omitempty"`
	Node   map[string]string `json:"node,omitempty"`

	// Legacy flag the bridge honors for plain taps.
	Tap *bool `json:"tap,omitempty"`

	// Action parameters.
	DurationMs *int    `json:"durationMs,omitempty"`
	Text       *string `json:"text,omitempty"`
	DX         *int    `json:"dx,omitempty"`
	DY         *int    `json:"dy,omitempty"`
	Direction  string  `json:"direction,omitempty"`
	Distance   *int    `json:"distance,omitempty"`

	// Capture timing: exactly one of the two delay fields is present.
	MidCapture  bool `json:"midCapture,omitempty"`
	MidDelayMs  *int `json:"midDelayMs,omitempty"`
	WaitAfterMs *int `json:"waitAfterMs,omitempty"`
}

// Response is the capture_tap response body.
type Response struct {
	OK            bool    `json:"ok"`
	Error         string  `json:"error,omitempty"`
	ElemID        string  `json:"elem_id,omitempty"`
	Center        *Center `json:"center,omitempty"`
	CaptureTiming string  `json:"capture_timing,omitempty"`
	ActionError   string  `json:"action_error,omitempty"`
}

// Center is the tap point the bridge computed from the bounds.
type Center struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StopResponse is the final_screenshot response body.
type StopResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	ElemID string `json:"elem_id,omitempty"`
	File   string `json:"file,omitempty"`
}
