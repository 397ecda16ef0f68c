package model

// Selection is the addressing data derived from the host page for a single
// click or grab. It is ephemeral: derived fresh per event, never cached.
type Selection struct {
	// Rectangle is the bounds string "[x1,y1][x2,y2]", or "" when no
	// selection is available.
	Rectangle string `yaml:"rectangle,omitempty" json:"rectangle,omitempty"`
	// ElementPath is a structural locator (XPath-style) for the node,
	// retained for compatibility with path-based bridges. Rectangle wins
	// when both are present.
	ElementPath string `yaml:"element_path,omitempty" json:"element_path,omitempty"`
	// Node holds raw attributes of the selected node when the host exposes
	// them (text, class, resource-id, ...). Forwarded opaquely.
	Node map[string]string `yaml:"node,omitempty" json:"node,omitempty"`
}

// HasRectangle reports whether the selection carries a well-formed bounds string.
func (s Selection) HasRectangle() bool {
	return s.Rectangle != "" && ValidRect(s.Rectangle)
}
