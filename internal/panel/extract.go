package panel

import (
	"github.com/mj1618/bridgectl/internal/host"
	"github.com/mj1618/bridgectl/internal/model"
)

// DefaultRegionSelectors are the host page regions scanned for a bounds
// string when the host exposes no live selection object. Covers the detail
// and attribute panels of the weditor / UIAutodev inspector family.
var DefaultRegionSelectors = []string{
	"#attribute-panel",
	".attributes",
	"#node-detail",
	".detail-panel",
	"#console .selected",
}

// Extractor derives addressing data from the host page.
type Extractor struct {
	host host.Host
	// Regions overrides DefaultRegionSelectors when non-nil.
	Regions []string
	// PathSelector, when set, names the region whose text is taken as the
	// element path for the payload's xpath field.
	PathSelector string
}

// NewExtractor creates an extractor bound to a host attachment.
func NewExtractor(h host.Host) *Extractor {
	return &Extractor{host: h}
}

func (e *Extractor) regions() []string {
	if e.Regions != nil {
		return e.Regions
	}
	return DefaultRegionSelectors
}

// Extract derives a fresh Selection. Priority order: the host's exposed
// current selection (validated), then a scan of the candidate regions for
// the first embedded bounds string in document order. The boolean is false
// when nothing matched — "no selection available", distinct from any
// network or validation failure. Host state is never mutated.
func (e *Extractor) Extract() (model.Selection, bool) {
	if sel, ok := e.host.CurrentSelection(); ok {
		sel.Rectangle = model.NormalizeRect(sel.Rectangle)
		if sel.HasRectangle() {
			e.attachPath(&sel)
			return sel, true
		}
	}

	for _, selector := range e.regions() {
		text, ok := e.host.RegionText(selector)
		if !ok {
			continue
		}
		if rect := model.FindRect(text); rect != "" {
			sel := model.Selection{Rectangle: rect}
			e.attachPath(&sel)
			return sel, true
		}
	}

	return model.Selection{}, false
}

// attachPath fills in the element path from the configured path region when
// the selection does not already carry one.
func (e *Extractor) attachPath(sel *model.Selection) {
	if sel.ElementPath != "" || e.PathSelector == "" {
		return
	}
	if text, ok := e.host.RegionText(e.PathSelector); ok {
		sel.ElementPath = text
	}
}
