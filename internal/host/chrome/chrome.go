// Package chrome attaches to a running Chrome instance over the DevTools
// protocol and implements the host surface against the inspector page.
package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/mj1618/bridgectl/internal/host"
	"github.com/mj1618/bridgectl/internal/model"
	"github.com/mj1618/bridgectl/internal/panel"
)

// Options configure an attachment.
type Options struct {
	// DevToolsURL is the browser's DevTools websocket or HTTP endpoint,
	// e.g. ws://127.0.0.1:9222.
	DevToolsURL string
	// PageURL, when set, is navigated to after attaching.
	PageURL string
	// PollInterval is how often the recorded click queue is drained.
	// Zero means 150ms.
	PollInterval time.Duration
	Log          *zap.Logger
}

// Attachment is a live connection to the inspector page. It satisfies
// host.Host.
type Attachment struct {
	ctx    context.Context
	cancel context.CancelFunc
	alloc  context.CancelFunc
	events chan host.ClickEvent
	log    *zap.Logger
}

var _ host.Host = (*Attachment)(nil)

// recordedClick mirrors the objects pushed by the injected recorder.
type recordedClick struct {
	Trusted   bool     `json:"trusted"`
	Matched   []string `json:"matched"`
	InRefresh bool     `json:"inRefresh"`
}

type clickNode struct {
	matched   map[string]bool
	inRefresh bool
}

func (n *clickNode) MatchesOrInside(selector string) bool { return n.matched[selector] }

// Contains is never meaningful for a click target; containment checks run
// the other way, from the refresh control node.
func (n *clickNode) Contains(host.Node) bool { return false }

type refreshNode struct{ a *Attachment }

func (refreshNode) MatchesOrInside(string) bool { return false }

func (r refreshNode) Contains(other host.Node) bool {
	n, ok := other.(*clickNode)
	return ok && n.inRefresh
}

// Attach connects to Chrome, injects the overlay, and starts polling for
// clicks.
func Attach(parent context.Context, opts Options) (*Attachment, error) {
	if opts.DevToolsURL == "" {
		return nil, fmt.Errorf("devtools URL is required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 150 * time.Millisecond
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(parent, opts.DevToolsURL)
	ctx, cancel := chromedp.NewContext(allocCtx)

	a := &Attachment{
		ctx:    ctx,
		cancel: cancel,
		alloc:  allocCancel,
		events: make(chan host.ClickEvent, 64),
		log:    log,
	}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if e, ok := ev.(*runtime.EventExceptionThrown); ok {
			a.log.Debug("page exception", zap.String("text", e.ExceptionDetails.Text))
		}
	})

	actions := []chromedp.Action{}
	if opts.PageURL != "" {
		actions = append(actions, chromedp.Navigate(opts.PageURL), chromedp.WaitReady("body"))
	}
	actions = append(actions, chromedp.Evaluate(injectExpr(), nil))
	if err := chromedp.Run(ctx, actions...); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("attaching to page: %w", err)
	}

	go a.poll(interval)
	return a, nil
}

func injectExpr() string {
	markers, _ := json.Marshal([]string{
		panel.PanelRootSelector,
		panel.IgnoreAttrSelector,
		panel.IgnoreClassSelector,
	})
	refresh, _ := json.Marshal(panel.RefreshControlSelector)
	return fmt.Sprintf(overlayScript, markers, refresh)
}

func (a *Attachment) poll(interval time.Duration) {
	defer close(a.events)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
		}
		var clicks []recordedClick
		if err := chromedp.Run(a.ctx, chromedp.Evaluate("window.__bridgectl.drain()", &clicks)); err != nil {
			a.log.Debug("drain failed", zap.Error(err))
			continue
		}
		for _, c := range clicks {
			matched := make(map[string]bool, len(c.Matched))
			for _, sel := range c.Matched {
				matched[sel] = true
			}
			ev := host.ClickEvent{
				Target:  &clickNode{matched: matched, inRefresh: c.InRefresh},
				Trusted: c.Trusted,
			}
			select {
			case a.events <- ev:
			case <-a.ctx.Done():
				return
			}
		}
	}
}

// CurrentSelection reads the inspector's selected-node globals.
func (a *Attachment) CurrentSelection() (model.Selection, bool) {
	var raw *struct {
		Rectangle   string            `json:"rectangle"`
		ElementPath string            `json:"elementPath"`
		Node        map[string]string `json:"node"`
	}
	if err := chromedp.Run(a.ctx, chromedp.Evaluate("window.__bridgectl.selection()", &raw)); err != nil || raw == nil {
		return model.Selection{}, false
	}
	return model.Selection{
		Rectangle:   raw.Rectangle,
		ElementPath: raw.ElementPath,
		Node:        raw.Node,
	}, true
}

func (a *Attachment) RegionText(selector string) (string, bool) {
	var text *string
	expr := fmt.Sprintf("window.__bridgectl.regionText(%s)", jsonString(selector))
	if err := chromedp.Run(a.ctx, chromedp.Evaluate(expr, &text)); err != nil || text == nil {
		return "", false
	}
	return *text, true
}

func (a *Attachment) FindRefreshControl() (host.Node, bool) {
	var ok bool
	if err := chromedp.Run(a.ctx, chromedp.Evaluate("window.__bridgectl.hasRefresh()", &ok)); err != nil || !ok {
		return nil, false
	}
	return refreshNode{a: a}, true
}

// Click dispatches a click on the page. Only the refresh control is
// clickable from this side.
func (a *Attachment) Click(n host.Node) error {
	if _, ok := n.(refreshNode); !ok {
		return fmt.Errorf("node is not clickable")
	}
	var clicked bool
	if err := chromedp.Run(a.ctx, chromedp.Evaluate("window.__bridgectl.clickRefresh()", &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("refresh control not found")
	}
	return nil
}

func (a *Attachment) Events() <-chan host.ClickEvent { return a.events }

func (a *Attachment) ReadFields() (map[string]string, error) {
	var fields map[string]string
	if err := chromedp.Run(a.ctx, chromedp.Evaluate("window.__bridgectl.fields()", &fields)); err != nil {
		return nil, fmt.Errorf("reading panel fields: %w", err)
	}
	return fields, nil
}

func (a *Attachment) SetField(name, value string) error {
	expr := fmt.Sprintf("window.__bridgectl.setField(%s, %s)", jsonString(name), jsonString(value))
	var ok bool
	if err := chromedp.Run(a.ctx, chromedp.Evaluate(expr, &ok)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no field %q", name)
	}
	return nil
}

func (a *Attachment) ApplyVisibility(visible map[string]bool) error {
	b, _ := json.Marshal(visible)
	expr := fmt.Sprintf("window.__bridgectl.applyVis(%s)", b)
	return chromedp.Run(a.ctx, chromedp.Evaluate(expr, nil))
}

func (a *Attachment) SetStatus(text string) error {
	expr := fmt.Sprintf("window.__bridgectl.setStatus(%s)", jsonString(text))
	return chromedp.Run(a.ctx, chromedp.Evaluate(expr, nil))
}

func (a *Attachment) Close() error {
	a.cancel()
	a.alloc()
	return nil
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
