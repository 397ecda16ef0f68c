package panel

import (
	"context"
	"strconv"
	"sync"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/host"
	"github.com/mj1618/bridgectl/internal/model"
	"go.uber.org/zap"
)

// Sender performs one bridge round-trip. *bridge.Client implements it.
type Sender interface {
	Send(ctx context.Context, req *bridge.ActionRequest) bridge.Outcome
}

// Controller owns the panel state and the single click stream. Every
// qualifying click produces exactly one send attempt: there is no arming
// window, no debounce, and no in-flight guard — two quick clicks can race
// two requests, which is accepted behavior.
type Controller struct {
	host      host.Host
	filter    *Filter
	extractor *Extractor
	scheduler *Scheduler
	sender    Sender
	log       *zap.Logger

	// state is mutated only on the event loop goroutine.
	state State

	mu     sync.Mutex
	status string

	wg sync.WaitGroup
	// syncSend makes dispatch inline instead of spawning; tests only.
	syncSend bool
}

// NewController wires the panel components around a host attachment.
func NewController(h host.Host, sender Sender, cfg config.Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		host:      h,
		filter:    NewFilter(h),
		extractor: NewExtractor(h),
		sender:    sender,
		log:       log,
		state:     NewState(cfg),
	}
	c.extractor.PathSelector = cfg.ElementPathSelector
	c.scheduler = NewScheduler(h, log)
	return c
}

// State returns a copy of the current panel state.
func (c *Controller) State() State {
	return c.state
}

// SetState applies fn to the panel state and re-syncs field visibility on
// the host overlay.
func (c *Controller) SetState(fn func(*State)) {
	fn(&c.state)
	c.applyVisibility()
}

// Status returns the last status line surfaced to the operator.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(text string) {
	c.mu.Lock()
	c.status = text
	c.mu.Unlock()
	if err := c.host.SetStatus(text); err != nil {
		c.log.Debug("status update failed", zap.Error(err))
	}
}

func (c *Controller) applyVisibility() {
	if err := c.host.ApplyVisibility(FieldVisibility(c.state)); err != nil {
		c.log.Debug("visibility update failed", zap.Error(err))
	}
}

// Run drives the event loop until ctx is done or the host's click stream
// closes. In-flight sends are not aborted on exit; Flush waits for them.
func (c *Controller) Run(ctx context.Context) error {
	c.applyVisibility()
	c.setStatus("ready")
	events := c.host.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.HandleClick(ctx, ev)
		}
	}
}

// HandleClick processes one click event end to end. The ignore filter runs
// first — even for synthetic clicks, so the refresh scheduler's own clicks
// never re-enter the selection pipeline — then non-trusted clicks are
// discarded as a second safety net. Every failure path returns the panel to
// the idle, ready-for-next-click state.
func (c *Controller) HandleClick(ctx context.Context, ev host.ClickEvent) {
	if c.filter.Ignore(ev) {
		return
	}
	if !ev.Trusted {
		return
	}

	c.syncFields()
	c.applyVisibility()

	if !c.state.AutoSend {
		return
	}

	sel, ok := c.extractor.Extract()
	if ok {
		c.state.Rectangle = sel.Rectangle
		if err := c.host.SetField(FieldRectangle, sel.Rectangle); err != nil {
			c.log.Debug("rectangle write-back failed", zap.Error(err))
		}
	} else {
		// No selection on the page; the operator's manual panel entries
		// are the fallback address.
		sel = model.Selection{Rectangle: c.state.Rectangle, ElementPath: c.state.ElementPath}
	}

	req, err := BuildRequest(c.state, sel)
	if err != nil {
		c.setStatus(err.Error())
		return
	}
	c.dispatch(ctx, req)
}

// Grab derives the current rectangle on demand and writes it back to the
// panel field. Returns false when no selection is available.
func (c *Controller) Grab() (string, bool) {
	sel, ok := c.extractor.Extract()
	if !ok {
		c.setStatus(ErrMissingAddress.Error())
		return "", false
	}
	c.state.Rectangle = sel.Rectangle
	if err := c.host.SetField(FieldRectangle, sel.Rectangle); err != nil {
		c.log.Debug("rectangle write-back failed", zap.Error(err))
	}
	c.setStatus("bounds " + sel.Rectangle)
	return sel.Rectangle, true
}

// dispatch performs the send without blocking the event loop. On success it
// triggers exactly one refresh-scheduler invocation — never speculatively
// before the outcome is observed.
func (c *Controller) dispatch(ctx context.Context, req *bridge.ActionRequest) {
	c.setStatus("sending " + req.Action + "...")
	times, interval := c.state.Refresh.Times, c.state.Refresh.IntervalMs

	send := func() {
		outcome := c.sender.Send(ctx, req)
		c.setStatus(outcome.StatusLine())
		c.log.Info("send complete",
			zap.String("action", req.Action),
			zap.String("status", outcome.StatusLine()))
		if outcome.Kind == bridge.KindSuccess {
			c.scheduler.Schedule(times, interval)
		}
	}

	if c.syncSend {
		send()
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		send()
	}()
}

// Flush waits for in-flight sends to report their outcome. It does not wait
// for refresh ticks, which are fire-and-forget.
func (c *Controller) Flush() {
	c.wg.Wait()
}

// syncFields pulls the operator's current field edits from the host overlay
// into the panel state. Best effort: unreadable or malformed values leave
// the previous state untouched.
func (c *Controller) syncFields() {
	fields, err := c.host.ReadFields()
	if err != nil {
		c.log.Debug("field read failed", zap.Error(err))
		return
	}
	s := &c.state
	if v, ok := fields[FieldAction]; ok && bridge.KnownAction(v) {
		s.Action = v
	}
	if v, ok := fields[FieldRectangle]; ok {
		s.Rectangle = model.NormalizeRect(v)
	}
	if v, ok := fields[FieldElementPath]; ok {
		s.ElementPath = v
	}
	if v, ok := fields[FieldText]; ok {
		s.Text = v
	}
	if v, ok := fields[FieldDirection]; ok && bridge.KnownDirection(v) {
		s.Direction = v
	}
	intField(fields, FieldDuration, &s.DurationMs)
	intField(fields, FieldDX, &s.DX)
	intField(fields, FieldDY, &s.DY)
	intField(fields, FieldDistance, &s.Distance)
	intField(fields, FieldMidDelay, &s.MidDelayMs)
	intField(fields, FieldWaitAfter, &s.WaitAfterMs)
	if v, ok := fields[FieldCaptureMode]; ok && (v == config.CaptureMid || v == config.CapturePost) {
		s.CaptureMode = v
	}
	if v, ok := fields[FieldAutoSend]; ok {
		s.AutoSend = parseBool(v)
	}
}

func intField(fields map[string]string, name string, dst *int) {
	v, ok := fields[name]
	if !ok || v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func parseBool(v string) bool {
	switch v {
	case "true", "1", "on", "checked", "yes":
		return true
	}
	return false
}
