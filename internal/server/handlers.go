package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/model"
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/mj1618/bridgectl/internal/panel"
)

// resultToText serializes a result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal error: %v", err)
	}
	return string(b)
}

// stateFromParams seeds panel state from the persisted config, then applies
// any field the caller supplied.
func (s *Server) stateFromParams(params map[string]interface{}) (panel.State, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return panel.State{}, fmt.Errorf("loading config: %w", err)
	}
	st := panel.NewState(cfg)
	st.Action = StringParam(params, "action", bridge.ActionTap)
	st.Text = StringParam(params, "text", "")
	st.DurationMs = IntParam(params, "duration_ms", st.DurationMs)
	st.DX = IntParam(params, "dx", 0)
	st.DY = IntParam(params, "dy", 0)
	st.Direction = StringParam(params, "direction", st.Direction)
	st.Distance = IntParam(params, "distance", 0)
	st.CaptureMode = StringParam(params, "capture_mode", st.CaptureMode)
	st.MidDelayMs = IntParam(params, "mid_delay_ms", st.MidDelayMs)
	st.WaitAfterMs = IntParam(params, "wait_after_ms", st.WaitAfterMs)
	return st, nil
}

// HandleSend builds and posts one action request to the bridge.
func (s *Server) HandleSend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	st, err := s.stateFromParams(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sel := model.Selection{
		Rectangle:   StringParam(params, "bounds", ""),
		ElementPath: StringParam(params, "xpath", ""),
	}
	if sel.Rectangle == "" && st.Action != bridge.ActionBack {
		// Fall back to the page's current selection when no bounds given.
		if grabbed, ok := s.grabSelection(); ok {
			sel = grabbed
		}
	}

	req, err := panel.BuildRequest(st, sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := s.client.Send(ctx, req)
	s.cache.Invalidate()

	result := sendResult(st.Action, outcome)
	if outcome.Kind != bridge.KindSuccess {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func sendResult(action string, outcome bridge.Outcome) output.SendResult {
	result := output.SendResult{
		OK:            outcome.Kind == bridge.KindSuccess,
		Action:        action,
		ElemID:        outcome.ElemID,
		CaptureTiming: outcome.CaptureTiming,
		Status:        outcome.StatusLine(),
	}
	if outcome.Center != nil {
		result.Center = fmt.Sprintf("(%d,%d)", outcome.Center.X, outcome.Center.Y)
	}
	if outcome.Kind != bridge.KindSuccess {
		result.Error = outcome.Reason
	}
	return result
}

// HandleFinalScreenshot asks the bridge to finish the capture session.
func (s *Server) HandleFinalScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outcome := s.client.Stop(ctx)
	s.cache.Invalidate()

	result := output.StopResult{
		OK:     outcome.Kind == bridge.KindSuccess,
		ElemID: outcome.ElemID,
		File:   outcome.File,
	}
	if outcome.Kind != bridge.KindSuccess {
		result.Error = outcome.Reason
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

// grabSelection reads the inspector page's current selection, consulting
// the cache first. The host mutex is held for the page round-trip.
func (s *Server) grabSelection() (model.Selection, bool) {
	if sel, ok := s.cache.Get(); ok {
		return sel, true
	}

	s.hostMu.Lock()
	defer s.hostMu.Unlock()
	h, err := s.pageHost()
	if err != nil {
		return model.Selection{}, false
	}
	ext := panel.NewExtractor(h)
	if cfg, err := s.store.Load(); err == nil {
		ext.PathSelector = cfg.ElementPathSelector
	}
	sel, ok := ext.Extract()
	if !ok {
		return model.Selection{}, false
	}
	s.cache.Put(sel)
	return sel, true
}

// HandleGrab returns the inspector page's current selection.
func (s *Server) HandleGrab(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sel, ok := s.grabSelection()
	result := output.GrabResult{Found: ok, Selection: sel}
	if !ok {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

// HandleConfigGet returns the persisted panel config.
func (s *Server) HandleConfigGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(cfg)), nil
}

// HandleConfigSet updates and persists the supplied config fields.
func (s *Server) HandleConfigSet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	cfg, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if HasParam(params, "element_path_selector") {
		cfg.ElementPathSelector = StringParam(params, "element_path_selector", cfg.ElementPathSelector)
	}
	if HasParam(params, "capture_mode") {
		cfg.CaptureMode = StringParam(params, "capture_mode", cfg.CaptureMode)
	}
	if HasParam(params, "mid_delay_ms") {
		cfg.MidDelayMs = IntParam(params, "mid_delay_ms", cfg.MidDelayMs)
	}
	if HasParam(params, "wait_after_ms") {
		cfg.WaitAfterMs = IntParam(params, "wait_after_ms", cfg.WaitAfterMs)
	}
	if err := s.store.Save(cfg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(cfg)), nil
}
