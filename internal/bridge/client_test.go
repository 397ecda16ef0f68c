package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendSuccess(t *testing.T) {
	var gotPath string
	var gotBody ActionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{
			OK:            true,
			ElemID:        "elem_3",
			Center:        &Center{X: 60, Y: 45},
			CaptureTiming: "post",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tap := true
	outcome := client.Send(context.Background(), &ActionRequest{
		Action: ActionTap,
		Bounds: "[10,20][110,70]",
		Tap:    &tap,
	})

	if gotPath != "/capture_tap" {
		t.Errorf("path: got %q, want /capture_tap", gotPath)
	}
	if gotBody.Action != ActionTap || gotBody.Bounds != "[10,20][110,70]" {
		t.Errorf("request body: got %+v", gotBody)
	}
	if outcome.Kind != KindSuccess {
		t.Fatalf("outcome: got %v, want success (%s)", outcome.Kind, outcome.Reason)
	}
	if outcome.ElemID != "elem_3" {
		t.Errorf("elem id: got %q", outcome.ElemID)
	}
	if got := outcome.StatusLine(); got != "sent elem_3 (60,45) capture=post" {
		t.Errorf("status line: got %q", got)
	}
}

func TestSendBridgeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{OK: false, Error: "no bounds or xpath provided"})
	}))
	defer srv.Close()

	outcome := NewClient(srv.URL).Send(context.Background(), &ActionRequest{Action: ActionBack})
	if outcome.Kind != KindFailure {
		t.Fatalf("outcome: got %v, want failure", outcome.Kind)
	}
	if outcome.Reason != "no bounds or xpath provided" {
		t.Errorf("reason: got %q", outcome.Reason)
	}
	if got := outcome.StatusLine(); got != "bridge error: no bounds or xpath provided" {
		t.Errorf("status line: got %q", got)
	}
}

func TestSendHTTPErrorWithoutBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	outcome := NewClient(srv.URL).Send(context.Background(), &ActionRequest{Action: ActionBack})
	if outcome.Kind != KindFailure {
		t.Fatalf("outcome: got %v, want failure", outcome.Kind)
	}
	if outcome.Reason != "bridge returned HTTP 500" {
		t.Errorf("reason: got %q", outcome.Reason)
	}
}

func TestSendErrorStatusOverridesOKBody(t *testing.T) {
	// A proxy or misbehaving bridge can pair an error status with a body
	// that still claims ok; the status wins.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Response{OK: true, ElemID: "elem_9"})
	}))
	defer srv.Close()

	outcome := NewClient(srv.URL).Send(context.Background(), &ActionRequest{Action: ActionTap})
	if outcome.Kind != KindFailure {
		t.Fatalf("outcome: got %v, want failure for HTTP 500", outcome.Kind)
	}
	if outcome.Reason != "bridge returned HTTP 500" {
		t.Errorf("reason: got %q", outcome.Reason)
	}
}

func TestSendNetworkError(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	outcome := NewClient(srv.URL).Send(context.Background(), &ActionRequest{Action: ActionTap})
	if outcome.Kind != KindNetworkError {
		t.Fatalf("outcome: got %v, want network error", outcome.Kind)
	}
	if outcome.Reason == "" {
		t.Error("network error should carry a reason")
	}
}

func TestStop(t *testing.T) {
	var gotPath string
	var gotLen int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLen = r.ContentLength
		json.NewEncoder(w).Encode(StopResponse{OK: true, ElemID: "elem_9", File: "final.png"})
	}))
	defer srv.Close()

	outcome := NewClient(srv.URL).Stop(context.Background())
	if gotPath != "/final_screenshot" {
		t.Errorf("path: got %q, want /final_screenshot", gotPath)
	}
	if gotLen > 0 {
		t.Errorf("stop request should have no body, got %d bytes", gotLen)
	}
	if outcome.Kind != KindSuccess {
		t.Fatalf("outcome: got %v, want success (%s)", outcome.Kind, outcome.Reason)
	}
	if outcome.File != "final.png" {
		t.Errorf("file: got %q", outcome.File)
	}
}

func TestStopFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(StopResponse{OK: false, Error: "no session"})
	}))
	defer srv.Close()

	outcome := NewClient(srv.URL).Stop(context.Background())
	if outcome.Kind != KindFailure {
		t.Fatalf("outcome: got %v, want failure", outcome.Kind)
	}
	if outcome.Reason != "no session" {
		t.Errorf("reason: got %q", outcome.Reason)
	}
}

func TestStopErrorStatusOverridesOKBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(StopResponse{OK: true, File: "final.png"})
	}))
	defer srv.Close()

	outcome := NewClient(srv.URL).Stop(context.Background())
	if outcome.Kind != KindFailure {
		t.Fatalf("outcome: got %v, want failure for HTTP 502", outcome.Kind)
	}
	if outcome.Reason != "bridge returned HTTP 502" {
		t.Errorf("reason: got %q", outcome.Reason)
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8001/bridge/")
	if c.BaseURL != "http://localhost:8001/bridge" {
		t.Errorf("base url: got %q", c.BaseURL)
	}
	if NewClient("").BaseURL != DefaultBaseURL {
		t.Error("empty base url should use the default")
	}
}
