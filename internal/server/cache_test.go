package server

import (
	"testing"
	"time"

	"github.com/mj1618/bridgectl/internal/model"
)

func TestSelectionCacheHitWithinTTL(t *testing.T) {
	c := NewSelectionCache(time.Minute)
	want := model.Selection{Rectangle: "[1,2][3,4]"}
	c.Put(want)

	got, ok := c.Get()
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Rectangle != want.Rectangle {
		t.Errorf("rectangle: got %q", got.Rectangle)
	}
}

func TestSelectionCacheMissWhenEmpty(t *testing.T) {
	c := NewSelectionCache(time.Minute)
	if _, ok := c.Get(); ok {
		t.Error("empty cache should miss")
	}
}

func TestSelectionCacheDisabled(t *testing.T) {
	c := NewSelectionCache(0)
	c.Put(model.Selection{Rectangle: "[1,2][3,4]"})
	if _, ok := c.Get(); ok {
		t.Error("disabled cache should never hit")
	}
}

func TestSelectionCacheInvalidate(t *testing.T) {
	c := NewSelectionCache(time.Minute)
	c.Put(model.Selection{Rectangle: "[1,2][3,4]"})
	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Error("invalidated cache should miss")
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"action":      "swipe",
		"distance":    float64(300),
		"mid_capture": true,
		"empty":       "",
	}

	if got := StringParam(params, "action", "tap"); got != "swipe" {
		t.Errorf("StringParam: got %q", got)
	}
	if got := StringParam(params, "missing", "tap"); got != "tap" {
		t.Errorf("StringParam default: got %q", got)
	}
	if got := StringParam(params, "empty", "tap"); got != "tap" {
		t.Errorf("StringParam empty: got %q", got)
	}
	if got := IntParam(params, "distance", 0); got != 300 {
		t.Errorf("IntParam: got %d", got)
	}
	if got := IntParam(params, "missing", 7); got != 7 {
		t.Errorf("IntParam default: got %d", got)
	}
	if !BoolParam(params, "mid_capture", false) {
		t.Error("BoolParam: got false")
	}
	if !HasParam(params, "empty") || HasParam(params, "missing") {
		t.Error("HasParam misreported presence")
	}
}
