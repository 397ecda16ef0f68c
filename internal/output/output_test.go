package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fnErr := fn()
	w.Close()
	os.Stdout = old

	if fnErr != nil {
		t.Fatal(fnErr)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintJSONCompact(t *testing.T) {
	result := SendResult{
		OK:     true,
		Action: "tap",
		ElemID: "elem_3",
		Center: "(60,45)",
		Status: "sent elem_3 (60,45) capture=post",
	}

	out := captureStdout(t, func() error { return PrintJSON(result) })

	if strings.Count(out, "\n") > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded SendResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ElemID != "elem_3" {
		t.Errorf("elem_id: got %q", decoded.ElemID)
	}
	if strings.Contains(out, `"error"`) {
		t.Error("empty error field should be omitted")
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	result := StopResult{OK: true, File: "final.png"}

	out := captureStdout(t, func() error { return PrintPrettyJSON(result) })

	if strings.Count(out, "\n") <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
	var decoded StopResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.File != "final.png" {
		t.Errorf("file: got %q", decoded.File)
	}
}

func TestPrintYAML(t *testing.T) {
	result := SendResult{OK: false, Action: "swipe", Status: "bridge error: device busy", Error: "device busy"}

	out := captureStdout(t, func() error { return PrintYAML(result) })

	var decoded SendResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Error != "device busy" {
		t.Errorf("error: got %q", decoded.Error)
	}
}

func TestPrintHonorsFormat(t *testing.T) {
	oldFormat, oldPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = oldFormat, oldPretty }()

	OutputFormat = FormatJSON
	PrettyOutput = false
	out := captureStdout(t, func() error { return Print(StopResult{OK: true}) })
	if !strings.HasPrefix(out, "{") {
		t.Errorf("expected JSON, got:\n%s", out)
	}

	OutputFormat = FormatYAML
	out = captureStdout(t, func() error { return Print(StopResult{OK: true}) })
	if !strings.HasPrefix(out, "ok:") {
		t.Errorf("expected YAML, got:\n%s", out)
	}

	OutputFormat = Format("toml")
	if err := Print(StopResult{}); err == nil {
		t.Error("unknown format should error")
	}
}
