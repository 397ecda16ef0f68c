// Package output serializes command results to stdout.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/bridgectl/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// SendResult is the top-level output of the `send` command.
type SendResult struct {
	OK            bool   `yaml:"ok"                       json:"ok"`
	Action        string `yaml:"action"                   json:"action"`
	ElemID        string `yaml:"elem_id,omitempty"        json:"elem_id,omitempty"`
	Center        string `yaml:"center,omitempty"         json:"center,omitempty"`
	CaptureTiming string `yaml:"capture_timing,omitempty" json:"capture_timing,omitempty"`
	Status        string `yaml:"status"                   json:"status"`
	Error         string `yaml:"error,omitempty"          json:"error,omitempty"`
}

// StopResult is the top-level output of the `stop` command.
type StopResult struct {
	OK     bool   `yaml:"ok"                json:"ok"`
	ElemID string `yaml:"elem_id,omitempty" json:"elem_id,omitempty"`
	File   string `yaml:"file,omitempty"    json:"file,omitempty"`
	Error  string `yaml:"error,omitempty"   json:"error,omitempty"`
}

// GrabResult is the top-level output of the `grab` command.
type GrabResult struct {
	Found     bool            `yaml:"found"               json:"found"`
	Selection model.Selection `yaml:"selection,omitempty" json:"selection,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// IsOutputPiped reports whether stdout is redirected away from a terminal.
func IsOutputPiped() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}
