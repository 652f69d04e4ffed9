// Package report renders study results and dataset profiles as text, JSON or
// YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/peekknuf/wineqa/internal/analysis"
	"github.com/peekknuf/wineqa/internal/profiler"
)

// Format selects the output encoding
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the accepted --format values
var Formats = []Format{Text, JSON, YAML}

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Render writes v to w. Text output understands *analysis.Report and
// []profiler.Profile; JSON and YAML accept any value.
func Render(w io.Writer, format Format, v any) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case Text, "":
		var out string
		switch v := v.(type) {
		case *analysis.Report:
			out = reportText(v)
		case []profiler.Profile:
			out = profilesText(v)
		default:
			return fmt.Errorf("no text rendering for %T", v)
		}
		_, err := io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
