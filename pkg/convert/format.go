// Package convert implements the sketch-to-diagram conversion pipeline:
// describe the sketch once with a vision model, then generate and validate
// format-specific diagram code in a bounded retry loop that feeds
// validator corrections back into the next generation attempt.
package convert

import (
	"fmt"
	"strings"
)

// Format is a supported diagram code target.
type Format string

// Supported target formats.
const (
	// FormatMermaid is Mermaid graph markup.
	FormatMermaid Format = "mermaid"
	// FormatDrawio is draw.io (diagrams.net) XML.
	FormatDrawio Format = "drawio"
	// FormatPlantUML is PlantUML markup.
	FormatPlantUML Format = "plantuml"
)

// ParseFormat maps a user-supplied format string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMermaid:
		return FormatMermaid, nil
	case FormatDrawio:
		return FormatDrawio, nil
	case FormatPlantUML:
		return FormatPlantUML, nil
	}
	return "", fmt.Errorf("unsupported target format: %q", s)
}

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatMermaid, FormatDrawio, FormatPlantUML}
}
