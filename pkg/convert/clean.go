package convert

import (
	"html"
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\s*\n?(.*?)```")

// stripFences removes a surrounding markdown code fence, if any, and trims
// whitespace. Models add fences no matter how firmly the prompt forbids them.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// cleanOutput sanitizes raw generator output for a format.
func cleanOutput(f Format, raw string) string {
	switch f {
	case FormatDrawio:
		return cleanDrawio(raw)
	case FormatPlantUML:
		return cleanPlantUML(raw)
	default:
		return stripFences(raw)
	}
}

// cleanDrawio strips fences, undoes HTML entity escaping the model sometimes
// applies to the whole document, and trims surrounding prose down to the
// <mxfile> element span.
func cleanDrawio(raw string) string {
	s := stripFences(raw)
	if strings.Contains(s, "&lt;mxfile") {
		s = html.UnescapeString(s)
	}
	start := strings.Index(s, "<mxfile")
	end := strings.LastIndex(s, "</mxfile>")
	if start >= 0 && end > start {
		s = s[start : end+len("</mxfile>")]
	}
	return strings.TrimSpace(s)
}

// cleanPlantUML strips fences and trims surrounding prose down to the
// @startuml..@enduml span.
func cleanPlantUML(raw string) string {
	s := stripFences(raw)
	start := strings.Index(s, "@startuml")
	end := strings.LastIndex(s, "@enduml")
	if start >= 0 && end > start {
		s = s[start : end+len("@enduml")]
	}
	return strings.TrimSpace(s)
}
