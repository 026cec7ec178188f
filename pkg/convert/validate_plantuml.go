package convert

import (
	"context"
	"strings"
)

// PlantUMLValidator heuristically checks PlantUML source: the start/end
// markers must be present and the body must use at least one recognized
// element keyword. There is no local PlantUML toolchain to lean on, so this
// stays a structural sanity check rather than a full parse.
type PlantUMLValidator struct{}

// NewPlantUMLValidator builds a PlantUMLValidator.
func NewPlantUMLValidator() *PlantUMLValidator {
	return &PlantUMLValidator{}
}

var plantumlKeywords = []string{
	"participant", "actor", "boundary", "control", "entity", "database",
	"class", "interface", "enum", "abstract",
	"state", "note", "partition", "package", "component",
	"start", "stop", "if (", "repeat", "while (",
	"->", "-->", "..>", "<-", "<--",
}

func (v *PlantUMLValidator) Validate(_ context.Context, code string) Outcome {
	if strings.TrimSpace(code) == "" {
		return Outcome{Issues: []string{emptyCodeIssue}}
	}

	var issues []string
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, "@startuml") {
		issues = append(issues, "Code must start with @startuml")
	}
	if !strings.HasSuffix(trimmed, "@enduml") {
		issues = append(issues, "Code must end with @enduml")
	}

	body := trimmed
	body = strings.TrimPrefix(body, "@startuml")
	body = strings.TrimSuffix(body, "@enduml")
	if !containsAny(body, plantumlKeywords) {
		issues = append(issues, "Diagram body contains no recognized PlantUML elements")
	}

	if len(issues) > 0 {
		return Outcome{Issues: issues}
	}
	return Outcome{Valid: true, NormalizedCode: trimmed}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
