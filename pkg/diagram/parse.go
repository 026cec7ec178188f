package diagram

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// ExtractJSON locates the spec JSON inside free-form model output.
//
// The model is asked for a JSON object first and prose after, but output
// drifts: the object may be fenced, preceded by commentary, or missing
// entirely. A fenced ```json block is preferred; otherwise the first
// balanced top-level object is taken. Everything outside the chosen span
// is returned as the narrative, with stray fence markers removed.
//
// ok is false when no candidate object was found; narrative is then the
// whole text.
func ExtractJSON(text string) (jsonBlock, narrative string, ok bool) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		jsonBlock = m[1]
	} else {
		jsonBlock = firstBalancedObject(text)
	}

	if jsonBlock == "" {
		return "", strings.TrimSpace(text), false
	}

	narrative = strings.Replace(text, jsonBlock, "", 1)
	narrative = strings.ReplaceAll(narrative, "```json", "")
	narrative = strings.ReplaceAll(narrative, "```", "")
	return jsonBlock, strings.TrimSpace(narrative), true
}

// firstBalancedObject scans for the first '{' and returns the span up to
// its matching '}'. Braces inside JSON strings are skipped.
func firstBalancedObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// ParseSpec decodes and normalizes a spec from a JSON object string.
// The object is checked against the spec schema before decoding, so a
// JSON object that is not a diagram spec (e.g. the model echoing an
// unrelated example) is rejected rather than half-decoded.
func ParseSpec(jsonBlock string) (Spec, error) {
	if err := ValidateSpecJSON(jsonBlock); err != nil {
		return Spec{}, fmt.Errorf("spec schema: %w", err)
	}

	var s Spec
	if err := json.Unmarshal([]byte(jsonBlock), &s); err != nil {
		return Spec{}, fmt.Errorf("decode spec: %w", err)
	}
	return s.Normalize(), nil
}

// Extract pulls a Spec and narrative out of raw model output. Any failure
// (no JSON, malformed JSON, schema mismatch) degrades to an empty spec
// with ok=false; the caller decides what narrative to substitute.
func Extract(text string) (Spec, string, bool) {
	jsonBlock, narrative, found := ExtractJSON(text)
	if !found {
		return Empty(), narrative, false
	}

	spec, err := ParseSpec(jsonBlock)
	if err != nil {
		return Empty(), narrative, false
	}
	return spec, narrative, true
}
