package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sketchflow/sketchflow/pkg/diagram"
)

const describerPromptTemplate = `You are an expert at reading hand-drawn and digital sketches of diagrams.

Analyze the attached sketch image and describe the diagram it depicts.

Respond with a fenced JSON block describing the diagram structure, followed
by a short narrative description of anything the JSON cannot capture.

The JSON object must have this shape:

` + "```json" + `
{
  "diagram_type": "flowchart|sequence|class|state|erd|gantt",
  "orientation": "TD|LR|BT|RL",
  "elements": [{"id": "...", "label": "...", "type": "process|decision|terminator|data|database|actor|note|other", "group": "..."}],
  "edges": [{"source": "...", "target": "...", "label": "...", "direction": "forward|back|both|none"}],
  "groups": [{"id": "...", "label": "..."}],
  "notes": "anything ambiguous or unreadable"
}
` + "```" + `

Identify every box, shape, connector and label you can read. Preserve the
drawn identifiers and labels verbatim. If a label is unreadable, say so in
"notes" rather than inventing one.%s`

// describerPrompt builds the vision prompt, folding in optional user notes.
func describerPrompt(notes string) string {
	extra := ""
	if strings.TrimSpace(notes) != "" {
		extra = "\n\nThe user added these hints about the sketch:\n" + strings.TrimSpace(notes)
	}
	return fmt.Sprintf(describerPromptTemplate, extra)
}

const mermaidRules = `Rules:
- Output ONLY the Mermaid code, with no fences, commentary or explanation.
- Use short alphanumeric node identifiers with bracketed labels.
- Quote labels that contain special characters.
- Every edge must reference declared nodes.`

const drawioRules = `Rules:
- Output ONLY the draw.io XML, with no fences, commentary or explanation.
- The document root must be <mxfile> containing <diagram> containing
  <mxGraphModel> containing <root>.
- The <root> element must begin with the two base cells
  <mxCell id="0"/> and <mxCell id="1" parent="0"/>.
- Every shape is an <mxCell vertex="1" parent="1"> with an <mxGeometry>.
- Every connector is an <mxCell edge="1" parent="1"> with source and
  target attributes referencing shape ids.
- Lay shapes out on a grid so they do not overlap.`

const plantumlRules = `Rules:
- Output ONLY the PlantUML code, with no fences, commentary or explanation.
- The code must start with @startuml and end with @enduml.
- Use the element keywords appropriate to the diagram kind.`

// generationPrompt builds the generator prompt for a format. It prefers the
// structured spec when one was extracted; otherwise it falls back to the
// narrative description. Correction feedback from a failed validation is
// appended in both cases so retries actually see it.
func generationPrompt(f Format, s State) string {
	var b strings.Builder

	switch f {
	case FormatMermaid:
		kind := mermaidKind(s)
		fmt.Fprintf(&b, "You are an expert Mermaid author. Produce a Mermaid %s diagram", kind)
	case FormatDrawio:
		b.WriteString("You are an expert draw.io author. Produce a complete draw.io XML document")
	case FormatPlantUML:
		fmt.Fprintf(&b, "You are an expert PlantUML author. Produce a PlantUML %s diagram", plantumlKind(s))
	}

	if s.Spec != nil && !s.Spec.IsEmpty() {
		b.WriteString(" from the following structured description of a sketch:\n\n")
		if enc, err := json.MarshalIndent(s.Spec, "", "  "); err == nil {
			b.Write(enc)
		}
		if strings.TrimSpace(s.Narrative) != "" {
			b.WriteString("\n\nAdditional context:\n")
			b.WriteString(strings.TrimSpace(s.Narrative))
		}
	} else {
		b.WriteString(" from the following description of a sketch:\n\n")
		b.WriteString(strings.TrimSpace(s.Narrative))
	}

	b.WriteString("\n\n")
	switch f {
	case FormatMermaid:
		b.WriteString(mermaidRules)
	case FormatDrawio:
		b.WriteString(drawioRules)
	case FormatPlantUML:
		b.WriteString(plantumlRules)
	}

	// AttemptCount is already advanced for the attempt this prompt is for,
	// so on a retry it reads 2 and up.
	if strings.TrimSpace(s.Corrections) != "" {
		fmt.Fprintf(&b, "\n\nYour previous output failed validation. Apply these validation instructions strictly (attempt %d):\n%s",
			s.AttemptCount, strings.TrimSpace(s.Corrections))
	}

	return b.String()
}

// mermaidKind picks the Mermaid diagram header family from the extracted
// spec, falling back to keyword sniffing over the narrative.
func mermaidKind(s State) string {
	if s.Spec != nil {
		switch s.Spec.Kind {
		case diagram.KindSequence:
			return "sequenceDiagram"
		case diagram.KindClass:
			return "classDiagram"
		case diagram.KindState:
			return "stateDiagram-v2"
		case diagram.KindERD:
			return "erDiagram"
		case diagram.KindGantt:
			return "gantt"
		}
	}
	desc := strings.ToLower(s.Narrative)
	switch {
	case strings.Contains(desc, "sequence"):
		return "sequenceDiagram"
	case strings.Contains(desc, "class diagram"):
		return "classDiagram"
	case strings.Contains(desc, "state machine"), strings.Contains(desc, "state diagram"):
		return "stateDiagram-v2"
	case strings.Contains(desc, "entity relationship"), strings.Contains(desc, " er diagram"):
		return "erDiagram"
	case strings.Contains(desc, "gantt"):
		return "gantt"
	}
	return "flowchart"
}

func plantumlKind(s State) string {
	if s.Spec != nil {
		switch s.Spec.Kind {
		case diagram.KindSequence:
			return "sequence"
		case diagram.KindClass:
			return "class"
		case diagram.KindState:
			return "state"
		}
	}
	return "activity"
}
