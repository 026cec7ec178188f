package convert

import (
	"context"
	"errors"
)

// describerResponse is a canned vision-model answer describing a two-box
// sketch: Start -> Done.
const describerResponse = "The sketch shows a small flow.\n\n" +
	"```json\n" +
	`{
  "diagram_type": "flowchart",
  "orientation": "TD",
  "elements": [
    {"id": "start", "label": "Start", "type": "terminator"},
    {"id": "done", "label": "Done", "type": "terminator"}
  ],
  "edges": [
    {"source": "start", "target": "done", "label": "ok"}
  ]
}` + "\n```\n\nBoth boxes are rounded."

// validDrawioDoc passes the structural draw.io checks.
const validDrawioDoc = `<mxfile host="app.diagrams.net">
  <diagram id="d1" name="Page-1">
    <mxGraphModel dx="800" dy="600" grid="1">
      <root>
        <mxCell id="0"/>
        <mxCell id="1" parent="0"/>
        <mxCell id="start" value="Start" vertex="1" parent="1">
          <mxGeometry x="40" y="40" width="120" height="40" as="geometry"/>
        </mxCell>
        <mxCell id="done" value="Done" vertex="1" parent="1">
          <mxGeometry x="40" y="140" width="120" height="40" as="geometry"/>
        </mxCell>
        <mxCell id="e1" edge="1" parent="1" source="start" target="done">
          <mxGeometry relative="1" as="geometry"/>
        </mxCell>
      </root>
    </mxGraphModel>
  </diagram>
</mxfile>`

// fakeCompiler is a MermaidCompiler double with a scripted verdict per call.
type fakeCompiler struct {
	available bool
	verdicts  []error
	calls     int
}

func (f *fakeCompiler) Available() bool { return f.available }

func (f *fakeCompiler) Compile(_ context.Context, _ string) error {
	i := f.calls
	f.calls++
	if i < len(f.verdicts) {
		return f.verdicts[i]
	}
	if len(f.verdicts) > 0 {
		return f.verdicts[len(f.verdicts)-1]
	}
	return nil
}

// passingCompiler accepts everything.
func passingCompiler() *fakeCompiler {
	return &fakeCompiler{available: true}
}

// failingCompiler rejects everything with the same message.
func failingCompiler(msg string) *fakeCompiler {
	return &fakeCompiler{available: true, verdicts: []error{errors.New(msg)}}
}

// testImage is a stand-in for sketch bytes.
var testImage = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

func testRequest(f Format) Request {
	return Request{
		Image:     testImage,
		ImageMIME: "image/png",
		Format:    f,
		JobID:     "job-test",
	}
}
