package pipeline

import (
	"encoding/base64"
	"html"
	"regexp"
	"strings"

	"gitblog/blog/segment"
)

// diagramBlockRegex matches one @startd2/@endd2 block, non-greedy to the
// first end marker.
var diagramBlockRegex = regexp.MustCompile(`(?s)@startd2[ \t]*\r?\n(.*?)\r?\n@endd2`)

// diagramStage expands diagram blocks inside prose spans. Rendering failure
// is non-fatal: the block is replaced with a visible inline annotation and
// the stage moves on.
type diagramStage struct {
	renderer DiagramRenderer
	format   string
}

func (s *diagramStage) Name() string { return "diagrams" }

func (s *diagramStage) Transform(doc string) (string, error) {
	return segment.MapProse(doc, s.expandProse), nil
}

func (s *diagramStage) expandProse(prose string) string {
	for {
		m := diagramBlockRegex.FindStringSubmatchIndex(prose)
		if m == nil {
			return prose
		}
		code := strings.TrimSpace(prose[m[2]:m[3]])
		prose = prose[:m[0]] + s.expand(code) + prose[m[1]:]
	}
}

func (s *diagramStage) expand(code string) string {
	svg, err := s.renderer.RenderDiagram(code)
	if err != nil {
		return `<b style="color:red">` + html.EscapeString(err.Error()) + `</b>`
	}
	if s.format == "img" {
		encoded := base64.StdEncoding.EncodeToString([]byte(svg))
		return `<img alt="generated D2 diagram" src="data:image/svg+xml;base64,` + encoded + `">`
	}
	return svg
}
