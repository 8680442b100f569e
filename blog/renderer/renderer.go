// Package renderer reads one article's body file and drives it through the
// content pipeline. There is no caching: every call re-reads and re-renders.
package renderer

import (
	"fmt"

	"github.com/spf13/afero"

	"gitblog/blog/pipeline"
)

type Renderer struct {
	fsys     afero.Fs
	pipeline *pipeline.Pipeline
}

func New(fsys afero.Fs, p *pipeline.Pipeline) *Renderer {
	return &Renderer{fsys: fsys, pipeline: p}
}

// RenderFile renders the article body at path to final HTML. A missing or
// unreadable file fails the render; stage-level issues degrade locally
// inside the pipeline instead of propagating here.
func (r *Renderer) RenderFile(path string) (string, error) {
	data, err := afero.ReadFile(r.fsys, path)
	if err != nil {
		return "", fmt.Errorf("read article body: %w", err)
	}
	return r.pipeline.Render(string(data))
}
