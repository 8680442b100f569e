// Package pipeline turns raw article Markdown into final HTML through a
// fixed, ordered sequence of transformation stages: diagram expansion, math
// expansion, syntax highlighting, Markdown conversion. Stages that are
// disabled by configuration become the identity transform, so composition
// stays fixed and branching stays out of the render path.
package pipeline

import (
	"gitblog/blog/config"
)

// DiagramRenderer is the external diagram-rendering capability consumed by
// the diagram stage.
type DiagramRenderer interface {
	RenderDiagram(code string) (string, error)
}

// MathTypesetter is the external math-typesetting capability consumed by the
// math stage.
type MathTypesetter interface {
	RenderMath(latex string, displayMode bool) (string, error)
}

// Stage transforms a document string and hands it to the next stage.
type Stage interface {
	Name() string
	Transform(text string) (string, error)
}

// identity is the disabled-stage pass-through.
type identity struct {
	name string
}

func (s identity) Name() string                          { return s.name }
func (s identity) Transform(text string) (string, error) { return text, nil }

// Pipeline runs its stages in order over one document.
type Pipeline struct {
	stages []Stage
}

// New assembles the pipeline from configuration. The stage order is fixed;
// per-stage enable flags only decide whether the real implementation or the
// identity is composed in.
func New(cfg *config.Config, diagrams DiagramRenderer, math MathTypesetter) *Pipeline {
	var diagramS Stage = identity{name: "diagrams"}
	if cfg.Modules.Diagrams {
		diagramS = &diagramStage{renderer: diagrams, format: cfg.Diagrams.OutputFormat}
	}

	var mathS Stage = identity{name: "math"}
	if cfg.Modules.Math {
		mathS = &mathStage{typesetter: math, speakText: cfg.Math.SpeakText}
	}

	var highlightS Stage = identity{name: "highlight"}
	if cfg.Modules.Highlight {
		highlightS = newHighlightStage()
	}

	return &Pipeline{
		stages: []Stage{
			diagramS,
			mathS,
			highlightS,
			newMarkdownStage(cfg.Markdown, cfg.Modules.Math),
		},
	}
}

// Render runs the document through every stage in order and returns the
// final HTML.
func (p *Pipeline) Render(doc string) (string, error) {
	var err error
	for _, stage := range p.stages {
		doc, err = stage.Transform(doc)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
