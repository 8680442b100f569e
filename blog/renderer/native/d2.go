package native

import (
	"context"
	"fmt"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	d2log "oss.terrastruct.com/d2/lib/log"
	"oss.terrastruct.com/util-go/go2"
)

const defaultThemeID = int64(0)

// RenderDiagram renders D2 source to SVG markup.
func (r *Renderer) RenderDiagram(code string) (string, error) {
	r.ensureInitialized()

	// Acquire worker
	inst := <-r.pool
	defer func() { r.pool <- inst }() // Release worker

	layout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}

	compileOpts := &d2lib.CompileOptions{
		Ruler: inst.ruler,
	}
	compileOpts.LayoutResolver = func(engine string) (d2graph.LayoutGraph, error) {
		return layout, nil
	}

	themeID := defaultThemeID
	renderOpts := &d2svg.RenderOpts{
		ThemeID: &themeID,
		Pad:     go2.Pointer(int64(0)),
	}

	ctx := d2log.WithDefault(context.Background())

	diagram, _, err := d2lib.Compile(ctx, code, compileOpts, renderOpts)
	if err != nil {
		return "", fmt.Errorf("d2 compile failed: %w", err)
	}

	out, err := d2svg.Render(diagram, renderOpts)
	if err != nil {
		return "", fmt.Errorf("d2 render failed: %w", err)
	}

	return string(out), nil
}
