package native

import (
	"fmt"

	"git.sr.ht/~mekyt/latex2mathml"
)

const mathmlNamespace = "http://www.w3.org/1998/Math/MathML"

// RenderMath typesets a single LaTeX expression to MathML. The conversion
// library panics on malformed input, so failures are recovered and returned
// as errors; the math stage degrades per-expression rather than aborting the
// document.
func (r *Renderer) RenderMath(latex string, displayMode bool) (markup string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("mathml conversion failed: %v", rec)
		}
	}()

	display := "inline"
	if displayMode {
		display = "block"
	}
	markup = latex2mathml.Convert(latex, mathmlNamespace, display, 2)
	return markup, nil
}
