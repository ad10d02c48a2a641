// Package riso simulates multi-pass risograph printing.
//
// # Overview
//
// riso is a pure Go implementation of the numeric pipeline behind a
// risograph print: a source bitmap is separated into one density layer
// per spot ink, each layer is screened through a halftone pattern, and
// the layers are pressed onto a paper base one at a time with the
// imperfections of a real duplicator (registration drift, paper grain,
// ink starvation).
//
// # Quick Start
//
//	import "github.com/gogpu/riso"
//
//	src := riso.FromImage(img)
//	inks := []riso.Ink{
//	    riso.MustInk("fluorescent-pink"),
//	    riso.MustInk("medium-blue"),
//	}
//
//	r := riso.NewRenderer()
//	defer r.Close()
//
//	out, err := r.Render(src, inks, riso.DefaultHalftone(), riso.DefaultComposite())
//
// # Pipeline
//
// The stages run strictly forward:
//
//   - Decompose: non-negative least squares splits the image into one
//     density map per ink (decompose.go).
//   - Synthesize: each density map becomes a dot-coverage map through an
//     AM or FM halftone screen rotated to the ink's angle (halftone.go).
//   - Defects: a deterministic scuff mask starves patches of ink, and
//     random grain perturbs coverage at press time (defects.go).
//   - Composite: each layer multiplies its transmittance into the
//     accumulating output, starting from the paper color (composite.go).
//
// Decomposition and screening are row-parallel; compositing applies inks
// in list order, which matters because each layer rounds to 8-bit before
// the next is pressed.
//
// # Determinism
//
// Dot placement and scuffing are pure functions of pixel coordinates and
// configuration, so the same input always produces the same screens.
// Grain and misregistration intentionally vary between renders; pass a
// fixed generator with WithRand for reproducible output.
package riso

// Version is the current version of the library.
const Version = "0.2.0"
