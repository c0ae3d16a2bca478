// Package render holds what the diagram emitters share.
//
// # Palette
//
// A [Palette] maps community ids to color names. It is an explicit value
// threaded through every emitter: ids within the palette get their own
// color, later ids either wrap around or receive the fallback color.
//
//	p := render.DefaultPalette()   // cyan, red, green, violet; fallback black
//	p.Color(1)                      // "red"
//	p.Color(9)                      // "black"
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The node-link renderer
// uses them for its PDF and PNG outputs.
//
// # Emitters
//
//   - [tikz]: TikZ markup, the primary output
//   - [nodelink]: Graphviz DOT with pinned positions, rendered to SVG
//
// [tikz]: github.com/isplab/citegraph/pkg/render/tikz
// [nodelink]: github.com/isplab/citegraph/pkg/render/nodelink
package render
