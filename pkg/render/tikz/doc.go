// Package tikz emits an annotated citation graph as TikZ markup.
//
// The output declares one pair of styles per community in use (a regular
// style and a bordered "representative" variant, both filled with the
// community's palette color), then one \node per graph node at its layout
// position, then every edge inside the background layer so edges render
// behind nodes:
//
//	\tikzstyle{c0 vertex} = [vertex, fill=cyan!42]
//	\tikzstyle{c0 vertex border} = [border, fill=cyan!42]
//	...
//	\node[c0 vertex] (a) at (1.25, -3.00) {\LARGE [1]};
//	\node[c0 vertex border] (b) at (0.00, 0.50) {\LARGE [2]};
//	\begin{pgfonlayer}{bg}
//	\path[edge] (a) -- (b);
//	\end{pgfonlayer}
//
// Representatives are declared after every other node so they are drawn on
// top. Node identities are used verbatim as TikZ node names; callers pass
// graphs whose identities were made markup-safe (see graph.Sanitize).
//
// The default output is a fragment meant to be \input into a document that
// loads TikZ and declares the "bg" layer. Options.Standalone wraps it in a
// compilable standalone document instead.
package tikz
