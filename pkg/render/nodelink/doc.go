// Package nodelink renders a computed family-tree layout as a classic
// node-link diagram via Graphviz.
//
// The pan/zoom canvas on the site consumes the JSON layout directly; this
// package exists for everything else: printable SVG and PNG exports and DOT
// output for external tooling. Generation bands become Graphviz ranks, so
// the rendered diagram keeps the same vertical structure as the canvas.
//
// Rendering happens in-process via [github.com/goccy/go-graphviz]; no
// graphviz binary is required.
package nodelink
