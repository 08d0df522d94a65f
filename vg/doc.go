// Package vg is a retained-mode vector backend for art.
//
// A Backend builds Nodes (groups, clipping rectangles, shapes and text) and
// Canvases. A Canvas owns a root Node and rasterizes the tree with gg on
// Render; the same tree can be written out as SVG with EncodeSVG, saved as
// PNG, or shown in an ebiten window with Run.
//
// # Nodes
//
// Every Node carries a local affine transform, visibility, a group opacity
// and, for renderables, a fill and stroke. Clip nodes restrict their
// children to a Width x Height rectangle in their local space, for drawing
// and hit testing alike. The tree methods (AddChild, AddChildBefore,
// RemoveChild) panic on programming errors such as cycles or foreign
// siblings.
//
// # Events
//
// Canvas.Pointer feeds one pointer sample into the canvas. Hover changes
// produce mouseout and mouseover, movement produces mousemove, button
// transitions produce mousedown and mouseup, and a release over the node
// that received the press produces click. Events are delivered to the hit
// node first and then to each ancestor. InjectPress, InjectMove and
// InjectRelease queue synthetic samples for tests and scripted input.
//
// # Scripts
//
// LoadScript parses a JSON list of click, drag, move, wait and screenshot
// steps. Set RunConfig.Script to replay it in a window; Run returns once
// the last step has finished.
//
// # Text
//
// Text uses the Go font family from golang.org/x/image. The family name
// selects proportional or monospace faces ("mono", "monospace", "courier"
// and "Go Mono" pick the monospace set); weight and style pick bold and
// italic variants.
package vg
