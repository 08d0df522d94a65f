// Package art is a render-host adapter that applies a declarative tree of
// vector primitives to a retained-mode scene graph.
//
// A tree-diffing engine drives a [Host] through the [HostConfig] contract:
// it creates instances from one of four tags (ClippingRectangle, Group,
// Shape, Text), arranges them under a [Container], and commits prop updates.
// The host turns each update into the minimal set of calls on the backend
// [Node] by diffing the next [Props] against the last applied ones.
//
//	host := art.NewHost(vg.New())
//	canvas, _ := host.Backend().NewCanvas(400, 300)
//	root := art.NewContainer(canvas)
//
//	inst, err := host.CreateInstance("Shape", art.Props{
//		D:    art.NewPath().MoveTo(0, 0).LineTo(100, 0).LineTo(50, 80).Close(),
//		Fill: art.MustHex("#3a7"),
//	}, root, art.HostContext{})
//	if err != nil { ... }
//	host.AppendChildToContainer(root, inst)
//
// Most programs do not call the contract directly. A [Surface] owns the
// canvas and a [MountPoint] from a [Reconciler] such as the one in package
// tree:
//
//	s := art.NewSurface[[]tree.Element](backend, tree.New(art.NewHost(backend)))
//	err := s.Attach(400, 300, elements)
//	...
//	err = s.Update(400, 300, nextElements)
//	...
//	err = s.Detach()
//
// # Backends
//
// A [Backend] constructs nodes and canvases. Nodes implement [Node] and,
// depending on kind, [ShapeNode] or [TextNode]. Optional capabilities are
// discovered with type assertions: [Blender] for opacity, [Sizer] for group
// sizes, [LinearFiller], [RadialFiller] and [ImageFiller] for gradient and
// pattern fills, [Resizer] and [Renderer] on canvases. Package vg is the
// bundled backend.
//
// # Events
//
// Listener props (OnClick, OnMouseMove, OnMouseOver, OnMouseOut, OnMouseUp,
// OnMouseDown) are bridged to backend subscriptions. Each instance holds at
// most one subscription per event type; replacing a listener does not
// resubscribe. Removing an instance releases every subscription it and its
// subtree hold.
//
// # Logging
//
// Nothing is logged by default. Call [SetLogger] to receive debug records for
// host lifecycle operations.
package art
