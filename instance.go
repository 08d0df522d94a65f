package art

import (
	"fmt"
	"slices"
)

// applyFunc is a kind's prop-application strategy. prev is the last applied
// props (zero on creation).
type applyFunc func(inst *Instance, next, prev *Props) error

// Instance is the host-side record of one scene node. It is created by
// Host.CreateInstance and owned by its position in the tree until removed.
type Instance struct {
	kind  Kind
	node  Node
	shape ShapeNode // set for KindShape
	text  TextNode  // set for KindText
	apply applyFunc

	props  Props
	events subscriptions

	// Shape redraw memo.
	pathSrc    string
	parsedPath *Path
	drawnPath  *Path
	drawnDelta int

	// Text redraw memo.
	textContent string

	parent   hostParent
	children []*Instance
	released bool
}

// Kind returns the primitive kind chosen at creation.
func (inst *Instance) Kind() Kind { return inst.kind }

// Node returns the backend scene node.
func (inst *Instance) Node() Node { return inst.node }

// Props returns the last successfully applied props.
func (inst *Instance) Props() Props { return inst.props }

// Parent returns the parent instance, or nil when the instance is detached or
// attached directly to a container.
func (inst *Instance) Parent() *Instance {
	p, _ := inst.parent.(*Instance)
	return p
}

// Container returns the container the instance is attached to directly, or
// nil.
func (inst *Instance) Container() *Container {
	c, _ := inst.parent.(*Container)
	return c
}

// Children returns the attached child instances in order. The returned slice
// MUST NOT be mutated by the caller.
func (inst *Instance) Children() []*Instance { return inst.children }

// Released reports whether the instance has been removed and torn down.
func (inst *Instance) Released() bool { return inst.released }

func (inst *Instance) String() string {
	return fmt.Sprintf("%s@%p", inst.kind, inst)
}

// update applies next against the last applied props and records next as the
// new snapshot on success.
func (inst *Instance) update(next Props) error {
	if err := inst.apply(inst, &next, &inst.props); err != nil {
		return err
	}
	inst.props = next
	return nil
}

// release tears down the event bridge of inst and its attached subtree.
func (inst *Instance) release() {
	if inst.released {
		return
	}
	inst.released = true
	inst.releaseListeners()
	for _, c := range inst.children {
		c.release()
	}
}

// isAncestorOf reports whether inst is p or one of p's ancestors.
func (inst *Instance) isAncestorOf(p hostParent) bool {
	for cur, ok := p.(*Instance); ok && cur != nil; cur, ok = cur.parent.(*Instance) {
		if cur == inst {
			return true
		}
	}
	return false
}

// hostParent is anything instances attach to: another instance or a container.
type hostParent interface {
	parentNode() Node
	childSlice() *[]*Instance
}

func (inst *Instance) parentNode() Node          { return inst.node }
func (inst *Instance) childSlice() *[]*Instance { return &inst.children }

// link records inst as a child of p at index i, or at the end when i < 0.
func (inst *Instance) link(p hostParent, i int) {
	s := p.childSlice()
	if i < 0 || i > len(*s) {
		i = len(*s)
	}
	*s = slices.Insert(*s, i, inst)
	inst.parent = p
}

// unlink removes inst from its parent's child list.
func (inst *Instance) unlink() {
	if inst.parent == nil {
		return
	}
	s := inst.parent.childSlice()
	if i := slices.Index(*s, inst); i >= 0 {
		*s = slices.Delete(*s, i, i+1)
	}
	inst.parent = nil
}

// Container is the root mount point: top-level instances attach to the
// canvas root node through it.
type Container struct {
	canvas   Canvas
	children []*Instance
}

// NewContainer returns a container over c.
func NewContainer(c Canvas) *Container {
	return &Container{canvas: c}
}

// Canvas returns the canvas this container mounts into.
func (c *Container) Canvas() Canvas { return c.canvas }

// Children returns the top-level instances in order. The returned slice MUST
// NOT be mutated by the caller.
func (c *Container) Children() []*Instance { return c.children }

func (c *Container) parentNode() Node          { return c.canvas.Root() }
func (c *Container) childSlice() *[]*Instance { return &c.children }

// Child is a value the diffing engine passes to tree operations: an
// *Instance or a TextInstance.
type Child interface {
	isChild()
}

func (*Instance) isChild() {}

// TextInstance is the engine's representation of a bare text child. Text is
// always flattened into a Text primitive's props, so a TextInstance can never
// be attached.
type TextInstance string

func (TextInstance) isChild() {}

func asInstance(c Child) (*Instance, error) {
	switch v := c.(type) {
	case *Instance:
		if v == nil {
			return nil, fmt.Errorf("%w: nil instance", ErrInvalidTreeOp)
		}
		return v, nil
	case TextInstance:
		return nil, fmt.Errorf("%w: bare text %q cannot be a child node", ErrInvalidTreeOp, string(v))
	case nil:
		return nil, fmt.Errorf("%w: nil child", ErrInvalidTreeOp)
	}
	return nil, fmt.Errorf("%w: foreign child type %T", ErrInvalidTreeOp, c)
}
