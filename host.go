package art

import (
	"fmt"
	"slices"
	"time"
)

// HostContext is threaded through creation by the diffing engine. This host
// needs none, so it is always empty.
type HostContext struct{}

// HostConfig is the full lifecycle contract a tree-diffing engine drives.
// Every method is required, including those this host implements as no-ops.
type HostConfig interface {
	GetRootHostContext(root *Container) HostContext
	GetChildHostContext(parent HostContext, tag string, root *Container) HostContext
	GetPublicInstance(inst *Instance) *Instance
	PrepareForCommit(root *Container)
	ResetAfterCommit(root *Container)

	CreateInstance(tag string, props Props, root *Container, ctx HostContext) (*Instance, error)
	CreateTextInstance(text string, root *Container, ctx HostContext) TextInstance
	AppendInitialChild(parent *Instance, child Child) error
	FinalizeInitialChildren(inst *Instance, tag string, props Props, root *Container) bool
	PrepareUpdate(inst *Instance, tag string, oldProps, newProps Props, root *Container, ctx HostContext) bool
	ShouldSetTextContent(tag string, props Props) bool
	ShouldDeprioritizeSubtree(tag string, props Props) bool

	AppendChild(parent *Instance, child Child) error
	AppendChildToContainer(root *Container, child Child) error
	InsertBefore(parent *Instance, child, before Child) error
	InsertInContainerBefore(root *Container, child, before Child) error
	RemoveChild(parent *Instance, child Child) error
	RemoveChildFromContainer(root *Container, child Child) error
	DetachDeletedInstance(inst *Instance)

	CommitUpdate(inst *Instance, payload bool, tag string, oldProps, newProps Props) error
	CommitTextUpdate(text TextInstance, oldText, newText string) error
	CommitMount(inst *Instance, tag string, props Props)
	ResetTextContent(inst *Instance)

	HideInstance(inst *Instance)
	UnhideInstance(inst *Instance, props Props)

	ScheduleDeferredCallback(cb func(Deadline)) CallbackID
	CancelDeferredCallback(id CallbackID)
	Now() time.Duration
}

var _ HostConfig = (*Host)(nil)

// Host implements HostConfig over a Backend.
type Host struct {
	backend Backend
	sched   Scheduler
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithScheduler sets the scheduler deferred callbacks and Now delegate to.
// The default is a FrameScheduler.
func WithScheduler(s Scheduler) HostOption {
	return func(h *Host) { h.sched = s }
}

// NewHost returns a host creating nodes with b.
func NewHost(b Backend, opts ...HostOption) *Host {
	h := &Host{backend: b}
	for _, o := range opts {
		o(h)
	}
	if h.sched == nil {
		h.sched = NewFrameScheduler()
	}
	return h
}

// Backend returns the backend nodes are created with.
func (h *Host) Backend() Backend { return h.backend }

// Scheduler returns the scheduler collaborator.
func (h *Host) Scheduler() Scheduler { return h.sched }

func (h *Host) GetRootHostContext(*Container) HostContext { return HostContext{} }

func (h *Host) GetChildHostContext(HostContext, string, *Container) HostContext {
	return HostContext{}
}

func (h *Host) GetPublicInstance(inst *Instance) *Instance { return inst }

func (h *Host) PrepareForCommit(root *Container) {
	Logger().Debug("art: prepare for commit", "children", len(root.children))
}

func (h *Host) ResetAfterCommit(root *Container) {
	Logger().Debug("art: reset after commit", "children", len(root.children))
}

// CreateInstance builds the node for tag and applies props. The instance is
// not attached anywhere.
func (h *Host) CreateInstance(tag string, props Props, _ *Container, _ HostContext) (*Instance, error) {
	kind, err := ParseKind(tag)
	if err != nil {
		return nil, err
	}
	inst, err := newInstance(h.backend, kind, props)
	if err != nil {
		return nil, err
	}
	Logger().Debug("art: create instance", "kind", kind, "instance", inst)
	return inst, nil
}

func (h *Host) CreateTextInstance(text string, _ *Container, _ HostContext) TextInstance {
	return TextInstance(text)
}

func (h *Host) AppendInitialChild(parent *Instance, child Child) error {
	return h.appendTo(parent, child)
}

func (h *Host) FinalizeInitialChildren(*Instance, string, Props, *Container) bool { return false }

// PrepareUpdate always requests an update; the diff happens in CommitUpdate.
func (h *Host) PrepareUpdate(*Instance, string, Props, Props, *Container, HostContext) bool {
	return true
}

// ShouldSetTextContent reports whether props carries direct text content.
func (h *Host) ShouldSetTextContent(_ string, props Props) bool {
	return HasTextContent(props.Children)
}

func (h *Host) ShouldDeprioritizeSubtree(string, Props) bool { return false }

func (h *Host) AppendChild(parent *Instance, child Child) error {
	return h.appendTo(parent, child)
}

func (h *Host) AppendChildToContainer(root *Container, child Child) error {
	return h.appendTo(root, child)
}

func (h *Host) InsertBefore(parent *Instance, child, before Child) error {
	return h.insertBefore(parent, child, before)
}

func (h *Host) InsertInContainerBefore(root *Container, child, before Child) error {
	return h.insertBefore(root, child, before)
}

func (h *Host) RemoveChild(parent *Instance, child Child) error {
	return h.remove(parent, child)
}

func (h *Host) RemoveChildFromContainer(root *Container, child Child) error {
	return h.remove(root, child)
}

// DetachDeletedInstance releases the event bridges of an instance subtree
// that will never be placed, such as one whose creation failed partway.
// Attached instances must go through RemoveChild instead.
func (h *Host) DetachDeletedInstance(inst *Instance) {
	if inst == nil || inst.parent != nil {
		return
	}
	inst.release()
	Logger().Debug("art: detach deleted instance", "instance", inst)
}

// CommitUpdate diffs newProps against the last applied props in place.
func (h *Host) CommitUpdate(inst *Instance, _ bool, _ string, _, newProps Props) error {
	if inst.released {
		return fmt.Errorf("%w: update of removed %s", ErrInvalidTreeOp, inst)
	}
	return inst.update(newProps)
}

// CommitTextUpdate always fails: text is flattened into Text props.
func (h *Host) CommitTextUpdate(text TextInstance, _, _ string) error {
	return fmt.Errorf("%w: text instance %q cannot be updated", ErrInvalidTreeOp, string(text))
}

func (h *Host) CommitMount(*Instance, string, Props) {}

func (h *Host) ResetTextContent(*Instance) {}

func (h *Host) HideInstance(inst *Instance) {
	inst.node.Hide()
}

// UnhideInstance shows inst unless props hides it explicitly.
func (h *Host) UnhideInstance(inst *Instance, props Props) {
	if props.isVisible() {
		inst.node.Show()
	}
}

func (h *Host) ScheduleDeferredCallback(cb func(Deadline)) CallbackID {
	return h.sched.ScheduleDeferred(cb)
}

func (h *Host) CancelDeferredCallback(id CallbackID) {
	h.sched.CancelDeferred(id)
}

func (h *Host) Now() time.Duration { return h.sched.Now() }

// attachable validates that child may be placed under p.
func attachable(p hostParent, child Child) (*Instance, error) {
	inst, err := asInstance(child)
	if err != nil {
		return nil, err
	}
	if inst.released {
		return nil, fmt.Errorf("%w: %s was removed", ErrInvalidTreeOp, inst)
	}
	if inst.isAncestorOf(p) {
		return nil, fmt.Errorf("%w: %s cannot be attached to its own subtree", ErrInvalidTreeOp, inst)
	}
	return inst, nil
}

// appendTo attaches child as the last child of p. A child already under p is
// detached first, so a repeated append leaves one edge.
func (h *Host) appendTo(p hostParent, child Child) error {
	inst, err := attachable(p, child)
	if err != nil {
		return err
	}
	if inst.parent == p {
		inst.node.Eject()
	}
	inst.unlink()
	inst.node.Inject(p.parentNode())
	inst.link(p, -1)
	return nil
}

// insertBefore detaches child from wherever it is and inserts it before
// before, which must already be a child of p.
func (h *Host) insertBefore(p hostParent, child, before Child) error {
	inst, err := attachable(p, child)
	if err != nil {
		return err
	}
	ref, err := asInstance(before)
	if err != nil {
		return err
	}
	if inst == ref {
		return fmt.Errorf("%w: cannot insert %s before itself", ErrInvalidTreeOp, inst)
	}
	if ref.parent != p {
		return fmt.Errorf("%w: %s is not a child of the insertion parent", ErrInvalidTreeOp, ref)
	}
	inst.node.Eject()
	inst.unlink()
	inst.node.InjectBefore(ref.node)
	inst.link(p, slices.Index(*p.childSlice(), ref))
	return nil
}

// remove tears down the event bridges of child's subtree, then detaches it.
func (h *Host) remove(p hostParent, child Child) error {
	inst, err := asInstance(child)
	if err != nil {
		return err
	}
	if inst.parent != p {
		return fmt.Errorf("%w: %s is not a child of the removal parent", ErrInvalidTreeOp, inst)
	}
	inst.release()
	inst.node.Eject()
	inst.unlink()
	Logger().Debug("art: remove instance", "instance", inst)
	return nil
}
