package tree

import (
	"errors"
	"fmt"

	"github.com/phanxgames/art"
)

// ErrDuplicateKey is returned when two siblings share a Key.
var ErrDuplicateKey = errors.New("tree: duplicate sibling key")

// Reconciler creates Roots that commit Element trees through a host.
type Reconciler struct {
	host art.HostConfig
}

var _ art.Reconciler[[]Element] = (*Reconciler)(nil)

// New returns a Reconciler driving host.
func New(host art.HostConfig) *Reconciler {
	return &Reconciler{host: host}
}

// CreateContainer mounts a new Root on c.
func (r *Reconciler) CreateContainer(c *art.Container) art.MountPoint[[]Element] {
	return r.Mount(c)
}

// Mount returns an empty Root committing into c.
func (r *Reconciler) Mount(c *art.Container) *Root {
	return &Root{host: r.host, container: c}
}

// Stats counts the host operations issued by one commit.
type Stats struct {
	Created int
	Updated int
	Moved   int
	Removed int
}

// Root holds the committed tree of one container.
type Root struct {
	host      art.HostConfig
	container *art.Container
	fibers    []*fiber
	mounts    []*fiber
	last      Stats
}

// fiber is the committed record of one element.
type fiber struct {
	typ      string
	key      string
	props    art.Props
	text     string
	child    art.Child
	children []*fiber
}

func (f *fiber) instance() *art.Instance {
	inst, _ := f.child.(*art.Instance)
	return inst
}

// parent is where a sibling list attaches: the container or an instance.
type parent struct {
	root *art.Container
	inst *art.Instance
}

func (p parent) append(h art.HostConfig, c art.Child) error {
	if p.inst == nil {
		return h.AppendChildToContainer(p.root, c)
	}
	return h.AppendChild(p.inst, c)
}

func (p parent) insertBefore(h art.HostConfig, c, before art.Child) error {
	if p.inst == nil {
		return h.InsertInContainerBefore(p.root, c, before)
	}
	return h.InsertBefore(p.inst, c, before)
}

func (p parent) remove(h art.HostConfig, c art.Child) error {
	if p.inst == nil {
		return h.RemoveChildFromContainer(p.root, c)
	}
	return h.RemoveChild(p.inst, c)
}

// Container returns the container r commits into.
func (r *Root) Container() *art.Container { return r.container }

// LastCommit returns the operation counts of the most recent Update.
func (r *Root) LastCommit() Stats { return r.last }

// Update commits children, replacing the previously committed tree. A nil
// slice removes everything. After an error the scene reflects the commit only
// up to the failing element.
func (r *Root) Update(children []Element) error {
	r.last = Stats{}
	r.mounts = r.mounts[:0]
	r.host.PrepareForCommit(r.container)
	ctx := r.host.GetRootHostContext(r.container)
	fibers, err := r.reconcile(parent{root: r.container}, ctx, r.fibers, children)
	if err == nil {
		r.fibers = fibers
		for _, f := range r.mounts {
			r.host.CommitMount(f.instance(), f.typ, f.props)
		}
	}
	r.host.ResetAfterCommit(r.container)
	if err != nil {
		return err
	}
	art.Logger().Debug("tree: commit", "created", r.last.Created, "updated", r.last.Updated,
		"moved", r.last.Moved, "removed", r.last.Removed)
	return nil
}

type slot struct {
	key   string
	index int
}

func slotOf(key string, i int) slot {
	if key != "" {
		return slot{key: key, index: -1}
	}
	return slot{index: i}
}

// reconcile diffs the sibling list old against next under p and returns the
// new sibling list.
//
// Matched fibers whose previous index is below the highest index already
// kept in place are moved; everything else stays put. Removals run before
// placements, and placements run from the last sibling backwards so every
// insertion anchor is already in its final position.
func (r *Root) reconcile(p parent, ctx art.HostContext, old []*fiber, next []Element) (_ []*fiber, err error) {
	seen := make(map[string]bool, len(next))
	for _, e := range next {
		if e.Key == "" {
			continue
		}
		if seen[e.Key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
		}
		seen[e.Key] = true
	}

	byslot := make(map[slot]int, len(old))
	for i, f := range old {
		byslot[slotOf(f.key, i)] = i
	}
	used := make([]bool, len(old))
	out := make([]*fiber, len(next))
	place := make([]bool, len(next))
	fresh := make([]bool, len(next))
	lastPlaced := -1
	defer func() {
		if err != nil {
			for i, f := range out {
				if fresh[i] {
					r.discard(f)
				}
			}
		}
	}()

	for i, e := range next {
		if j, ok := byslot[slotOf(e.Key, i)]; ok && old[j].typ == e.Type {
			f := old[j]
			used[j] = true
			if err := r.updateFiber(f, e, ctx); err != nil {
				return nil, err
			}
			out[i] = f
			if j < lastPlaced {
				place[i] = true
			} else {
				lastPlaced = j
			}
			continue
		}
		f, err := r.create(e, ctx)
		if err != nil {
			return nil, err
		}
		out[i], place[i], fresh[i] = f, true, true
	}

	for j, f := range old {
		if used[j] {
			continue
		}
		if inst := f.instance(); inst != nil && inst.Released() {
			continue
		}
		if err := p.remove(r.host, f.child); err != nil {
			return nil, fmt.Errorf("tree: remove %s: %w", f.describe(), err)
		}
		r.last.Removed++
	}

	var anchor art.Child
	for i := len(out) - 1; i >= 0; i-- {
		f := out[i]
		if place[i] {
			var err error
			if anchor == nil {
				err = p.append(r.host, f.child)
			} else {
				err = p.insertBefore(r.host, f.child, anchor)
			}
			if err != nil {
				return nil, fmt.Errorf("tree: place %s: %w", f.describe(), err)
			}
			if !fresh[i] {
				r.last.Moved++
			}
		}
		anchor = f.child
	}
	return out, nil
}

func (r *Root) updateFiber(f *fiber, e Element, ctx art.HostContext) error {
	if e.isText() {
		if e.Text != f.text {
			if err := r.host.CommitTextUpdate(f.child.(art.TextInstance), f.text, e.Text); err != nil {
				return fmt.Errorf("tree: update %s: %w", e, err)
			}
			f.text = e.Text
		}
		return nil
	}
	inst := f.instance()
	if payload := r.host.PrepareUpdate(inst, e.Type, f.props, e.Props, r.container, ctx); payload {
		if err := r.host.CommitUpdate(inst, payload, e.Type, f.props, e.Props); err != nil {
			return fmt.Errorf("tree: update %s: %w", e, err)
		}
		r.last.Updated++
	}
	f.props = e.Props
	kids := e.Children
	if r.host.ShouldSetTextContent(e.Type, e.Props) {
		kids = nil
	}
	children, err := r.reconcile(parent{inst: inst}, r.host.GetChildHostContext(ctx, e.Type, r.container), f.children, kids)
	if err != nil {
		return err
	}
	f.children = children
	return nil
}

// create builds the instance subtree for e, attached internally but not yet
// placed under its parent.
func (r *Root) create(e Element, ctx art.HostContext) (*fiber, error) {
	if e.isText() {
		r.last.Created++
		return &fiber{key: e.Key, text: e.Text, child: r.host.CreateTextInstance(e.Text, r.container, ctx)}, nil
	}
	inst, err := r.host.CreateInstance(e.Type, e.Props, r.container, ctx)
	if err != nil {
		return nil, fmt.Errorf("tree: create %s: %w", e, err)
	}
	f := &fiber{typ: e.Type, key: e.Key, props: e.Props, child: inst}
	if !r.host.ShouldSetTextContent(e.Type, e.Props) {
		childCtx := r.host.GetChildHostContext(ctx, e.Type, r.container)
		for _, ce := range e.Children {
			cf, err := r.create(ce, childCtx)
			if err != nil {
				r.discard(f)
				return nil, err
			}
			if err := r.host.AppendInitialChild(inst, cf.child); err != nil {
				r.discard(cf)
				r.discard(f)
				return nil, fmt.Errorf("tree: append %s to %s: %w", ce, e, err)
			}
			f.children = append(f.children, cf)
		}
	}
	if r.host.FinalizeInitialChildren(inst, e.Type, e.Props, r.container) {
		r.mounts = append(r.mounts, f)
	}
	r.last.Created++
	return f, nil
}

// discard releases a fiber subtree that never reached its parent. Attached
// instances are left to RemoveChild.
func (r *Root) discard(f *fiber) {
	if inst := f.instance(); inst != nil {
		r.host.DetachDeletedInstance(inst)
	}
}

func (f *fiber) describe() string {
	return Element{Type: f.typ, Key: f.key}.String()
}
