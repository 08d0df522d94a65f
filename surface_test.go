package art

import (
	"errors"
	"testing"
)

// listReconciler mounts a flat list of tags, recreating every instance on
// each commit.
type listReconciler struct {
	host    *Host
	commits [][]string
	fail    error
}

func (r *listReconciler) CreateContainer(c *Container) MountPoint[[]string] {
	return &listMount{r: r, root: c}
}

type listMount struct {
	r    *listReconciler
	root *Container
}

func (m *listMount) Update(tags []string) error {
	if m.r.fail != nil {
		return m.r.fail
	}
	m.r.commits = append(m.r.commits, tags)
	for _, inst := range append([]*Instance(nil), m.root.Children()...) {
		if err := m.r.host.RemoveChildFromContainer(m.root, inst); err != nil {
			return err
		}
	}
	for _, tag := range tags {
		inst, err := m.r.host.CreateInstance(tag, Props{}, m.root, HostContext{})
		if err != nil {
			return err
		}
		if err := m.r.host.AppendChildToContainer(m.root, inst); err != nil {
			return err
		}
	}
	return nil
}

func newTestSurface() (*Surface[[]string], *fakeBackend, *listReconciler) {
	b := newFakeBackend()
	r := &listReconciler{host: NewHost(b)}
	return NewSurface[[]string](b, r), b, r
}

func TestSurfaceLifecycle(t *testing.T) {
	s, b, r := newTestSurface()
	if s.Attached() {
		t.Fatal("new surface should be detached")
	}
	if err := s.Attach(200, 100, []string{"Group", "Shape"}); err != nil {
		t.Fatal(err)
	}
	c := b.canvases[0]
	if c.w != 200 || c.h != 100 {
		t.Errorf("canvas = %dx%d", c.w, c.h)
	}
	if len(s.Container().Children()) != 2 {
		t.Errorf("mounted %d children, want 2", len(s.Container().Children()))
	}
	if c.renders != 1 {
		t.Errorf("renders = %d, want 1", c.renders)
	}

	if err := s.Update(200, 100, []string{"Text"}); err != nil {
		t.Fatal(err)
	}
	if got := b.log.count("canvas.Resize"); got != 0 {
		t.Errorf("Resize without size change = %d, want 0", got)
	}
	if c.renders != 2 || len(r.commits) != 2 {
		t.Errorf("renders = %d commits = %d, want 2/2", c.renders, len(r.commits))
	}

	if err := s.Detach(); err != nil {
		t.Fatal(err)
	}
	if len(r.commits) != 3 || r.commits[2] != nil {
		t.Errorf("detach should commit the empty tree, commits = %v", r.commits)
	}
	if len(c.root.children) != 0 {
		t.Errorf("canvas root still has %d children", len(c.root.children))
	}
	if !c.closed {
		t.Error("canvas not closed")
	}
	if s.Attached() || s.Canvas() != nil {
		t.Error("surface should be detached")
	}
}

func TestSurfaceResize(t *testing.T) {
	s, b, _ := newTestSurface()
	_ = s.Attach(10, 10, nil)
	if err := s.Update(20, 10, nil); err != nil {
		t.Fatal(err)
	}
	if got := b.log.count("canvas.Resize(20, 10)"); got != 1 {
		t.Errorf("Resize = %d, want 1", got)
	}
	if w, h := s.Size(); w != 20 || h != 10 {
		t.Errorf("size = %dx%d", w, h)
	}

	// resize happens before the commit's render
	calls := b.log.calls
	ri, rr := -1, -1
	for i, c := range calls {
		switch c {
		case "canvas.Resize(20, 10)":
			ri = i
		case "canvas.Render":
			rr = i
		}
	}
	if ri < 0 || rr < ri {
		t.Errorf("calls = %v, want Resize before the last Render", calls)
	}
}

func TestSurfaceResizeError(t *testing.T) {
	s, b, r := newTestSurface()
	_ = s.Attach(10, 10, nil)
	b.canvases[0].resizeErr = errFake
	err := s.Update(30, 30, nil)
	if !errors.Is(err, errFake) {
		t.Fatalf("err = %v, want wrapped errFake", err)
	}
	if len(r.commits) != 1 {
		t.Error("children should not be committed after a failed resize")
	}
}

func TestSurfaceMisuse(t *testing.T) {
	s, b, _ := newTestSurface()
	if err := s.Update(1, 1, nil); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Update err = %v, want ErrNotAttached", err)
	}
	if err := s.Detach(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Detach err = %v, want ErrNotAttached", err)
	}
	_ = s.Attach(1, 1, nil)
	if err := s.Attach(1, 1, nil); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("Attach err = %v, want ErrAlreadyAttached", err)
	}
	if len(b.canvases) != 1 {
		t.Errorf("canvases = %d, want 1", len(b.canvases))
	}
}

func TestSurfaceCanvasError(t *testing.T) {
	s, b, _ := newTestSurface()
	b.canvasErr = errFake
	if err := s.Attach(1, 1, nil); !errors.Is(err, errFake) {
		t.Fatalf("err = %v, want errFake", err)
	}
	if s.Attached() {
		t.Error("surface attached after canvas failure")
	}
}

func TestSurfaceCommitError(t *testing.T) {
	s, b, r := newTestSurface()
	_ = s.Attach(1, 1, nil)
	r.fail = errFake
	if err := s.Update(1, 1, nil); !errors.Is(err, errFake) {
		t.Fatalf("err = %v, want errFake", err)
	}
	if b.canvases[0].renders != 1 {
		t.Error("failed commit should not render")
	}
}
