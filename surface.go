package art

import (
	"errors"
	"fmt"
	"io"
)

// MountPoint commits a whole child tree of element type E into a container.
// Each call replaces the previously committed tree; the zero E is the empty
// tree.
type MountPoint[E any] interface {
	Update(children E) error
}

// Reconciler creates mount points. It is the diffing engine seen from the
// surface.
type Reconciler[E any] interface {
	CreateContainer(c *Container) MountPoint[E]
}

// Surface binds a child tree to one backend canvas over an
// attach/update/detach lifecycle.
type Surface[E any] struct {
	backend Backend
	rec     Reconciler[E]

	canvas    Canvas
	container *Container
	mount     MountPoint[E]
	width     int
	height    int
}

// NewSurface returns a detached surface.
func NewSurface[E any](b Backend, r Reconciler[E]) *Surface[E] {
	return &Surface[E]{backend: b, rec: r}
}

// Attach creates the canvas and mount point and commits children.
func (s *Surface[E]) Attach(width, height int, children E) error {
	if s.canvas != nil {
		return ErrAlreadyAttached
	}
	c, err := s.backend.NewCanvas(width, height)
	if err != nil {
		return fmt.Errorf("art: create canvas: %w", err)
	}
	s.canvas = c
	s.container = NewContainer(c)
	s.mount = s.rec.CreateContainer(s.container)
	s.width, s.height = width, height
	return s.commit(children)
}

// Update resizes the canvas if the size changed and always re-commits
// children.
func (s *Surface[E]) Update(width, height int, children E) error {
	if s.canvas == nil {
		return ErrNotAttached
	}
	if width != s.width || height != s.height {
		if r, ok := s.canvas.(Resizer); ok {
			if err := r.Resize(width, height); err != nil {
				return fmt.Errorf("art: resize canvas: %w", err)
			}
		}
		s.width, s.height = width, height
	}
	return s.commit(children)
}

// Detach commits the empty tree, tearing down every primitive, then releases
// the canvas.
func (s *Surface[E]) Detach() error {
	if s.canvas == nil {
		return ErrNotAttached
	}
	var empty E
	err := s.mount.Update(empty)
	if cl, ok := s.canvas.(io.Closer); ok {
		err = errors.Join(err, cl.Close())
	}
	s.canvas, s.container, s.mount = nil, nil, nil
	s.width, s.height = 0, 0
	return err
}

// Attached reports whether the surface currently owns a canvas.
func (s *Surface[E]) Attached() bool { return s.canvas != nil }

// Canvas returns the backend canvas, or nil when detached.
func (s *Surface[E]) Canvas() Canvas { return s.canvas }

// Container returns the mount container, or nil when detached.
func (s *Surface[E]) Container() *Container { return s.container }

// Size returns the current canvas size.
func (s *Surface[E]) Size() (width, height int) { return s.width, s.height }

func (s *Surface[E]) commit(children E) error {
	if err := s.mount.Update(children); err != nil {
		return err
	}
	Logger().Debug("art: surface commit", "width", s.width, "height", s.height,
		"children", len(s.container.children))
	if r, ok := s.canvas.(Renderer); ok {
		if err := r.Render(); err != nil {
			return fmt.Errorf("art: render: %w", err)
		}
	}
	return nil
}
