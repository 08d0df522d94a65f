package art

import "fmt"

// applyNodeProps diffs the attributes shared by every kind.
func applyNodeProps(inst *Instance, next, prev *Props) error {
	n := inst.node

	if t := nodeTransform(next); t != n.Transform() {
		n.TransformTo(t)
	}

	if next.Cursor != prev.Cursor || next.Title != prev.Title {
		n.Indicate(next.Cursor, next.Title)
	}

	if !equalFloatPtr(next.Opacity, prev.Opacity) {
		if b, ok := n.(Blender); ok {
			opacity := 1.0
			if next.Opacity != nil {
				opacity = *next.Opacity
			}
			b.Blend(opacity)
		}
	}

	if !equalBoolPtr(next.Visible, prev.Visible) {
		if next.isVisible() {
			n.Show()
		} else {
			n.Hide()
		}
	}

	for _, t := range EventTypes {
		inst.bindListener(t, next.listener(t))
	}
	return nil
}

// applySizedProps is the strategy for groups and clipping rectangles.
func applySizedProps(inst *Instance, next, prev *Props) error {
	if err := applyNodeProps(inst, next, prev); err != nil {
		return err
	}
	if next.Width != prev.Width || next.Height != prev.Height {
		if s, ok := inst.node.(Sizer); ok {
			s.SetSize(next.Width, next.Height)
		}
	}
	return nil
}

// applyRenderableProps diffs fill and stroke on top of the node props.
func applyRenderableProps(inst *Instance, r Renderable, next, prev *Props) error {
	if err := applyNodeProps(inst, next, prev); err != nil {
		return err
	}

	if next.Fill != prev.Fill {
		if err := applyFill(r, next.Fill); err != nil {
			return err
		}
	}

	if next.Stroke != prev.Stroke ||
		next.StrokeWidth != prev.StrokeWidth ||
		next.StrokeCap != prev.StrokeCap ||
		next.StrokeJoin != prev.StrokeJoin ||
		!sameSlice(next.StrokeDash, prev.StrokeDash) {
		r.Stroke(next.Stroke, next.StrokeWidth, next.StrokeCap, next.StrokeJoin, next.StrokeDash)
	}
	return nil
}

func applyFill(r Renderable, p Paint) error {
	switch f := p.(type) {
	case nil:
		r.Fill(Color{})
	case Color:
		r.Fill(f)
	case FillDescriptor:
		return f.ApplyFill(r)
	default:
		return fmt.Errorf("%w: paint type %T", ErrUnsupportedFill, p)
	}
	return nil
}

// applyShapeProps redraws when the path identity, the path's delta or the
// size changed.
func applyShapeProps(inst *Instance, next, prev *Props) error {
	if err := applyRenderableProps(inst, inst.shape, next, prev); err != nil {
		return err
	}
	path, err := inst.shapePath(next)
	if err != nil {
		return err
	}
	if path != inst.drawnPath ||
		path.Delta() != inst.drawnDelta ||
		next.Width != prev.Width ||
		next.Height != prev.Height {
		inst.shape.DrawPath(path, next.Width, next.Height)
		inst.drawnPath = path
		inst.drawnDelta = path.Delta()
	}
	return nil
}

// shapePath resolves the path to draw: D when set, otherwise the flattened
// children parsed as SVG path data. Parsed paths are memoized per string so
// an unchanged string keeps its identity.
func (inst *Instance) shapePath(p *Props) (*Path, error) {
	if p.D != nil {
		return p.D, nil
	}
	src := FlattenText(p.Children)
	if inst.parsedPath != nil && src == inst.pathSrc {
		return inst.parsedPath, nil
	}
	path, err := ParsePath(src)
	if err != nil {
		return nil, err
	}
	inst.pathSrc, inst.parsedPath = src, path
	return path, nil
}

// applyTextProps redraws when the content, font, alignment or followed path
// changed.
func applyTextProps(inst *Instance, next, prev *Props) error {
	if err := applyRenderableProps(inst, inst.text, next, prev); err != nil {
		return err
	}
	content := FlattenText(next.Children)
	if content != inst.textContent ||
		!sameFont(next.Font, prev.Font) ||
		next.Alignment != prev.Alignment ||
		next.Path != prev.Path {
		inst.text.DrawText(content, next.Font, next.Alignment, next.Path)
		inst.textContent = content
	}
	return nil
}
