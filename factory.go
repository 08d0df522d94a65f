package art

import "fmt"

// newInstance constructs the backend node for kind, binds the kind's
// strategy and applies the initial props.
func newInstance(b Backend, kind Kind, props Props) (*Instance, error) {
	inst := &Instance{kind: kind}

	// seed stands in for the previous props: Text nodes are constructed with
	// their content, font, alignment and path already drawn.
	var seed Props
	switch kind {
	case KindClippingRectangle:
		inst.node = b.NewClippingRectangle()
		inst.apply = applySizedProps
	case KindGroup:
		inst.node = b.NewGroup()
		inst.apply = applySizedProps
	case KindShape:
		s := b.NewShape()
		inst.node, inst.shape = s, s
		inst.apply = applyShapeProps
	case KindText:
		content := FlattenText(props.Children)
		t := b.NewText(content, props.Font, props.Alignment, props.Path)
		inst.node, inst.text = t, t
		inst.apply = applyTextProps
		inst.textContent = content
		seed = Props{Font: props.Font, Alignment: props.Alignment, Path: props.Path}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
	}

	if err := inst.apply(inst, &props, &seed); err != nil {
		inst.releaseListeners()
		return nil, fmt.Errorf("art: create %s: %w", kind, err)
	}
	inst.props = props
	return inst, nil
}
