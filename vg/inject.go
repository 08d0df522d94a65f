package vg

// syntheticPointerEvent is a single injected pointer sample in canvas
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  int
}

// InjectPress queues a left-button press at (x, y). Queued samples are
// consumed one per ProcessInput call.
func (c *Canvas) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move to (x, y) keeping the current button state.
func (c *Canvas) InjectMove(x, y float64) {
	pressed := c.pointer.down
	if n := len(c.injectQueue); n > 0 {
		pressed = c.injectQueue[n-1].pressed
	}
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: pressed})
}

// InjectRelease queues a left-button release at (x, y).
func (c *Canvas) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at (x, y). Consumes two
// ProcessInput calls.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). frames is clamped to at least 2.
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic samples.
func (c *Canvas) PendingInput() int { return len(c.injectQueue) }

// ProcessInput pops one injected sample and feeds it through Pointer.
// Returns true if a sample was consumed, in which case real input for the
// frame should be skipped.
func (c *Canvas) ProcessInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
	c.Pointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}
