package art

// Event is a pointer event delivered by a backend event stream.
type Event struct {
	Type           EventType
	X, Y           float64 // surface coordinates
	LocalX, LocalY float64 // coordinates in the target node's local space
	Button         int     // 0 left, 1 right, 2 middle
	Target         Node    // node the event was dispatched on
}

// Listener handles events for one event type on one node.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// subscriptions is the per-instance event subscription map. Both maps are
// created on the first listener and dropped by release.
type subscriptions struct {
	listeners map[EventType]Listener
	unsubs    map[EventType]func()
}

// bindListener stores (or clears) the listener for t and keeps exactly one
// backend subscription for t while a listener is present. Re-binding with the
// same or a different listener never resubscribes: dispatch reads the current
// listener at event time.
func (inst *Instance) bindListener(t EventType, l Listener) {
	ev := &inst.events
	if ev.listeners == nil {
		if l == nil {
			return
		}
		ev.listeners = make(map[EventType]Listener)
		ev.unsubs = make(map[EventType]func())
	}
	if l != nil {
		ev.listeners[t] = l
		if _, ok := ev.unsubs[t]; !ok {
			ev.unsubs[t] = inst.node.Subscribe(t, inst.dispatch)
		}
		return
	}
	delete(ev.listeners, t)
	if unsub, ok := ev.unsubs[t]; ok {
		delete(ev.unsubs, t)
		unsub()
	}
}

// dispatch is the single subscriber registered for every event type of an
// instance.
func (inst *Instance) dispatch(e Event) {
	if l := inst.events.listeners[e.Type]; l != nil {
		l.HandleEvent(e)
	}
}

// releaseListeners invokes every active unsubscribe handle and clears both
// maps. Safe to call again; later calls find nothing to release.
func (inst *Instance) releaseListeners() {
	ev := &inst.events
	for _, t := range EventTypes {
		if unsub, ok := ev.unsubs[t]; ok {
			unsub()
		}
	}
	ev.listeners = nil
	ev.unsubs = nil
}

// ActiveSubscriptions returns how many backend subscriptions the instance
// currently holds.
func (inst *Instance) ActiveSubscriptions() int {
	return len(inst.events.unsubs)
}
