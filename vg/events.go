package vg

import "github.com/phanxgames/art"

type eventHandler struct {
	id uint32
	fn func(art.Event)
}

// handlerRegistry holds a node's subscribers per event type.
type handlerRegistry struct {
	lists  [len(art.EventTypes)][]eventHandler
	nextID uint32
}

func (r *handlerRegistry) add(t art.EventType, fn func(art.Event)) uint32 {
	r.nextID++
	r.lists[t] = append(r.lists[t], eventHandler{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *handlerRegistry) remove(t art.EventType, id uint32) {
	s := r.lists[t]
	for i, h := range s {
		if h.id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			r.lists[t] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) count() int {
	n := 0
	for _, s := range r.lists {
		n += len(s)
	}
	return n
}

// Subscribe registers fn for events of type t on this node and returns the
// handle that removes it. Calling the handle more than once is harmless.
func (n *Node) Subscribe(t art.EventType, fn func(art.Event)) func() {
	if int(t) >= len(n.handlers.lists) {
		panic("vg: unknown event type " + t.String())
	}
	id := n.handlers.add(t, fn)
	return func() { n.handlers.remove(t, id) }
}

// Subscriptions returns the number of live handlers on the node.
func (n *Node) Subscriptions() int { return n.handlers.count() }

// fire delivers the event to target and then to each ancestor in turn.
// Handlers registered or removed during delivery take effect for the next
// event.
func fire(t art.EventType, target *Node, x, y float64, button int) {
	if target == nil {
		return
	}
	lx, ly := target.WorldToLocal(x, y)
	e := art.Event{
		Type: t, X: x, Y: y, LocalX: lx, LocalY: ly,
		Button: button, Target: target,
	}
	for n := target; n != nil; n = n.parent {
		hs := n.handlers.lists[t]
		if len(hs) == 0 {
			continue
		}
		for _, h := range append([]eventHandler(nil), hs...) {
			h.fn(e)
		}
	}
}
