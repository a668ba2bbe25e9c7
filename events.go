package canopy

// Event carries interaction data to handlers. One Event value travels up the
// parent chain during dispatch; Current and LocalX/LocalY are rewritten for
// each node it visits.
type Event struct {
	Type    EventType
	Target  *Node // node the event was delivered to
	Current *Node // node whose handler is running

	GlobalX, GlobalY float64
	LocalX, LocalY   float64 // relative to Current's top-left corner

	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd).
	StartX, StartY float64
	DeltaX, DeltaY float64

	// Wheel fields (valid for EventScroll).
	WheelX, WheelY float64

	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// Handler reacts to an event on a node. Returning true consumes the event
// and stops it bubbling to the parent.
type Handler func(*Event) bool

type nodeHandler struct {
	id uint32
	fn Handler
}

type sceneHandler struct {
	id uint32
	fn func(*Event)
}

// handlerIDCounter shares the single-threaded assumption of nodeIDCounter.
var handlerIDCounter uint32

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	event EventType
	node  *Node
	reg   *handlerRegistry
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// harmless.
func (h CallbackHandle) Remove() {
	switch {
	case h.node != nil:
		h.node.handlers[h.event] = removeNodeHandler(h.node.handlers[h.event], h.id)
	case h.reg != nil:
		h.reg.byType[h.event] = removeSceneHandler(h.reg.byType[h.event], h.id)
	}
}

func removeNodeHandler(s []nodeHandler, id uint32) []nodeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nodeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSceneHandler(s []sceneHandler, id uint32) []sceneHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = sceneHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// On registers fn for events of type ev delivered to this node or bubbling
// up from its descendants.
func (n *Node) On(ev EventType, fn Handler) CallbackHandle {
	handlerIDCounter++
	id := handlerIDCounter
	n.handlers[ev] = append(n.handlers[ev], nodeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, event: ev, node: n}
}

// handlerRegistry holds scene-level observers. They see every event before
// node handlers do and cannot consume it.
type handlerRegistry struct {
	byType [eventTypeCount][]sceneHandler
}

func (r *handlerRegistry) add(ev EventType, fn func(*Event)) CallbackHandle {
	handlerIDCounter++
	id := handlerIDCounter
	r.byType[ev] = append(r.byType[ev], sceneHandler{id: id, fn: fn})
	return CallbackHandle{id: id, event: ev, reg: r}
}

func (r *handlerRegistry) notify(e *Event) {
	for _, h := range append([]sceneHandler(nil), r.byType[e.Type]...) {
		safeCallFor("Scene.On", e.Type.String()+" observer", func() { h.fn(e) })
	}
}

// dispatchEvent walks from e.Target up the parent chain, invoking handlers
// until one consumes the event. A panicking handler is logged and skipped;
// the remaining handlers still run. Reports whether the event was consumed.
func dispatchEvent(e *Event) bool {
	for n := e.Target; n != nil; n = n.Parent {
		list := n.handlers[e.Type]
		if len(list) == 0 {
			continue
		}
		e.Current = n
		e.LocalX, e.LocalY = n.ScreenToLocal(e.GlobalX, e.GlobalY)
		// Handlers may add or remove handlers on this node while running.
		for _, h := range append([]nodeHandler(nil), list...) {
			consumed := false
			ok := safeCallFor("Node.handler", e.Type.String()+" handler on "+nodeLabel(n), func() {
				consumed = h.fn(e)
			})
			if ok && consumed {
				return true
			}
		}
	}
	return false
}

func nodeLabel(n *Node) string {
	if n.Name != "" {
		return "node " + n.Name
	}
	return "unnamed node"
}
