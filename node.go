package canopy

// HitShape is used for custom hit testing regions. Coordinates are local to
// the node's rect (origin at its top-left corner).
type HitShape interface {
	Contains(x, y float64) bool
}

// --- ID counter ---

// nodeIDCounter is a plain counter; canopy is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Default size of a freshly created node, matching a host RectTransform.
const (
	defaultNodeWidth  = 100
	defaultNodeHeight = 100
)

// --- Node ---

// Node is the fundamental UI tree element. A single flat struct is used for
// panels, containers and the internal parts of overlays and windows; behavior
// is attached through handler lists rather than subtypes.
type Node struct {
	// Identity
	ID    uint32
	Name  string
	Label string // optional caption painted by Draw

	// Hierarchy
	Parent   *Node
	children []*Node
	content  *Node // Add redirect target; nil means the node itself

	// Rect transform (see transform.go)
	anchor    Anchor
	fill      Fill
	anchorMin Vec2
	anchorMax Vec2
	pivot     Vec2
	position  Vec2
	sizeDelta Vec2
	width     float64
	height    float64

	// Layout (see layout.go)
	layout  *LayoutGroup
	element *LayoutElement

	// Resolved rect cache, valid while rectVersion == geometryVersion.
	rect        Rect
	rectVersion uint64

	// Appearance & interaction
	Color        Color
	Alpha        float64
	Interactable bool
	Clip         bool // children outside the rect are neither drawn nor hit
	HitShape     HitShape
	active       bool
	inputBlocked bool

	// Ordering among siblings
	ZIndex int

	// Metadata
	UserData any
	EntityID uint32

	handlers     [eventTypeCount][]nodeHandler
	destroyHooks []func()

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// NewNode creates an active, fully opaque node anchored at the middle of its
// parent with the default 100x100 size.
func NewNode(name string) *Node {
	n := &Node{
		ID:             nextNodeID(),
		Name:           name,
		Alpha:          1,
		active:         true,
		childrenSorted: true,
		width:          defaultNodeWidth,
		height:         defaultNodeHeight,
	}
	n.SetAnchor(AnchorMiddle)
	return n
}

// NewPanel creates a node painted with a solid color.
func NewPanel(name string, c Color) *Node {
	n := NewNode(name)
	n.Color = c
	return n
}

// --- Tree manipulation ---

// Add attaches child under this node. If a content target is set, the call
// is forwarded to it instead. The child is detached from any previous parent
// first. Panics if child is nil or the move would create a cycle.
func (n *Node) Add(child *Node) {
	if n.content != nil && n.content.disposed {
		n.content = nil
	}
	if n.content != nil && n.content != n {
		n.content.Add(child)
		return
	}
	n.attach(child)
}

// attach appends child to this node's own children, bypassing the content
// redirect. Overlays and windows use it to build their internal parts.
func (n *Node) attach(child *Node) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "Add (parent)")
		debugCheckDisposed(child, "Add (child)")
	}
	if isAncestor(child, n) {
		panic("canopy: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if n.layout != nil {
		child.ensureElement()
	} else {
		child.element = nil
	}
	touchGeometry()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// Remove detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) Remove(child *Node) {
	if child.Parent != n {
		panic("canopy: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	child.element = nil
	n.childrenSorted = false
	touchGeometry()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.Remove(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetContent makes Add forward to target. Passing nil or n itself clears the
// redirect. Panics if target is not n or one of its descendants.
func (n *Node) SetContent(target *Node) {
	if target == nil || target == n {
		n.content = nil
		return
	}
	if !isAncestor(n, target) {
		panic("canopy: content target must be a descendant")
	}
	n.content = target
}

// Content returns the node that Add places children under.
func (n *Node) Content() *Node {
	if n.content != nil {
		return n.content
	}
	return n
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("canopy: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("canopy: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.childrenSorted = false
	touchGeometry()
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// paintOrder returns the children sorted by ZIndex, stable in insertion order.
func (n *Node) paintOrder() []*Node {
	if n.childrenSorted && n.sortedChildren != nil {
		return n.sortedChildren
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// --- Activation & alpha ---

// SetActive shows or hides the node and its subtree. Inactive nodes are not
// drawn, not hit, and take no space in a parent's layout group.
func (n *Node) SetActive(active bool) {
	if n.active == active {
		return
	}
	n.active = active
	touchGeometry()
}

// Active reports the node's own active flag.
func (n *Node) Active() bool {
	return n.active
}

// ActiveInHierarchy reports whether the node and all of its ancestors are active.
func (n *Node) ActiveInHierarchy() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.active {
			return false
		}
	}
	return true
}

// SetAlpha sets the node's own opacity.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
}

// WorldAlpha returns the product of this node's alpha and its ancestors'.
func (n *Node) WorldAlpha() float64 {
	a := 1.0
	for p := n; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// --- Disposal ---

// OnDestroy registers fn to run when the node is destroyed, before its
// children are.
func (n *Node) OnDestroy(fn func()) {
	n.destroyHooks = append(n.destroyHooks, fn)
}

// Destroy removes this node from its parent, marks it as destroyed and
// recursively destroys all descendants. Calling it again is a no-op.
func (n *Node) Destroy() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.destroy()
}

func (n *Node) destroy() {
	n.disposed = true
	hooks := n.destroyHooks
	n.destroyHooks = nil
	for _, fn := range hooks {
		safeCall("Node.OnDestroy", fn)
	}
	for _, child := range n.children {
		child.Parent = nil
		child.destroy()
	}
	n.ID = 0
	n.children = nil
	n.sortedChildren = nil
	n.content = nil
	n.Parent = nil
	n.layout = nil
	n.element = nil
	n.HitShape = nil
	n.UserData = nil
	n.handlers = [eventTypeCount][]nodeHandler{}
	touchGeometry()
}

// IsDestroyed returns true if this node has been destroyed.
func (n *Node) IsDestroyed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
