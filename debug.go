package canopy

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	inputTime   time.Duration
	animateTime time.Duration
	holdTime    time.Duration
	tickers     int
	overlays    int
}

// debugLog writes the frame's stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.inputTime + stats.animateTime + stats.holdTime
	logDebugf("Scene.Tick", "input: %v | animate: %v | holds: %v | total: %v | tickers: %d | overlays: %d",
		stats.inputTime, stats.animateTime, stats.holdTime, total, stats.tickers, stats.overlays)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("canopy debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logWarnf("debug.TreeDepth", "tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logWarnf("debug.ChildCount", "node %q has %d children (threshold %d)",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countNodes returns the size of the subtree rooted at n.
func countNodes(n *Node) int {
	c := 1
	for _, child := range n.children {
		c += countNodes(child)
	}
	return c
}
