package tamarack

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// warnf prints a diagnostic to stderr unconditionally.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tamarack] "+format+"\n", args...)
}

// debugf prints a diagnostic to stderr only in debug mode.
func debugf(format string, args ...any) {
	if globalDebug {
		warnf(format, args...)
	}
}

// pickStats holds per-pick timing metrics. Only populated when Scene.debug
// is true.
type pickStats struct {
	castTime  time.Duration
	applyTime time.Duration
	hitCount  int
}

// debugLog prints pick timing stats to stderr.
func (s *Scene) debugLog(stats pickStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tamarack] cast: %v | apply: %v | hits: %d\n",
		stats.castTime, stats.applyTime, stats.hitCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called when debug mode is on; in release
// mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tamarack debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		warnf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		warnf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
