package tactile

import (
	"fmt"
	"os"
)

// debugCheckDisposed panics with a descriptive message when a disposed
// element is used in a tree operation. Only called when the document is in
// debug mode. In release mode callers skip this entirely.
func debugCheckDisposed(el *Element, op string) {
	if el.disposed {
		panic(fmt.Sprintf("tactile debug: %s on disposed element %q (ID was %d)", op, el.Name, el.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(el *Element) {
	depth := 0
	for p := el; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[tactile] warning: tree depth %d exceeds %d (element %q)\n",
			depth, debugMaxTreeDepth, el.Name)
	}
}

// debugCheckChildCount warns on stderr if an element has more than 1000
// children.
const debugMaxChildCount = 1000

func debugCheckChildCount(el *Element) {
	if len(el.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[tactile] warning: element %q has %d children (threshold %d)\n",
			el.Name, len(el.children), debugMaxChildCount)
	}
}

// debugWarn prints a one-line warning to stderr when debug mode is on.
func debugWarn(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[tactile] warning: "+format+"\n", args...)
}
