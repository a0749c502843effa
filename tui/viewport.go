// ABOUTME: Keeps the highlighted line of the visual panel on screen
// ABOUTME: Focus line moves freely near the edges and stays centered in between

package tui

// ViewportManager computes the scroll offset that keeps a focus line visible.
// The focus is the rendered line of the node or row the current step highlights.
type ViewportManager struct {
	height int // Viewport height in lines
	focus  int // Line to keep visible
	lines  int // Total rendered lines
}

// NewViewportManager creates a new viewport manager
func NewViewportManager(height, focus, lines int) *ViewportManager {
	return &ViewportManager{
		height: height,
		focus:  focus,
		lines:  lines,
	}
}

// SetFocus updates the focus line
func (vm *ViewportManager) SetFocus(line int) {
	vm.focus = line
}

// ScrollPhase says where the focus line sits relative to the content
type ScrollPhase int

// Scroll phases
const (
	TopPhase    ScrollPhase = iota // Focus moves, viewport at top
	MiddlePhase                    // Focus centered, content scrolls
	BottomPhase                    // Viewport at bottom, focus moves
)

// Phase returns the current scrolling phase
func (vm *ViewportManager) Phase() ScrollPhase {
	if vm.lines == 0 || vm.height < 1 {
		return TopPhase
	}

	middle := vm.height / 2
	if vm.focus < middle {
		return TopPhase
	}

	if vm.focus < vm.lines-vm.height+middle {
		return MiddlePhase
	}

	return BottomPhase
}

// CalculateOffset returns the viewport Y offset for the focus line
func (vm *ViewportManager) CalculateOffset() int {
	switch vm.Phase() {
	case TopPhase:
		return 0
	case MiddlePhase:
		return vm.focus - vm.height/2
	default:
		return max(vm.lines-vm.height, 0)
	}
}
