// ABOUTME: Tests for ViewportManager scrolling logic
// ABOUTME: Verifies the focus line stays visible and centered in long trees

package tui

import "testing"

func TestViewportManager_Phases(t *testing.T) {
	// Viewport with 10 lines, 50 rendered lines
	vm := NewViewportManager(10, 0, 50)

	tests := []struct {
		name       string
		focus      int
		wantOffset int
		wantPhase  ScrollPhase
	}{
		{"focus at top", 0, 0, TopPhase},
		{"focus just before middle", 4, 0, TopPhase},
		{"focus at middle", 5, 0, MiddlePhase},
		{"focus scrolls content", 20, 15, MiddlePhase},
		{"last centered line", 44, 39, MiddlePhase},
		{"focus near bottom", 45, 40, BottomPhase},
		{"focus at last line", 49, 40, BottomPhase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm.SetFocus(tt.focus)

			if got := vm.CalculateOffset(); got != tt.wantOffset {
				t.Errorf("CalculateOffset() = %d, want %d", got, tt.wantOffset)
			}

			if got := vm.Phase(); got != tt.wantPhase {
				t.Errorf("Phase() = %d, want %d", got, tt.wantPhase)
			}
		})
	}
}

func TestViewportManager_ShortContent(t *testing.T) {
	// Content shorter than the viewport never scrolls
	for focus := range 4 {
		vm := NewViewportManager(10, focus, 4)

		if got := vm.CalculateOffset(); got != 0 {
			t.Errorf("focus %d: offset %d, want 0", focus, got)
		}
	}
}

func TestViewportManager_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		height int
		focus  int
		lines  int
	}{
		{"no lines", 10, 0, 0},
		{"zero height", 0, 5, 20},
		{"negative height", -1, 5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewViewportManager(tt.height, tt.focus, tt.lines)

			if got := vm.CalculateOffset(); got != 0 {
				t.Errorf("CalculateOffset() = %d, want 0", got)
			}

			if vm.Phase() != TopPhase {
				t.Errorf("Phase() = %d, want TopPhase", vm.Phase())
			}
		})
	}
}
