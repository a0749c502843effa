// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and the panel, status and help renderers

package tui

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"algoviz/searching"
	"algoviz/sorting"
	"algoviz/tree"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving config and exiting...\n"
	}

	panelHeight := m.height - (statusBarHeight + inputHeight + helpHeight + 1)

	leftPanelStyle := lipgloss.NewStyle().
		Width(paramPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	rightPanelWidth := m.width - paramPanelWidth - panelPadding
	if rightPanelWidth < minViewportWidth*2 {
		rightPanelWidth = minViewportWidth * 2
	}

	rightPanelStyle := lipgloss.NewStyle().
		Width(rightPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	combined := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanelStyle.Render(m.renderParameters()),
		rightPanelStyle.Render(m.renderVisual()),
	)

	return combined + "\n" + m.renderStatus() + "\n" + m.renderPrompt() + "\n" + m.renderHelp()
}

// renderParameters renders the parameter control panel
func (m model) renderParameters() string {
	var s strings.Builder

	title := "Settings"
	if m.focusedPanel == panelParams {
		title = "► " + title + " [FOCUSED]"
	}

	s.WriteString(titleStyle.Render(title) + "\n\n")

	for i, param := range m.paramMgr.All() {
		prefix := "  "
		if i == m.paramMgr.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-18s %12s", prefix, param.Name, formatValue(param))

		if i == m.paramMgr.Selected() {
			s.WriteString(selectedParamStyle.Render(line) + "\n")
		} else {
			s.WriteString(paramStyle.Render(line) + "\n")
		}
	}

	s.WriteString("\n" + helpStyle.Render(fmt.Sprintf("  Undo: %d  Redo: %d", m.undoMgr.UndoSize(), m.undoMgr.RedoSize())))

	return s.String()
}

// formatValue renders a parameter value with fixed formatting per kind
func formatValue(p Parameter) string {
	switch {
	case p.IsChoice():
		return *p.Choice
	case p.IsInt && p.IntValue != nil:
		return strconv.Itoa(*p.IntValue)
	case p.Value != nil:
		return fmt.Sprintf("%.2fx", *p.Value)
	default:
		return "N/A"
	}
}

// renderVisual renders the current step or entity with its message
func (m model) renderVisual() string {
	title := m.domain.String() + ": " + m.algorithmName()
	if m.focusedPanel == panelVisual {
		title = "► " + title + " [FOCUSED]"
	}

	message := "Press space to start"

	switch {
	case m.step != nil:
		message = m.step.Message
	case m.domain == SearchDomain && m.hasTarget:
		message = fmt.Sprintf("Target %d, press space to search", m.target)
	case m.domain == SearchDomain:
		message = "Press / to choose a target"
	}

	return titleStyle.Render(title) + "\n\n" +
		messageStyle.Render(message) + "\n\n" +
		m.viewport.View()
}

// algorithmName names what space would run in the current domain
func (m model) algorithmName() string {
	switch m.domain {
	case SortDomain:
		return sorting.Algorithm(m.localConfig.SortAlgorithm).Name()
	case SearchDomain:
		return searching.Algorithm(m.localConfig.SearchAlgorithm).Name()
	default:
		return m.tree.Type().Name() + " (" + string(tree.Order(m.localConfig.Traversal)) + ")"
	}
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	// Show status message if recent
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	st := m.player.State()

	status := fmt.Sprintf("[%s] %.2fx", strings.ToUpper(st.Mode.String()), st.Speed)

	if m.current.Len() > 0 {
		status += fmt.Sprintf(" | Step %d/%d", m.stepIndex, m.current.Len())
	}

	if m.step != nil {
		stats := m.step.Stats
		status += fmt.Sprintf(" | Comparisons: %d | Swaps: %d | Accesses: %d | Iterations: %d",
			stats.Comparisons, stats.Swaps, stats.Accesses, stats.Iterations)
	}

	return statusStyle.Width(m.width).Render(status)
}

// renderPrompt renders the value prompt when it is open
func (m model) renderPrompt() string {
	if m.inputMode == inputNone {
		return ""
	}

	return m.input.View()
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	if m.inputMode != inputNone {
		return helpStyle.Render(" enter: confirm | esc: cancel")
	}

	return helpStyle.Render(" 1/2/3: view | space: start/pause | n: step | R: replay | s: stop | +/-: speed | g: generate | c: clear | i: insert | x: delete | /: search | t: traverse | m/M: min/max | u/ctrl+r: undo/redo | tab | q: quit")
}
