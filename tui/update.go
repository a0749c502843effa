// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function, key handlers and the value prompt

package tui

import (
	"runtime/debug"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"algoviz/config"
	"algoviz/dataset"
	"algoviz/playback"
	"algoviz/tree"
)

// speedStep is how much +/- change the playback speed
const speedStep = 0.25

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportWidth := msg.Width - paramPanelWidth - panelPadding
		if viewportWidth < minViewportWidth {
			viewportWidth = minViewportWidth
		}

		viewportHeight := msg.Height - totalUIChrome
		if viewportHeight < minViewportHeight {
			viewportHeight = minViewportHeight
		}

		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight
		m.viewport.YOffset = 0

		m.updateViewportContent()
		m.ensureFocusVisible()

		return m, nil

	case playback.Event:
		m.handleEvent(msg)

		// Queue next event
		return m, waitForEvent(m.events)

	case configReloadMsg:
		m.handleConfigReload(msg)

		return m, watchConfig(m.ctx, m.watcher)

	case tea.KeyMsg:
		if m.inputMode != inputNone {
			cmd := m.handlePromptKey(msg)
			return m, cmd
		}

		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a key press outside the value prompt
func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()

	case key.Matches(msg, keys.Tab):
		m.handleTabKey()

	case key.Matches(msg, keys.Up):
		m.handleUpKey()

	case key.Matches(msg, keys.Down):
		m.handleDownKey()

	case key.Matches(msg, keys.Left):
		m.handleAdjustKey(false)

	case key.Matches(msg, keys.Right):
		m.handleAdjustKey(true)

	case key.Matches(msg, keys.Reset):
		m.paramMgr.ResetToDefaults(config.DefaultConfig())
		m.syncConfig()
		m.setStatusMsg("Parameters reset to defaults")

	case key.Matches(msg, keys.SortView):
		m.switchDomain(SortDomain)

	case key.Matches(msg, keys.SearchView):
		m.switchDomain(SearchDomain)

	case key.Matches(msg, keys.TreeView):
		m.switchDomain(TreeDomain)

	case key.Matches(msg, keys.Play):
		cmd := m.togglePlay()
		return m, cmd

	case key.Matches(msg, keys.Step):
		m.stepForward()

	case key.Matches(msg, keys.Replay):
		m.replay()

	case key.Matches(msg, keys.Stop):
		m.stopPlayback()
		m.setStatusMsg("Stopped")

	case key.Matches(msg, keys.Faster):
		m.changeSpeed(speedStep)

	case key.Matches(msg, keys.Slower):
		m.changeSpeed(-speedStep)

	case key.Matches(msg, keys.Generate):
		m.generate()

	case key.Matches(msg, keys.Clear):
		m.clear()

	case key.Matches(msg, keys.Insert):
		cmd := m.openInput(inputInsert)
		return m, cmd

	case key.Matches(msg, keys.Delete):
		cmd := m.openInput(inputDelete)
		return m, cmd

	case key.Matches(msg, keys.Search):
		if m.domain == SortDomain {
			m.setStatusMsg("Search is available in the searching and tree views")
			return m, nil
		}

		cmd := m.openInput(inputSearch)
		return m, cmd

	case key.Matches(msg, keys.Traverse):
		m.handleTreeOnly(func() {
			tr, outcome, err := m.defaultTrace()
			if err != nil {
				m.setError(err)
				return
			}

			m.play(tr, outcome)
		})

	case key.Matches(msg, keys.Min):
		m.handleTreeOnly(func() { m.runTreeQuery(tree.FindMin) })

	case key.Matches(msg, keys.Max):
		m.handleTreeOnly(func() { m.runTreeQuery(tree.FindMax) })

	case key.Matches(msg, keys.Undo):
		m.undo()

	case key.Matches(msg, keys.Redo):
		m.redo()
	}

	return m, nil
}

// handleQuitKey handles the quit key press
func (m model) handleQuitKey() (model, tea.Cmd) {
	m.quitting = true
	m.shutdown()

	// Save config on quit
	if err := config.SaveConfig(m.configPath, m.sharedConfig.Get()); err != nil {
		m.debugf("[TUI] Failed to save config on quit: %v", err)
		// Continue anyway - don't block quit on config save failure
	}

	return m, tea.Quit
}

// handleTabKey handles panel switching
func (m *model) handleTabKey() {
	if m.focusedPanel == panelParams {
		m.focusedPanel = panelVisual
	} else {
		m.focusedPanel = panelParams
	}
}

// handleUpKey selects the previous parameter or scrolls the visual panel
func (m *model) handleUpKey() {
	if m.focusedPanel == panelParams {
		m.paramMgr.SelectPrevious()
		return
	}

	m.viewport.SetYOffset(m.viewport.YOffset - 1)
}

// handleDownKey selects the next parameter or scrolls the visual panel
func (m *model) handleDownKey() {
	if m.focusedPanel == panelParams {
		m.paramMgr.SelectNext()
		return
	}

	m.viewport.SetYOffset(m.viewport.YOffset + 1)
}

// handleAdjustKey changes the selected parameter when params are focused
func (m *model) handleAdjustKey(increase bool) {
	if m.focusedPanel != panelParams {
		return
	}

	var changed bool
	if increase {
		changed = m.paramMgr.Increase()
	} else {
		changed = m.paramMgr.Decrease()
	}

	if !changed {
		return
	}

	if p := m.paramMgr.GetSelected(); p != nil {
		m.debugf("[TUI] Parameter changed - %s", p.Name)
	}

	m.syncConfig()
}

// changeSpeed nudges the speed from any panel
func (m *model) changeSpeed(delta float64) {
	m.localConfig.Speed = playback.ClampSpeed(m.localConfig.Speed + delta)
	m.syncConfig()
}

// handleTreeOnly runs fn in the tree view and explains otherwise
func (m *model) handleTreeOnly(fn func()) {
	if m.domain != TreeDomain {
		m.setStatusMsg("Press 3 for the tree view")
		return
	}

	fn()
}

// handleConfigReload applies a config file edited outside the TUI
func (m *model) handleConfigReload(msg configReloadMsg) {
	if msg.err != nil {
		m.setError(msg.err)
		return
	}

	*m.localConfig = msg.cfg
	m.syncConfig()
	m.setStatusMsg("Config reloaded")
}

// ========== Value Prompt ==========

// openInput shows the value prompt for mode
func (m *model) openInput(mode inputMode) tea.Cmd {
	m.inputMode = mode
	m.input.Reset()
	m.input.Placeholder = m.placeholder()

	return m.input.Focus()
}

// closeInput hides the value prompt
func (m *model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.Reset()
}

// placeholder describes what the prompt expects
func (m *model) placeholder() string {
	switch m.inputMode {
	case inputInsert:
		switch m.domain {
		case SortDomain:
			return "value [index]"
		default:
			return "value to insert"
		}
	case inputDelete:
		if m.domain == TreeDomain {
			return "value to delete"
		}

		return "index to delete"
	case inputSearch:
		return "value to search for"
	default:
		return ""
	}
}

// handlePromptKey feeds keys to the prompt until it is submitted or cancelled
func (m *model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closeInput()
		return nil

	case key.Matches(msg, keys.Submit):
		mode, value := m.inputMode, m.input.Value()
		m.closeInput()

		if err := m.submit(mode, value); err != nil {
			m.setError(err)
		}

		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return cmd
}

// submit validates the prompt value and performs the edit or query.
// Invalid input never reaches a runner.
func (m *model) submit(mode inputMode, value string) error {
	switch mode {
	case inputInsert:
		return m.insert(value)
	case inputDelete:
		return m.delete(value)
	case inputSearch:
		return m.search(value)
	default:
		return nil
	}
}

// insert adds a value to the domain's entity
func (m *model) insert(s string) error {
	if m.domain == TreeDomain {
		v, err := dataset.ParseValue(s)
		if err != nil {
			return err
		}

		m.pushUndo()

		next, tr := tree.Insert(m.tree, v)
		m.tree = next
		m.play(tr, tr.Last().Message)

		return nil
	}

	values, err := dataset.ParseValues(s)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return dataset.ErrMissingTarget
	}

	arr := m.array
	if m.domain == SearchDomain {
		arr = m.sorted
	}

	if len(arr) >= dataset.MaxSize {
		return dataset.ErrFull
	}

	v, idx := values[0], len(arr)

	switch {
	case m.domain == SearchDomain:
		idx, _ = slices.BinarySearch(arr, v)
	case len(values) > 1:
		idx = values[1]
	}

	next, err := dataset.Insert(arr, idx, v)
	if err != nil {
		return err
	}

	m.pushUndo()
	m.stopPlayback()
	m.setArray(next)
	m.setStatusMsg("Inserted value")

	return nil
}

// delete removes a tree value or an array index
func (m *model) delete(s string) error {
	if m.domain == TreeDomain {
		v, err := dataset.ParseValue(s)
		if err != nil {
			return err
		}

		if m.tree.Contains(v) {
			m.pushUndo()
		}

		next, tr, err := tree.Delete(m.tree, v)
		if err != nil {
			return err
		}

		m.tree = next
		m.play(tr, tr.Last().Message)

		return nil
	}

	arr := m.array
	if m.domain == SearchDomain {
		arr = m.sorted
	}

	if len(arr) == 0 {
		return dataset.ErrEmpty
	}

	idx, err := dataset.ParseIndex(s, len(arr))
	if err != nil {
		return err
	}

	next, _, err := dataset.Delete(arr, idx)
	if err != nil {
		return err
	}

	m.pushUndo()
	m.stopPlayback()
	m.setArray(next)
	m.setStatusMsg("Deleted value")

	return nil
}

// search plays a search for the value in the current domain
func (m *model) search(s string) error {
	v, err := dataset.ParseValue(s)
	if err != nil {
		return err
	}

	if m.domain == TreeDomain {
		tr, err := tree.Search(m.tree, v)
		if err != nil {
			return err
		}

		m.play(tr, outcomeOf(tr, v))

		return nil
	}

	m.target, m.hasTarget = v, true

	tr, outcome, err := m.searchArray(v)
	if err != nil {
		return err
	}

	m.play(tr, outcome)

	return nil
}

// setArray replaces the array of the current array domain
func (m *model) setArray(arr []int) {
	if m.domain == SearchDomain {
		m.sorted = arr
	} else {
		m.array = arr
	}

	m.updateViewportContent()
}
