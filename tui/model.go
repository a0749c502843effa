// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model that plays recorded traces through the playback scheduler

// Package tui provides an interactive terminal visualizer for algorithm traces.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"algoviz/config"
	"algoviz/dataset"
	"algoviz/playback"
	"algoviz/searching"
	"algoviz/sorting"
	"algoviz/trace"
	"algoviz/tree"
)

// Panel identifiers
const (
	panelParams = "params"
	panelVisual = "visual"
)

// Layout constants for UI dimensions
const (
	paramPanelWidth = 42 // Left panel width for parameter controls
	panelPadding    = 2  // Horizontal spacing between panels

	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2 // Panel title bars
	messageHeight   = 2 // Step message under the title
	statusBarHeight = 1 // Bottom status bar
	inputHeight     = 1 // Value prompt line
	helpHeight      = 1 // Help text line
	spacingHeight   = 2 // Vertical spacing between elements
	totalUIChrome   = titleHeight + messageHeight + statusBarHeight + inputHeight + helpHeight + spacingHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 5
)

const (
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
	maxUndoStackSize      = 50              // Maximum undo/redo history items
	eventBuffer           = 64              // Scheduler events queued for the UI loop
	randomTreeSize        = 7               // Nodes in a generated tree
)

// Parameter names, also used for name-based reset
const (
	paramSpeed           = "Speed"
	paramArraySize       = "Array Size"
	paramSortAlgorithm   = "Sort Algorithm"
	paramSearchAlgorithm = "Search Algorithm"
	paramTreeType        = "Tree Type"
	paramTraversal       = "Traversal"
)

// inputMode says what the value prompt is collecting
type inputMode int

const (
	inputNone inputMode = iota
	inputInsert
	inputDelete
	inputSearch
)

// configReloadMsg carries a config re-read after the file changed on disk
type configReloadMsg struct {
	cfg config.Config
	err error
}

// model holds the TUI state
type model struct {
	// Dependencies
	sharedConfig ConfigProvider
	player       Player
	watcher      *config.Watcher
	rng          *rand.Rand
	debugf       func(string, ...interface{})

	// Configuration
	localConfig *config.Config // Local config that params point to (pointer so addresses stay valid)
	paramMgr    *ParamManager
	configPath  string

	// Playback lifecycle
	// Framework exception: Context stored in struct because Bubble Tea's Init/Update/View
	// pattern doesn't allow passing context through function parameters.
	ctx    context.Context    //nolint:containedctx // See framework exception above
	cancel context.CancelFunc // Stops forwarding scheduler events and the config watcher
	events chan playback.Event
	epoch  uint64 // Scheduler epoch of the trace on screen; other events are stale

	// Entities
	domain    Domain
	array     []int      // Sorting input
	sorted    []int      // Searching input, kept in ascending order
	tree      *tree.Tree // Tree visualizer entity
	target    int
	hasTarget bool

	// Trace on screen
	current   trace.Trace
	step      *trace.Step // Last step accepted for the current epoch
	stepIndex int         // Steps shown so far
	done      bool
	outcome   string // Summary shown once playback completes

	// Value prompt
	input     textinput.Model
	inputMode inputMode

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string
	statusMsgAge time.Time
	focusedPanel string
	viewport     viewport.Model
	focusLine    int // Rendered line holding the highlighted row or node
	undoMgr      *UndoManager
}

// Key bindings
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Tab   key.Binding
	Reset key.Binding
	Quit  key.Binding
	// Domains
	SortView   key.Binding
	SearchView key.Binding
	TreeView   key.Binding
	// Playback
	Play   key.Binding
	Step   key.Binding
	Replay key.Binding
	Stop   key.Binding
	Faster key.Binding
	Slower key.Binding
	// Entity editing
	Generate key.Binding
	Clear    key.Binding
	Insert   key.Binding
	Delete   key.Binding
	Search   key.Binding
	Traverse key.Binding
	Min      key.Binding
	Max      key.Binding
	Undo     key.Binding
	Redo     key.Binding
	// Prompt
	Submit key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease param"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase param"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset params"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	SortView: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "sorting"),
	),
	SearchView: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "searching"),
	),
	TreeView: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "tree"),
	),
	Play: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/pause"),
	),
	Step: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "step"),
	),
	Replay: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "replay"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "slower"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	Insert: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "insert"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Traverse: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "traverse"),
	),
	Min: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "find min"),
	),
	Max: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "find max"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	m := initModel(opts, deps)

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		m.shutdown()

		return fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := finalModel.(model); ok && fm.quitting {
		fmt.Printf("Saved settings to: %s\n", fm.configPath)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) model {
	cfg := deps.SharedConfig.Get()

	// Allocate localConfig on heap so pointers remain valid
	localConfig := &cfg

	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	clock := deps.Clock
	if clock == nil {
		clock = playback.RealClock()
	}

	rng := deps.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan playback.Event, eventBuffer)

	player := playback.New(clock, playback.Forward(ctx, events),
		playback.WithBaseDelay(cfg.BaseDelay()),
		playback.WithSpeed(cfg.Speed),
		playback.WithDebug(debugf),
	)

	var watcher *config.Watcher

	if opts.Watch && deps.ConfigPath != "" {
		w, err := config.NewWatcher(deps.ConfigPath, debugf)
		if err != nil {
			debugf("[TUI] Config watching disabled: %v", err)
		} else {
			watcher = w
		}
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 32
	input.Width = 30

	m := model{
		sharedConfig: deps.SharedConfig,
		player:       player,
		watcher:      watcher,
		rng:          rng,
		debugf:       debugf,

		localConfig: localConfig,
		configPath:  deps.ConfigPath,

		ctx:    ctx,
		cancel: cancel,
		events: events,

		domain: opts.Domain,
		array:  dataset.Default(),
		sorted: dataset.DefaultSorted(),
		tree:   tree.Sample(treeType(cfg.TreeType)),

		input: input,

		viewport:     viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		focusedPanel: panelParams,
		undoMgr:      NewUndoManager(maxUndoStackSize),
	}

	m.paramMgr = NewParamManager([]Parameter{
		{Name: paramSpeed, Value: &localConfig.Speed, Min: playback.MinSpeed, Max: playback.MaxSpeed, Step: 0.25},
		{Name: paramArraySize, IntValue: &localConfig.ArraySize, Min: dataset.MinSize, Max: dataset.MaxSize, Step: 1, IsInt: true},
		{Name: paramSortAlgorithm, Choice: &localConfig.SortAlgorithm, Choices: ids(sorting.Algorithms())},
		{Name: paramSearchAlgorithm, Choice: &localConfig.SearchAlgorithm, Choices: ids(searching.Algorithms())},
		{Name: paramTreeType, Choice: &localConfig.TreeType, Choices: ids(tree.Types())},
		{Name: paramTraversal, Choice: &localConfig.Traversal, Choices: ids(tree.Orders())},
	})

	return m
}

// ids converts typed names to the strings stored in config
func ids[T ~string](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}

	return out
}

// treeType parses a configured tree type, falling back to a BST
func treeType(s string) tree.Type {
	t, err := tree.ParseType(s)
	if err != nil {
		return tree.BST
	}

	return t
}

// ========== Bubble Tea Lifecycle ==========

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		watchConfig(m.ctx, m.watcher),
	)
}

// waitForEvent waits for scheduler events and returns them as messages
func waitForEvent(events <-chan playback.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}

		return ev
	}
}

// watchConfig waits for the next change to the config file
func watchConfig(ctx context.Context, w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		cfg, err := w.Next(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, config.ErrWatcherClosed) {
			return nil
		}

		return configReloadMsg{cfg: cfg, err: err}
	}
}

// shutdown stops playback, event forwarding and the watcher
func (m *model) shutdown() {
	m.cancel()

	if err := m.player.Close(); err != nil && !errors.Is(err, playback.ErrClosed) {
		m.debugf("[TUI] Closing player: %v", err)
	}

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.debugf("[TUI] Closing watcher: %v", err)
		}
	}
}

// ========== Helper Methods ==========

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// setError reports an error on the status line; errors are never fatal
func (m *model) setError(err error) {
	m.debugf("[TUI] %v", err)
	m.setStatusMsg("Error: " + err.Error())
}

// entities captures the editable state for undo
func (m *model) entities() EntityState {
	return EntityState{Array: m.array, Sorted: m.sorted, Tree: m.tree}
}

// pushUndo saves the current entities before an edit
func (m *model) pushUndo() {
	m.undoMgr.Push(m.entities())
}

// restore swaps in entities from history and clears the screen of stale steps
func (m *model) restore(state EntityState) {
	m.stopPlayback()
	m.array = state.Array
	m.sorted = state.Sorted

	if state.Tree != nil {
		m.tree = state.Tree
	}
}

// play starts tr from its first step. Start cancels whatever was playing.
func (m *model) play(tr trace.Trace, outcome string) {
	if err := m.player.Start(tr, m.localConfig.Speed); err != nil {
		m.setError(err)
		return
	}

	m.show(tr, outcome)
	m.debugf("[TUI] Playing %s: %d steps, epoch %d", tr.Algorithm(), tr.Len(), m.epoch)
}

// show resets the on-screen trace to the scheduler's current epoch
func (m *model) show(tr trace.Trace, outcome string) {
	m.epoch = m.player.State().Epoch
	m.current = tr
	m.step = nil
	m.stepIndex = 0
	m.done = false
	m.outcome = outcome
	m.updateViewportContent()
}

// stopPlayback cancels playback and returns the panel to the entity view
func (m *model) stopPlayback() {
	if err := m.player.Stop(); err != nil {
		m.debugf("[TUI] Stop failed: %v", err)
	}

	m.show(trace.Trace{}, "")
}

// handleEvent applies a scheduler event unless it belongs to an old epoch
func (m *model) handleEvent(ev playback.Event) {
	if ev.Epoch != m.epoch {
		m.debugf("[TUI] Ignoring stale event: epoch %d != current %d", ev.Epoch, m.epoch)
		return
	}

	switch ev.Kind {
	case playback.StepEvent:
		step := ev.Step
		m.step = &step
		m.stepIndex = ev.Index + 1
	case playback.CompleteEvent:
		m.done = true

		msg := "Playback complete"
		if m.outcome != "" {
			msg = m.outcome
		}

		m.setStatusMsg(msg)
		m.debugf("[TUI] Completed %s, epoch %d", m.current.Algorithm(), ev.Epoch)
	}

	m.updateViewportContent()
	m.ensureFocusVisible()
}

// ensureFocusVisible scrolls so the highlighted line stays on screen
func (m *model) ensureFocusVisible() {
	vm := NewViewportManager(m.viewport.Height, m.focusLine, m.viewport.TotalLineCount())
	m.viewport.SetYOffset(vm.CalculateOffset())
}

// syncConfig publishes local edits and applies the ones with live effects
func (m *model) syncConfig() {
	*m.localConfig = m.localConfig.Clamp()
	m.sharedConfig.Update(*m.localConfig)

	if err := m.player.SetSpeed(m.localConfig.Speed); err != nil {
		m.debugf("[TUI] SetSpeed failed: %v", err)
	}

	if kind := treeType(m.localConfig.TreeType); kind != m.tree.Type() {
		m.pushUndo()
		m.stopPlayback()
		m.tree = tree.FromValues(kind, m.tree.Values())
		m.debugf("[TUI] Rebuilt tree as %s with %d nodes", kind, m.tree.Count())
	}

	m.updateViewportContent()
}

// ========== Operations ==========

// defaultTrace builds the trace that space or n plays in the current domain.
// Sorting swaps the sorted result into the array entity as an undoable edit.
func (m *model) defaultTrace() (trace.Trace, string, error) {
	switch m.domain {
	case SortDomain:
		alg, err := sorting.Parse(m.localConfig.SortAlgorithm)
		if err != nil {
			return trace.Trace{}, "", err
		}

		tr, err := sorting.Run(alg, m.array)
		if err != nil {
			return trace.Trace{}, "", err
		}

		if sorted := tr.Last().Array; !slices.Equal(sorted, m.array) {
			m.pushUndo()
			m.array = slices.Clone(sorted)
		}

		return tr, "", nil
	case SearchDomain:
		if !m.hasTarget {
			return trace.Trace{}, "", dataset.ErrMissingTarget
		}

		return m.searchArray(m.target)
	default:
		order, err := tree.ParseOrder(m.localConfig.Traversal)
		if err != nil {
			return trace.Trace{}, "", err
		}

		tr, _, err := tree.Traverse(m.tree, order)
		if err != nil {
			return trace.Trace{}, "", err
		}

		return tr, tr.Last().Message, nil
	}
}

// searchArray runs the configured search over the sorted array
func (m *model) searchArray(target int) (trace.Trace, string, error) {
	alg, err := searching.Parse(m.localConfig.SearchAlgorithm)
	if err != nil {
		return trace.Trace{}, "", err
	}

	tr, err := searching.Run(alg, m.sorted, target)
	if err != nil {
		return trace.Trace{}, "", err
	}

	return tr, outcomeOf(tr, target), nil
}

// outcomeOf summarizes a search result
func outcomeOf(tr trace.Trace, target int) string {
	res := tr.Last().Result
	if res == nil || !res.Found {
		return fmt.Sprintf("%d not found", target)
	}

	return fmt.Sprintf("Found %d at %d", target, res.Index)
}

// togglePlay starts, pauses or resumes playback
func (m *model) togglePlay() tea.Cmd {
	switch m.player.State().Mode {
	case playback.Running:
		if err := m.player.Pause(); err != nil {
			m.setError(err)
		}
	case playback.Paused:
		if err := m.player.Resume(); err != nil {
			m.setError(err)
		}
	default:
		if m.domain == SearchDomain && !m.hasTarget {
			return m.openInput(inputSearch)
		}

		tr, outcome, err := m.defaultTrace()
		if err != nil {
			m.setError(err)
			return nil
		}

		m.play(tr, outcome)
	}

	return nil
}

// stepForward shows one step, loading the domain's trace when nothing is loaded
func (m *model) stepForward() {
	st := m.player.State()

	switch st.Mode {
	case playback.Running:
		if err := m.player.Pause(); err != nil {
			m.setError(err)
			return
		}
	case playback.Completed:
		m.setStatusMsg("Playback complete, press R to replay")
		return
	case playback.Idle:
		tr, outcome, err := m.defaultTrace()
		if err != nil {
			m.setError(err)
			return
		}

		if err := m.player.Load(tr); err != nil {
			m.setError(err)
			return
		}

		m.show(tr, outcome)
	}

	if err := m.player.StepForward(); err != nil {
		m.setError(err)
	}
}

// replay restarts the trace on screen in a new epoch
func (m *model) replay() {
	if m.current.Empty() {
		m.setStatusMsg("Nothing to replay")
		return
	}

	if err := m.player.Replay(); err != nil {
		m.setError(err)
		return
	}

	m.show(m.current, m.outcome)
}

// generate replaces the domain's entity with random values
func (m *model) generate() {
	m.pushUndo()
	m.stopPlayback()

	switch m.domain {
	case SortDomain:
		m.array = dataset.Generate(m.localConfig.ArraySize, m.rng)
	case SearchDomain:
		m.sorted = dataset.GenerateSorted(m.localConfig.ArraySize, m.rng)
	case TreeDomain:
		m.tree = tree.FromValues(m.tree.Type(), dataset.Generate(randomTreeSize, m.rng))
	}

	m.setStatusMsg("Generated new " + m.domain.String() + " data")
	m.updateViewportContent()
}

// clear empties the domain's entity
func (m *model) clear() {
	m.pushUndo()
	m.stopPlayback()

	switch m.domain {
	case SortDomain:
		m.array = []int{}
	case SearchDomain:
		m.sorted = []int{}
	case TreeDomain:
		m.tree = tree.New(m.tree.Type())
	}

	m.setStatusMsg("Cleared")
	m.updateViewportContent()
}

// switchDomain changes the visualizer, cancelling playback first
func (m *model) switchDomain(d Domain) {
	if d == m.domain {
		return
	}

	m.stopPlayback()
	m.closeInput()
	m.domain = d
	m.setStatusMsg(d.String())
	m.updateViewportContent()
}

// undo restores previous entities from undo stack using UndoManager
func (m *model) undo() {
	state, ok := m.undoMgr.Undo(m.entities())
	if !ok {
		m.setStatusMsg("Nothing to undo")
		return
	}

	m.restore(state)
	m.setStatusMsg(fmt.Sprintf("Undo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
}

// redo restores next entities from redo stack using UndoManager
func (m *model) redo() {
	state, ok := m.undoMgr.Redo(m.entities())
	if !ok {
		m.setStatusMsg("Nothing to redo")
		return
	}

	m.restore(state)
	m.setStatusMsg(fmt.Sprintf("Redo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
}

// runTreeQuery plays find-min or find-max on a BST
func (m *model) runTreeQuery(find func(*tree.Tree) (trace.Trace, error)) {
	tr, err := find(m.tree)
	if err != nil {
		m.setError(err)
		return
	}

	m.play(tr, tr.Last().Message)
}
