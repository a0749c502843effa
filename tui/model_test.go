// ABOUTME: Unit tests for TUI model behavior
// ABOUTME: Tests initialization, parameter sync, the value prompt and entity edits

package tui

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"algoviz/config"
	"algoviz/dataset"
	"algoviz/playback"
	"algoviz/tree"
)

// createTestModel creates a model on a manual clock with a temp config path
func createTestModel(t *testing.T) (model, *playback.ManualClock) {
	t.Helper()

	clock := playback.NewManualClock(time.Unix(0, 0))

	deps := Dependencies{
		SharedConfig: config.NewSharedConfig(config.DefaultConfig()),
		Clock:        clock,
		Rand:         rand.New(rand.NewPCG(1, 2)),
		Debugf:       t.Logf,
		ConfigPath:   filepath.Join(t.TempDir(), "algoviz.toml"),
	}

	m := initModel(Options{}, deps)
	t.Cleanup(m.cancel)

	return m, clock
}

// press sends a key through Update
func press(t *testing.T, m model, k string) model {
	t.Helper()

	var msg tea.KeyMsg

	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}

	updated, _ := m.Update(msg)

	return updated.(model)
}

// typeText sends each rune of s to the open prompt
func typeText(t *testing.T, m model, s string) model {
	t.Helper()

	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(model)
	}

	return m
}

// selectParam moves the params cursor to the named parameter
func selectParam(t *testing.T, m model, name string) model {
	t.Helper()

	for i, p := range m.paramMgr.All() {
		if p.Name == name {
			m.paramMgr.SetSelected(i)
			return m
		}
	}

	t.Fatalf("no parameter %q", name)

	return m
}

func TestModelInitialization(t *testing.T) {
	m, _ := createTestModel(t)

	if m.domain != SortDomain {
		t.Errorf("Expected sorting view first, got %s", m.domain)
	}

	if !slices.Equal(m.array, dataset.Default()) {
		t.Errorf("Expected default array, got %v", m.array)
	}

	if !slices.Equal(m.sorted, dataset.DefaultSorted()) {
		t.Errorf("Expected default sorted array, got %v", m.sorted)
	}

	if m.tree.Type() != tree.BST || m.tree.Count() != 7 {
		t.Errorf("Expected 7 node sample BST, got %s with %d nodes", m.tree.Type(), m.tree.Count())
	}

	if m.paramMgr.Len() != 6 {
		t.Errorf("Expected 6 parameters, got %d", m.paramMgr.Len())
	}

	if m.focusedPanel != panelParams {
		t.Errorf("Expected params panel focused, got %s", m.focusedPanel)
	}

	if st := m.player.State(); st.Mode != playback.Idle {
		t.Errorf("Expected idle player, got %s", st.Mode)
	}
}

func TestSpeedParamUpdatesPlayerAndSharedConfig(t *testing.T) {
	m, _ := createTestModel(t)
	m = selectParam(t, m, paramSpeed)

	m = press(t, m, "right")

	if m.localConfig.Speed != 1.25 {
		t.Errorf("Expected local speed 1.25, got %.2f", m.localConfig.Speed)
	}

	if got := m.sharedConfig.Get().Speed; got != 1.25 {
		t.Errorf("Expected shared speed 1.25, got %.2f", got)
	}

	if got := m.player.State().Speed; got != 1.25 {
		t.Errorf("Expected player speed 1.25, got %.2f", got)
	}
}

func TestSpeedKeysWorkFromAnyPanel(t *testing.T) {
	m, _ := createTestModel(t)
	m = press(t, m, "tab")

	m = press(t, m, "+")
	m = press(t, m, "+")
	m = press(t, m, "-")

	if got := m.player.State().Speed; got != 1.25 {
		t.Errorf("Expected speed 1.25, got %.2f", got)
	}
}

func TestTreeTypeParamRebuildsTree(t *testing.T) {
	m, _ := createTestModel(t)
	before := m.tree.Values()
	slices.Sort(before)

	m = selectParam(t, m, paramTreeType)
	m = press(t, m, "right") // bst -> complete

	if m.tree.Type() != tree.Complete {
		t.Fatalf("Expected complete tree, got %s", m.tree.Type())
	}

	after := m.tree.Values()
	slices.Sort(after)

	if !slices.Equal(before, after) {
		t.Errorf("Rebuild changed values: %v -> %v", before, after)
	}

	if m.undoMgr.UndoSize() != 1 {
		t.Errorf("Expected rebuild to be undoable, undo size %d", m.undoMgr.UndoSize())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	m, _ := createTestModel(t)
	m = selectParam(t, m, paramSortAlgorithm)
	m = press(t, m, "right")

	if m.localConfig.SortAlgorithm == "bubble" {
		t.Fatal("Expected sort algorithm to change")
	}

	m = press(t, m, "r")

	if m.localConfig.SortAlgorithm != "bubble" {
		t.Errorf("Expected reset to bubble, got %s", m.localConfig.SortAlgorithm)
	}
}

func TestInsertIntoArrayAtIndex(t *testing.T) {
	m, _ := createTestModel(t)

	m = press(t, m, "i")
	if m.inputMode != inputInsert {
		t.Fatalf("Expected insert prompt, got mode %d", m.inputMode)
	}

	m = typeText(t, m, "7 0")
	m = press(t, m, "enter")

	if m.inputMode != inputNone {
		t.Error("Prompt should close after enter")
	}

	if m.array[0] != 7 || len(m.array) != len(dataset.Default())+1 {
		t.Errorf("Expected 7 inserted at index 0, got %v", m.array)
	}
}

func TestInsertKeepsSearchArraySorted(t *testing.T) {
	m, _ := createTestModel(t)
	m = press(t, m, "2")

	m = press(t, m, "i")
	m = typeText(t, m, "50")
	m = press(t, m, "enter")

	if !slices.IsSorted(m.sorted) || !slices.Contains(m.sorted, 50) {
		t.Errorf("Expected 50 inserted in order, got %v", m.sorted)
	}
}

func TestInvalidInputReportsErrorWithoutChanges(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		text   string
		errMsg string
	}{
		{"non numeric insert", []string{"i"}, "abc", "valid number"},
		{"index out of range", []string{"x"}, "99", "index out of range"},
		{"empty search target", []string{"2", "/"}, "", "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := createTestModel(t)

			for _, k := range tt.keys {
				m = press(t, m, k)
			}

			m = typeText(t, m, tt.text)
			m = press(t, m, "enter")

			if !strings.Contains(m.statusMsg, tt.errMsg) {
				t.Errorf("Expected status containing %q, got %q", tt.errMsg, m.statusMsg)
			}

			if !slices.Equal(m.array, dataset.Default()) {
				t.Errorf("Array changed on invalid input: %v", m.array)
			}

			if m.player.State().Mode != playback.Idle {
				t.Errorf("No trace should start on invalid input, mode %s", m.player.State().Mode)
			}
		})
	}
}

func TestEscapeCancelsPrompt(t *testing.T) {
	m, _ := createTestModel(t)

	m = press(t, m, "i")
	m = typeText(t, m, "5")
	m = press(t, m, "esc")

	if m.inputMode != inputNone {
		t.Error("Expected prompt closed")
	}

	if len(m.array) != len(dataset.Default()) {
		t.Errorf("Cancelled insert changed the array: %v", m.array)
	}
}

func TestGenerateClearUndoRedo(t *testing.T) {
	m, _ := createTestModel(t)
	original := slices.Clone(m.array)

	m = press(t, m, "g")
	if len(m.array) != config.DefaultConfig().ArraySize {
		t.Errorf("Expected %d generated values, got %d", config.DefaultConfig().ArraySize, len(m.array))
	}

	generated := slices.Clone(m.array)

	m = press(t, m, "c")
	if len(m.array) != 0 {
		t.Errorf("Expected cleared array, got %v", m.array)
	}

	m = press(t, m, "u")
	if !slices.Equal(m.array, generated) {
		t.Errorf("Undo should restore generated array, got %v", m.array)
	}

	m = press(t, m, "u")
	if !slices.Equal(m.array, original) {
		t.Errorf("Second undo should restore original array, got %v", m.array)
	}

	m = press(t, m, "ctrl+r")
	if !slices.Equal(m.array, generated) {
		t.Errorf("Redo should restore generated array, got %v", m.array)
	}
}

func TestTreeOnlyKeysOutsideTreeView(t *testing.T) {
	m, _ := createTestModel(t)

	m = press(t, m, "t")

	if m.player.State().Mode != playback.Idle {
		t.Error("Traverse should not run in the sorting view")
	}

	if !strings.Contains(m.statusMsg, "tree view") {
		t.Errorf("Expected hint about the tree view, got %q", m.statusMsg)
	}
}

func TestFindMinRequiresBST(t *testing.T) {
	m, _ := createTestModel(t)
	m = press(t, m, "3")

	m = selectParam(t, m, paramTreeType)
	m = press(t, m, "left") // bst -> generic

	m = press(t, m, "m")

	if !strings.Contains(m.statusMsg, "binary search tree") {
		t.Errorf("Expected BST error, got %q", m.statusMsg)
	}
}

func TestConfigReloadAppliesSettings(t *testing.T) {
	m, _ := createTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Speed = 4
	cfg.SortAlgorithm = "merge"

	updated, _ := m.Update(configReloadMsg{cfg: cfg})
	m = updated.(model)

	if m.player.State().Speed != 4 {
		t.Errorf("Expected player speed 4, got %.2f", m.player.State().Speed)
	}

	if m.sharedConfig.Get().SortAlgorithm != "merge" {
		t.Errorf("Expected shared config updated, got %s", m.sharedConfig.Get().SortAlgorithm)
	}

	if m.statusMsg != "Config reloaded" {
		t.Errorf("Unexpected status %q", m.statusMsg)
	}
}

func TestQuitSavesConfig(t *testing.T) {
	m, _ := createTestModel(t)
	m = selectParam(t, m, paramSpeed)
	m = press(t, m, "right")

	m = press(t, m, "q")

	if !m.quitting {
		t.Fatal("Expected quitting")
	}

	if _, err := os.Stat(m.configPath); err != nil {
		t.Fatalf("Expected config saved: %v", err)
	}

	saved, err := config.LoadConfig(m.configPath)
	if err != nil {
		t.Fatal(err)
	}

	if saved.Speed != 1.25 {
		t.Errorf("Expected saved speed 1.25, got %.2f", saved.Speed)
	}

	if err := m.player.Close(); err != playback.ErrClosed {
		t.Errorf("Expected player closed on quit, got %v", err)
	}
}

func TestViewRendersPanels(t *testing.T) {
	m, _ := createTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = updated.(model)

	view := m.View()

	for _, want := range []string{"Settings", "Sorting: Bubble Sort", "Press space to start", "IDLE"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}
