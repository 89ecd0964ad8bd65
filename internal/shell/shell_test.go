package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/backend/memory"
	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/settings"
	"github.com/rungrid/rungrid/internal/ui/contextmenu"
	"github.com/rungrid/rungrid/internal/ui/logview"
	"github.com/rungrid/rungrid/internal/ui/modal"
	"github.com/rungrid/rungrid/internal/ui/scrollarea"
	"github.com/rungrid/rungrid/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// harness drives a shell synchronously: every command is run and its message
// fed back until nothing is left. Commands that block (timers, blinking
// cursors) are dropped after a short wait.
type harness struct {
	t  *testing.T
	m  Model
	be *memory.Backend
	kv *settings.MemoryKV
}

func testItems() []backend.Item {
	return []backend.Item{
		{ID: "term", Name: "Terminal", Path: "/System/Terminal.app", Type: backend.ItemTypeSystem},
		{ID: "calc", Name: "Calculator", Path: "/Apps/Calculator.app", Type: backend.ItemTypeApp},
		{ID: "notes", Name: "Notes", Path: "/Apps/Notes.app", Type: backend.ItemTypeApp},
	}
}

func noTick(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }

func newHarness(t *testing.T, seed func(*settings.MemoryKV), opts ...memory.Option) *harness {
	t.Helper()
	return newHarnessSized(t, 80, 24, seed, opts...)
}

func newHarnessSized(t *testing.T, width, height int, seed func(*settings.MemoryKV), opts ...memory.Option) *harness {
	t.Helper()
	kv := settings.NewMemoryKV()
	if seed != nil {
		seed(kv)
	}
	be := memory.New(backend.NewBus(), append([]memory.Option{memory.WithItems(testItems()...)}, opts...)...)

	m := New(Config{
		Backend:  be,
		Settings: settings.NewStore(kv),
		Toasts:   toaster.NewQueue(toaster.WithTick(noTick)),
	})
	h := &harness{t: t, m: m, be: be, kv: kv}
	t.Cleanup(func() { h.m.Close() })

	h.send(tea.WindowSizeMsg{Width: width, Height: height})
	h.run(h.m.Init())
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(h.t, steps, 500, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := exec(c).(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, follow := h.m.Update(msg)
			h.m = next.(Model)
			queue = append(queue, follow)
		}
	}
}

func exec(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (h *harness) key(s string) {
	h.t.Helper()
	switch s {
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "down":
		h.send(tea.KeyMsg{Type: tea.KeyDown})
	case "up":
		h.send(tea.KeyMsg{Type: tea.KeyUp})
	case "ctrl+o":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlO})
	case "ctrl+r":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	case "ctrl+x":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlX})
	case "ctrl+s":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	case "ctrl+t":
		h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func (h *harness) press(button tea.MouseButton, x, y int) {
	h.t.Helper()
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
}

func (h *harness) names() []string {
	var out []string
	for _, it := range h.m.Items() {
		out = append(out, it.Name)
	}
	return out
}

func (h *harness) lastToast() toaster.Entry {
	h.t.Helper()
	entries := h.m.Toasts().Entries()
	require.NotEmpty(h.t, entries, "expected a toast")
	return entries[len(entries)-1]
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func TestInit_LoadsItemsSortedByName(t *testing.T) {
	h := newHarness(t, nil)

	require.Equal(t, []string{"Calculator", "Notes", "Terminal"}, h.names())
	view := h.view()
	require.Contains(t, view, "› Calculator")
	require.Contains(t, view, "3 items")
	require.Empty(t, h.m.Toasts().Entries())
}

func TestInit_LoadFailureShowsErrorToast(t *testing.T) {
	kv := settings.NewMemoryKV()
	be := memory.New(nil)
	be.Fail("ListItems", errors.New("index unavailable"))
	m := New(Config{Backend: be, Settings: settings.NewStore(kv), Toasts: toaster.NewQueue(toaster.WithTick(noTick))})
	h := &harness{t: t, m: m, be: be, kv: kv}
	t.Cleanup(func() { h.m.Close() })

	h.run(h.m.Init())

	toast := h.lastToast()
	require.Equal(t, toaster.ToneError, toast.Tone)
	require.Equal(t, "index unavailable", toast.Message)
}

func TestKeys_MoveAndLaunch(t *testing.T) {
	h := newHarness(t, nil)

	h.key("down")
	h.key("enter")

	require.Equal(t, 1, h.m.Selected())
	toast := h.lastToast()
	require.Equal(t, toaster.ToneSuccess, toast.Tone)
	require.Equal(t, "Notes", toast.Message)

	items, err := h.be.ListItems(context.Background(), "", "Notes")
	require.NoError(t, err)
	require.EqualValues(t, 1, items[0].LaunchCount)
}

func TestKeys_SelectionClampsAtEnds(t *testing.T) {
	h := newHarness(t, nil)

	h.key("up")
	require.Equal(t, 0, h.m.Selected())

	h.key("G")
	require.Equal(t, 2, h.m.Selected())
	h.key("down")
	require.Equal(t, 2, h.m.Selected())
}

func TestItemMenu_RemoveAfterConfirm(t *testing.T) {
	h := newHarness(t, nil)

	h.key("m")
	require.True(t, h.m.Menu().Placed())

	for range 4 {
		h.key("down")
	}
	h.key("enter")

	require.False(t, h.m.Menu().IsOpen())
	entry, ok := h.m.Modals().Get(modalRemove)
	require.True(t, ok)
	require.Equal(t, modal.ToneDanger, entry.Tone)
	require.Contains(t, entry.Description, "Calculator")

	h.key("enter")

	require.Equal(t, 0, h.m.Modals().Len())
	require.Equal(t, []string{"Notes", "Terminal"}, h.names())
	require.Equal(t, "Item removed", h.lastToast().Title)
}

func TestItemMenu_RemoveFailureKeepsModalOpen(t *testing.T) {
	h := newHarness(t, nil)
	h.be.Fail("DeleteItem", errors.New("item is locked"))

	h.m, _ = h.m.confirmRemove(h.m.Items()[0])
	h.key("enter")

	entry, ok := h.m.Modals().Get(modalRemove)
	require.True(t, ok, "a rejected action keeps the modal open")
	require.False(t, entry.Pending)
	toast := h.lastToast()
	require.Equal(t, toaster.ToneError, toast.Tone)
	require.Equal(t, "item is locked", toast.Message)
	require.Len(t, h.m.Items(), 3)
}

func menuEntry(t *testing.T, items []contextmenu.Item, id string) contextmenu.Item {
	t.Helper()
	i := slices.IndexFunc(items, func(it contextmenu.Item) bool { return it.ID == id })
	require.GreaterOrEqual(t, i, 0, "menu has no %q entry", id)
	return items[i]
}

func TestItemMenu_Entries(t *testing.T) {
	system := itemMenu(backend.Item{Type: backend.ItemTypeSystem})
	require.Equal(t, menuRemove, system[len(system)-1].ID)
	require.True(t, menuEntry(t, system, menuRemove).Disabled)
	require.True(t, menuEntry(t, system, menuEdit).Disabled)

	url := itemMenu(backend.Item{Type: backend.ItemTypeURL})
	require.True(t, menuEntry(t, url, menuLocation).Disabled)
	require.False(t, menuEntry(t, url, menuRemove).Disabled)
	require.False(t, menuEntry(t, url, menuEdit).Disabled)

	require.True(t, menuEntry(t, mainMenu(0), menuClear).Disabled)
	require.False(t, menuEntry(t, mainMenu(2), menuClear).Disabled)
	require.False(t, menuEntry(t, mainMenu(0), menuAddItem).Disabled)
	require.False(t, menuEntry(t, mainMenu(0), menuAddGroup).Disabled)
}

func TestMainMenu_ClearAll(t *testing.T) {
	h := newHarness(t, nil)

	h.key("ctrl+o")
	require.True(t, h.m.Menu().Placed())
	for range 5 {
		h.key("down")
	}
	h.key("enter")

	entry, ok := h.m.Modals().Get(modalClearConfirm)
	require.True(t, ok)
	require.Equal(t, modal.KindConfirm, entry.Kind)

	h.key("enter")

	require.Empty(t, h.m.Items())
	toast := h.lastToast()
	require.Equal(t, "Items cleared", toast.Title)
	require.Equal(t, "3 items removed", toast.Message)
	require.Contains(t, h.view(), emptyListText)
}

func TestMainMenu_CancelClearKeepsItems(t *testing.T) {
	h := newHarness(t, nil)

	h.m, _ = h.m.confirmClear()
	h.key("tab")
	h.key("enter")

	require.Equal(t, 0, h.m.Modals().Len())
	require.Len(t, h.m.Items(), 3)
}

func TestMouse_RightClickHeaderOpensMainMenu(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.MouseButtonRight, 5, 0)

	require.True(t, h.m.Menu().Placed())
	require.Equal(t, 5, h.m.Menu().Rect().X)
}

func TestMouse_RightClickRowSelectsAndOpensItemMenu(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.MouseButtonRight, 4, 3)

	require.Equal(t, 2, h.m.Selected())
	require.True(t, h.m.Menu().Placed())
}

func TestMouse_ClickOutsideClosesMenu(t *testing.T) {
	h := newHarness(t, nil)
	h.press(tea.MouseButtonRight, 5, 0)

	h.press(tea.MouseButtonLeft, 70, 20)

	require.False(t, h.m.Menu().IsOpen())
	require.Empty(t, h.m.Toasts().Entries(), "the click must not reach the list")
}

func TestMouse_SingleClickLaunches(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.MouseButtonLeft, 3, 2)

	require.Equal(t, 1, h.m.Selected())
	require.Equal(t, "Notes", h.lastToast().Message)
}

func TestMouse_DoubleModeNeedsSecondClick(t *testing.T) {
	h := newHarness(t, func(kv *settings.MemoryKV) {
		p := settings.DefaultPreferences()
		p.LaunchMode = settings.LaunchDouble
		require.NoError(t, settings.NewStore(kv).SavePreferences(context.Background(), p))
	})

	h.press(tea.MouseButtonLeft, 3, 2)
	require.Equal(t, 1, h.m.Selected())
	require.Empty(t, h.m.Toasts().Entries())

	h.press(tea.MouseButtonLeft, 3, 2)
	require.Equal(t, "Notes", h.lastToast().Message)
}

func TestMouse_ScrollbarDragKeepsCaptureOffBar(t *testing.T) {
	var items []backend.Item
	for i := range 30 {
		items = append(items, backend.Item{ID: fmt.Sprintf("i%02d", i), Name: fmt.Sprintf("Item %02d", i), Path: "/p", Type: backend.ItemTypeApp})
	}
	h := newHarnessSized(t, 80, 10, nil, memory.WithItems(items...))
	require.Len(t, h.m.Items(), 33)

	h.press(tea.MouseButtonLeft, 79, 1)
	require.True(t, h.m.Capture().Held(listID))
	require.True(t, h.m.List().Dragging())

	// Motion far from the bar still drives the drag.
	h.send(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.Positive(t, h.m.List().Position())
	require.Equal(t, 0, h.m.Selected(), "drag motion must not select rows")

	h.send(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	require.False(t, h.m.Capture().Active())
	require.Equal(t, 1, h.m.Capture().Registrations())
}

func TestModalHasInputPriority(t *testing.T) {
	h := newHarness(t, nil)

	h.key("?")
	top, ok := h.m.Modals().Top()
	require.True(t, ok)
	require.Equal(t, modalHelp, top.ID)
	_ = h.m.View()

	h.key("j")

	require.Equal(t, 0, h.m.Selected())
	require.Equal(t, 1, h.m.helpDoc.Position())

	h.press(tea.MouseButtonRight, 5, 0)
	require.False(t, h.m.Menu().IsOpen())

	h.key("esc")
	require.Equal(t, 0, h.m.Modals().Len())
}

func TestHelp_RendersKeyReference(t *testing.T) {
	h := newHarness(t, nil)

	h.key("?")

	view := h.view()
	require.Contains(t, view, "Keyboard shortcuts")
	require.Contains(t, view, "Launcher")
	require.Contains(t, view, "Got it")
}

// helpBody opens the help modal and returns where its reference is drawn.
func helpBody(t *testing.T, h *harness) geom.Rect {
	t.Helper()
	h.key("?")
	top, ok := h.m.Modals().Top()
	require.True(t, ok)
	require.Equal(t, modalHelp, top.ID)
	body := h.m.modals.ContentRect(top)
	require.False(t, body.Empty())
	require.True(t, h.m.helpDoc.Area().Metrics().CanScroll, "reference must overflow")
	return body
}

func TestHelp_WheelScrollsReference(t *testing.T) {
	h := newHarnessSized(t, 100, 40, nil)
	body := helpBody(t, h)

	for range 3 {
		h.press(tea.MouseButtonWheelDown, body.X+1, body.Y+1)
	}
	require.Positive(t, h.m.helpDoc.Position())
	down := h.m.helpDoc.Position()

	h.press(tea.MouseButtonWheelUp, body.X+1, body.Y+1)
	require.Equal(t, max(down-scrollarea.WheelDelta, 0), h.m.helpDoc.Position())
	require.Equal(t, 1, h.m.Modals().Len())
}

func TestHelp_ScrollbarDragKeepsCaptureOffCard(t *testing.T) {
	h := newHarnessSized(t, 100, 40, nil)
	body := helpBody(t, h)

	barX := body.X + body.W - 1
	thumbY := body.Y + h.m.helpDoc.Area().Metrics().ThumbOffset
	h.press(tea.MouseButtonLeft, barX, thumbY)
	require.True(t, h.m.Capture().Held(helpID))

	// Motion and release outside the card still belong to the drag.
	h.send(tea.MouseMsg{X: 2, Y: thumbY + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	require.Positive(t, h.m.helpDoc.Position())

	h.send(tea.MouseMsg{X: 2, Y: thumbY + 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	require.False(t, h.m.Capture().Active())
	require.Equal(t, 1, h.m.Capture().Registrations())
	require.Equal(t, 1, h.m.Modals().Len(), "release off the card is not a backdrop click")
}

func TestHelp_ClosingMidDragReleasesCapture(t *testing.T) {
	h := newHarnessSized(t, 100, 40, nil)
	body := helpBody(t, h)

	h.press(tea.MouseButtonLeft, body.X+body.W-1, body.Y+h.m.helpDoc.Area().Metrics().ThumbOffset)
	require.True(t, h.m.Capture().Held(helpID))

	h.key("esc")
	require.Equal(t, 0, h.m.Modals().Len())
	require.False(t, h.m.Capture().Active())
	require.False(t, h.m.helpDoc.Area().Dragging())
}

func TestLogs_WheelStopsFollowing(t *testing.T) {
	var buf bytes.Buffer
	log.InitWriter(&buf)
	t.Cleanup(log.Reset)
	h := newHarnessSized(t, 100, 40, nil)
	for i := range 40 {
		log.Info(log.CatUI, "entry", "n", i)
	}

	h.key("ctrl+x")
	top, ok := h.m.Modals().Top()
	require.True(t, ok)
	viewer, ok := top.Content.(*logview.Viewer)
	require.True(t, ok)
	body := h.m.modals.ContentRect(top)
	bottom := viewer.Position()
	require.Positive(t, bottom)

	h.press(tea.MouseButtonWheelUp, body.X+1, body.Y+1)
	require.Equal(t, bottom-scrollarea.WheelDelta, viewer.Position())

	// Later renders no longer snap back to the newest entry.
	_ = h.view()
	require.Equal(t, bottom-scrollarea.WheelDelta, viewer.Position())
}

func TestLogs_ModalShowsRecentEntries(t *testing.T) {
	var buf bytes.Buffer
	log.InitWriter(&buf)
	t.Cleanup(log.Reset)
	h := newHarness(t, nil)
	log.Warn(log.CatUI, "disk nearly full")

	h.key("ctrl+x")

	top, ok := h.m.Modals().Top()
	require.True(t, ok)
	require.Equal(t, modalLogs, top.ID)

	h.key("w")
	require.Contains(t, h.view(), "disk nearly full")

	h.key("e")
	require.NotContains(t, h.view(), "disk nearly full")

	h.key("enter")
	require.Equal(t, 0, h.m.Modals().Len())
}

func TestScan_FormThenProgressThenToast(t *testing.T) {
	h := newHarness(t, nil,
		memory.WithRoots("/a", "/b"),
		memory.WithFindings("/a", backend.ItemInput{Name: "Zed", Path: "/z", Type: backend.ItemTypeApp}),
		memory.WithFindings("/b", backend.ItemInput{Name: "Calculator", Path: "/Apps/Calculator.app", Type: backend.ItemTypeApp}),
	)

	h.key("ctrl+r")

	entry, ok := h.m.Modals().Get(modalScanForm)
	require.True(t, ok)
	form, ok := entry.Content.(*pickerForm)
	require.True(t, ok)
	require.Equal(t, "/a; /b", form.Value("roots"))

	h.key("enter")

	require.Equal(t, 0, h.m.Modals().Len(), "progress modal closes when the scan ends")
	toast := h.lastToast()
	require.Equal(t, "Scan complete", toast.Title)
	require.Equal(t, "Added 1, skipped 1 of 2 found.", toast.Message)
	require.Contains(t, h.names(), "Zed")

	raw, ok, err := h.kv.Get(context.Background(), settings.KeyScanRoots)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `["/a","/b"]`, raw)
}

func TestScan_SavedRootsPreferred(t *testing.T) {
	h := newHarness(t, func(kv *settings.MemoryKV) {
		require.NoError(t, kv.Set(context.Background(), settings.KeyScanRoots, `["/saved"]`))
	}, memory.WithRoots("/default"))

	h.key("ctrl+r")

	entry, _ := h.m.Modals().Get(modalScanForm)
	require.Equal(t, "/saved", entry.Content.(*pickerForm).Value("roots"))
}

func TestScan_FormRequiresRoots(t *testing.T) {
	h := newHarness(t, nil)

	h.key("ctrl+r")
	h.key("enter")

	_, ok := h.m.Modals().Get(modalScanForm)
	require.True(t, ok)
	require.Equal(t, "add at least one folder to scan", h.lastToast().Message)
}

func TestScan_ProgressModalTracksEvents(t *testing.T) {
	h := newHarness(t, nil, memory.WithRoots("/a", "/b"))

	var cmd tea.Cmd
	h.m, cmd = h.m.startScan([]string{"/a", "/b"})

	entry, ok := h.m.Modals().Get(modalScanProgress)
	require.True(t, ok)
	require.False(t, entry.Closable)
	require.Nil(t, entry.Progress)

	h.key("esc")
	_, ok = h.m.Modals().Get(modalScanProgress)
	require.True(t, ok, "escape cannot dismiss a running scan")

	pct := 50.0
	h.send(backend.EventMsg{Name: backend.EventScanProgress, Payload: backend.ScanProgress{
		Root: "/a", Path: "/a/app.lnk", RootIndex: 1, RootTotal: 2, Percent: &pct,
	}})

	entry, _ = h.m.Modals().Get(modalScanProgress)
	require.Equal(t, "Scanning /a (1 of 2)", entry.Description)
	require.Equal(t, "/a/app.lnk", entry.Path)
	require.InDelta(t, 50.0, *entry.Progress, 0.001)

	h.run(cmd)
	_, ok = h.m.Modals().Get(modalScanProgress)
	require.False(t, ok)
}

func TestScan_FailureStillClosesProgress(t *testing.T) {
	h := newHarness(t, nil)
	h.be.Fail("ScanShortcuts", errors.New("disk gone"))

	h.send(startScanMsg{roots: []string{"/a"}})

	require.Equal(t, 0, h.m.Modals().Len())
	toast := h.lastToast()
	require.Equal(t, toaster.ToneError, toast.Tone)
	require.Equal(t, "disk gone", toast.Message)
}

func TestSyncIcons_ProgressThenToast(t *testing.T) {
	h := newHarness(t, nil)

	var cmd tea.Cmd
	h.m, cmd = h.m.runMainAction(menuSyncIcons)
	entry, ok := h.m.Modals().Get(modalSyncProgress)
	require.True(t, ok)
	require.Equal(t, modal.KindProgress, entry.Kind)

	h.run(cmd)

	require.Equal(t, 0, h.m.Modals().Len())
	require.Equal(t, "3 icons updated", h.lastToast().Message)
}

func TestSettings_InvalidValueKeepsModalOpen(t *testing.T) {
	h := newHarness(t, nil)

	h.key("ctrl+s")
	h.key("x")
	h.run(h.m.Modals().Confirm(modalSettings))

	entry, ok := h.m.Modals().Get(modalSettings)
	require.True(t, ok)
	require.False(t, entry.Pending)
	require.Contains(t, h.lastToast().Message, "panel position must be")

	_, stored, err := h.kv.Get(context.Background(), settings.KeyPreferences)
	require.NoError(t, err)
	require.False(t, stored)
}

func TestSettings_SaveClosesAndPersists(t *testing.T) {
	h := newHarness(t, nil)

	h.key("ctrl+s")
	h.run(h.m.Modals().Confirm(modalSettings))

	_, ok := h.m.Modals().Get(modalSettings)
	require.False(t, ok)
	require.Equal(t, "Settings saved", h.lastToast().Title)

	_, stored, err := h.kv.Get(context.Background(), settings.KeyPreferences)
	require.NoError(t, err)
	require.True(t, stored)
	_, stored, err = h.kv.Get(context.Background(), settings.KeyHotkeys)
	require.NoError(t, err)
	require.True(t, stored)
}

func TestSettings_CancelCloses(t *testing.T) {
	h := newHarness(t, nil)

	h.key("ctrl+s")
	h.run(h.m.Modals().Cancel(modalSettings))

	require.Equal(t, 0, h.m.Modals().Len())
}

func TestParseSettings(t *testing.T) {
	base := settings.DefaultPreferences()
	base.LastWindowPosition = &settings.Point{X: 4, Y: 5}
	valid := map[string]string{
		"position":             " Cursor ",
		"launch":               "double",
		"close":                "manual",
		"focus":                "no",
		"hotkey:toggle-app":    "Ctrl+Space",
		"hotkey:quick-search":  "",
		"hotkey:open-settings": "Ctrl+,",
	}

	p, hk, err := parseSettings(valid, base, map[string]string{"custom": "Alt+K"})
	require.NoError(t, err)
	require.Equal(t, settings.PanelCursor, p.PanelPositionMode)
	require.Equal(t, settings.LaunchDouble, p.LaunchMode)
	require.Equal(t, settings.CloseManual, p.PanelCloseMode)
	require.False(t, p.FocusSearchOnShow)
	require.Equal(t, base.LastWindowPosition, p.LastWindowPosition)
	require.Equal(t, map[string]string{
		"custom":        "Alt+K",
		"toggle-app":    "Ctrl+Space",
		"quick-search":  "",
		"open-settings": "Ctrl+,",
	}, hk)

	for field, bad := range map[string]string{"position": "left", "launch": "triple", "close": "never", "focus": "maybe"} {
		values := map[string]string{}
		for k, v := range valid {
			values[k] = v
		}
		values[field] = bad
		_, _, err := parseSettings(values, base, nil)
		require.Error(t, err, field)
	}
}

func TestHotkeys_ConflictRaisesWarning(t *testing.T) {
	h := newHarness(t, func(kv *settings.MemoryKV) {
		require.NoError(t, kv.Set(context.Background(), settings.KeyHotkeys, `{"toggle-app":"Alt+F"}`))
	})

	toast := h.lastToast()
	require.Equal(t, toaster.ToneWarning, toast.Tone)
	require.Equal(t, "toggle-app (Alt+F): conflicts with quick-search", toast.Message)
}

func TestHotkeyWarning_ListsFirstThree(t *testing.T) {
	var issues []backend.HotkeyIssue
	for i := range 5 {
		issues = append(issues, backend.HotkeyIssue{ID: fmt.Sprintf("a%d", i), Keys: "X", Reason: "missing modifier"})
	}

	p := hotkeyWarning(issues)

	lines := strings.Split(p.Message, "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "a0 (X): missing modifier", lines[0])
	require.Equal(t, "...and 2 more", lines[3])
	require.Equal(t, toaster.ToneWarning, p.Tone)
}

func TestEvents_HotkeyOpensSettings(t *testing.T) {
	h := newHarness(t, nil)

	h.send(backend.EventMsg{Name: backend.EventHotkeyTrigger, Payload: settings.ActionOpenSettings})

	_, ok := h.m.Modals().Get(modalSettings)
	require.True(t, ok)
}

func TestEvents_WindowShowResetsAndFocusesSearch(t *testing.T) {
	h := newHarness(t, nil)
	h.key("down")
	h.key("down")

	h.send(backend.EventMsg{Name: backend.EventWindowShow})

	require.Equal(t, 0, h.m.Selected())
	top, ok := h.m.Modals().Top()
	require.True(t, ok)
	require.Equal(t, modalSearch, top.ID)
}

func TestEvents_IconsUpdatedReloads(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.be.CreateItem(context.Background(), backend.ItemInput{Name: "Zed", Path: "/z", Type: backend.ItemTypeApp})
	require.NoError(t, err)

	h.send(backend.EventMsg{Name: backend.EventIconsUpdated})

	require.Contains(t, h.names(), "Zed")
}

func TestSearch_FiltersItems(t *testing.T) {
	h := newHarness(t, nil)

	h.send(searchMsg{query: "not"})

	require.Equal(t, []string{"Notes"}, h.names())
	require.Contains(t, h.view(), `matching "not"`)
}

func TestDismissKeyClearsToasts(t *testing.T) {
	h := newHarness(t, nil)
	h.key("enter")
	require.NotEmpty(t, h.m.Toasts().Entries())

	h.key("x")

	require.Empty(t, h.m.Toasts().Entries())
}

func TestRenderRow_FitsWidth(t *testing.T) {
	it := backend.Item{Name: "Visual Studio Code", Path: "/Applications/Visual Studio Code.app/Contents/MacOS/Electron", Type: backend.ItemTypeApp}
	for _, w := range []int{20, 40, 79} {
		row := renderRow(it, false, w)
		require.Equal(t, w, ansi.StringWidth(row), "width %d", w)
		require.Equal(t, w, ansi.StringWidth(renderRow(it, true, w)), "selected width %d", w)
	}
}
