package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gabimaru/gabimaru/internal/clock"
	"github.com/gabimaru/gabimaru/internal/countdown"
	"github.com/gabimaru/gabimaru/internal/frame"
	"github.com/gabimaru/gabimaru/internal/stopwatch"
	"github.com/gabimaru/gabimaru/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// AppTitle is the window title while no countdown is running.
const AppTitle = "Gabimaru"

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Tab selects the visible widget.
type Tab int

const (
	TabTimer Tab = iota
	TabStopwatch
)

func (t Tab) String() string {
	if t == TabStopwatch {
		return "Stopwatch"
	}
	return "Timer"
}

// VolumeControl adjusts the shared audio volume. *sound.Manager satisfies
// it.
type VolumeControl interface {
	SetVolume(volume float64)
	Volume() float64
}

// Options wires the model's collaborators.
type Options struct {
	Clock  clock.Clock
	Player countdown.Player
	// Volume is nil when no audio device is available.
	Volume        VolumeControl
	Logger        *zap.Logger
	FrameInterval time.Duration
	StartTab      Tab
	AlarmOnce     bool
	// Duration preloads the timer's entry buffer when positive.
	Duration time.Duration
}

// Model is the root bubbletea model.
type Model struct {
	// Widgets
	timer     *countdown.Session
	stopwatch *stopwatch.Session
	activeTab Tab

	// Audio
	volume VolumeControl

	// Refresh
	frameInterval time.Duration
	windowTitle   string

	// UI state
	width  int
	height int

	// Errors
	errorMessage   string
	errorTransient bool

	logger *zap.Logger
}

// New creates a Model with both widgets idle.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}

	m := Model{
		timer: countdown.New(countdown.Options{
			Clock:     opts.Clock,
			Player:    opts.Player,
			Logger:    opts.Logger,
			AlarmOnce: opts.AlarmOnce,
		}),
		stopwatch:     stopwatch.New(opts.Clock),
		activeTab:     opts.StartTab,
		volume:        opts.Volume,
		frameInterval: opts.FrameInterval,
		windowTitle:   AppTitle,
		logger:        opts.Logger.With(zap.String("component", "app")),
	}

	if opts.Duration > 0 {
		if err := m.timer.SetDuration(opts.Duration); err != nil {
			m.errorMessage = err.Error()
		}
	}
	return m
}

// Timer exposes the countdown session.
func (m Model) Timer() *countdown.Session {
	return m.timer
}

// Stopwatch exposes the stopwatch session.
func (m Model) Stopwatch() *stopwatch.Session {
	return m.stopwatch
}

// ActiveTab returns the visible widget.
func (m Model) ActiveTab() Tab {
	return m.activeTab
}

// Init sets the initial window title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(AppTitle)
}

// frameCmd schedules the refresh tick for token. A zero token schedules
// nothing.
func frameCmd(target Tab, token frame.Token, interval time.Duration) tea.Cmd {
	if token == frame.None {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return FrameMsg{Target: target, Token: token}
	})
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FrameMsg:
		var next frame.Token
		switch msg.Target {
		case TabTimer:
			next = m.timer.Tick(msg.Token)
		case TabStopwatch:
			next = m.stopwatch.Tick(msg.Token)
		}
		return m.withTitle(frameCmd(msg.Target, next, m.frameInterval))

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// withTitle appends a window title update when the timer's title changed.
func (m Model) withTitle(cmd tea.Cmd) (Model, tea.Cmd) {
	title := m.timer.WindowTitle(AppTitle)
	if title == m.windowTitle {
		return m, cmd
	}
	m.windowTitle = title
	return m, tea.Batch(cmd, tea.SetWindowTitle(title))
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		m.timer.Close()
		m.stopwatch.Close()
		return m, tea.Quit

	case KeyTab, KeyShiftTab:
		m.switchTab()
		return m, nil

	case KeySpace:
		return m.withTitle(m.pressAction())

	case KeyEnter, KeyEdit:
		return m.withTitle(m.clickDial())

	case KeyReset, KeyResetUpper:
		m.pressReset()
		return m.withTitle(nil)

	case KeyVolumeUp, KeyVolumeUpEq:
		return m.adjustVolume(VolumeStep)

	case KeyVolumeDown:
		return m.adjustVolume(-VolumeStep)

	case KeyBackspace:
		if m.activeTab == TabTimer {
			m.timer.Key(countdown.KeyBackspace)
		}
		return m, nil
	}

	if m.activeTab == TabTimer {
		m.timer.Key(key)
	}
	return m, nil
}

// handleMouse maps left clicks onto the tab bar, the dial and the buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	l := m.layout()
	switch {
	case l.tabs[TabTimer].contains(msg.X, msg.Y):
		m.activeTab = TabTimer
		return m, nil
	case l.tabs[TabStopwatch].contains(msg.X, msg.Y):
		m.activeTab = TabStopwatch
		return m, nil
	case l.dial.contains(msg.X, msg.Y):
		return m.withTitle(m.clickDial())
	case l.action.contains(msg.X, msg.Y):
		return m.withTitle(m.pressAction())
	case l.reset.contains(msg.X, msg.Y):
		m.pressReset()
		return m.withTitle(nil)
	}
	return m, nil
}

func (m *Model) switchTab() {
	if m.activeTab == TabTimer {
		m.activeTab = TabStopwatch
	} else {
		m.activeTab = TabTimer
	}
	m.logger.Debug("tab switched", zap.Stringer("tab", m.activeTab))
}

// pressAction is the start/pause button of the visible widget.
func (m *Model) pressAction() tea.Cmd {
	if m.activeTab == TabStopwatch {
		return frameCmd(TabStopwatch, m.stopwatch.Toggle(), m.frameInterval)
	}
	if !m.timer.ActionEnabled() {
		return nil
	}
	return frameCmd(TabTimer, m.timer.Toggle(), m.frameInterval)
}

// clickDial is a click on the circular control of the visible widget.
func (m *Model) clickDial() tea.Cmd {
	if m.activeTab == TabStopwatch {
		return frameCmd(TabStopwatch, m.stopwatch.Toggle(), m.frameInterval)
	}
	return frameCmd(TabTimer, m.timer.Click(), m.frameInterval)
}

func (m *Model) pressReset() {
	if m.activeTab == TabStopwatch {
		m.stopwatch.Reset()
		return
	}
	m.timer.Reset()
}

func (m Model) adjustVolume(delta float64) (tea.Model, tea.Cmd) {
	if m.volume == nil {
		m.errorMessage = "audio unavailable"
		m.errorTransient = true
		return m, clearTransientErrorCmd()
	}
	m.volume.SetVolume(m.volume.Volume() + delta)
	return m, nil
}

// region is a half-open screen rectangle.
type region struct {
	x0, y0, x1, y1 int
}

func (r region) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

type layout struct {
	tabs   [2]region
	dial   region
	action region
	reset  region
	radius int
}

// Rows above the dial: tab bar, divider, blank.
const dialTop = 3

func (m Model) layout() layout {
	var l layout

	x := lipgloss.Width(ui.TitleStyle.Render(strings.ToUpper(AppTitle))) + 2
	for _, tab := range []Tab{TabTimer, TabStopwatch} {
		w := lipgloss.Width(m.renderTab(tab))
		l.tabs[tab] = region{x0: x, y0: 0, x1: x + w, y1: 1}
		x += w
	}

	l.radius = m.dialRadius()
	dialW, dialH := ui.Dial{Radius: l.radius}.Size()
	dialX := max(0, (m.width-dialW)/2)
	l.dial = region{x0: dialX, y0: dialTop, x1: dialX + dialW, y1: dialTop + dialH}

	buttonsY := dialTop + dialH + 1
	actionW := lipgloss.Width(m.renderActionButton())
	resetW := lipgloss.Width(m.renderResetButton())
	buttonsX := max(0, (m.width-(actionW+2+resetW))/2)
	l.action = region{x0: buttonsX, y0: buttonsY, x1: buttonsX + actionW, y1: buttonsY + 1}
	l.reset = region{x0: buttonsX + actionW + 2, y0: buttonsY, x1: buttonsX + actionW + 2 + resetW, y1: buttonsY + 1}
	return l
}

func (m Model) dialRadius() int {
	if m.height == 0 {
		return 6
	}
	// Reserve: tab bar, divider, blank, blank, buttons, blank, status,
	// divider, error, footer.
	reserved := 10
	radius := (m.height - reserved - 1) / 2
	radius = min(radius, (m.width-1)/4)
	return max(2, min(radius, 8))
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	l := m.layout()
	var sections []string

	// Tab bar
	sections = append(sections, m.renderTabBar())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, "")

	// Dial
	sections = append(sections, indentBlock(m.renderDial(l.radius), l.dial.x0))
	sections = append(sections, "")

	// Buttons
	sections = append(sections, strings.Repeat(" ", l.action.x0)+m.renderActionButton()+"  "+m.renderResetButton())
	sections = append(sections, "")

	// Status bar
	sections = append(sections, m.renderStatusBar())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Error bar
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}

	// Footer
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderTab(tab Tab) string {
	if tab == m.activeTab {
		return ui.TabActiveStyle.Render(tab.String())
	}
	return ui.TabStyle.Render(tab.String())
}

func (m Model) renderTabBar() string {
	return ui.TitleStyle.Render(strings.ToUpper(AppTitle)) + "  " +
		m.renderTab(TabTimer) + m.renderTab(TabStopwatch)
}

func (m Model) renderDial(radius int) string {
	if m.activeTab == TabStopwatch {
		return ui.Dial{
			Radius:      radius,
			Label:       m.stopwatch.Display(),
			LabelStyle:  ui.DigitsStyle,
			Marker:      true,
			MarkerAngle: m.stopwatch.Angle(),
		}.Render()
	}

	labelStyle := ui.DigitsStyle
	switch m.timer.State() {
	case countdown.StateEditing:
		labelStyle = ui.DigitsEditingStyle
	case countdown.StateFinished:
		labelStyle = ui.DigitsFinishedStyle
	}
	return ui.Dial{
		Radius:     radius,
		Label:      m.timer.Display(),
		LabelStyle: labelStyle,
		Progress:   m.timer.Progress(),
		Highlight:  m.timer.State() == countdown.StateEditing,
	}.Render()
}

func (m Model) actionLabel() string {
	if m.activeTab == TabStopwatch {
		switch m.stopwatch.State() {
		case stopwatch.StateRunning:
			return "⏸ Pause"
		case stopwatch.StatePaused:
			return "▶ Resume"
		}
		return "▶ Start"
	}

	return m.timer.ActionLabel()
}

func (m Model) renderActionButton() string {
	if m.activeTab == TabTimer && !m.timer.ActionEnabled() {
		return ui.ButtonDisabledStyle.Render(m.actionLabel())
	}
	return ui.ButtonStyle.Render(m.actionLabel())
}

func (m Model) renderResetButton() string {
	return ui.ButtonOutlineStyle.Render("↺ Reset")
}

func (m Model) renderStatusBar() string {
	var state string
	if m.activeTab == TabStopwatch {
		state = string(m.stopwatch.State())
	} else {
		state = string(m.timer.State())
		if m.timer.State() == countdown.StateEditing {
			state += "  " + ui.DimStyle.Render("type hh:mm:ss digits, backspace deletes, enter confirms")
		}
	}

	volume := "audio off"
	if m.volume != nil {
		volume = fmt.Sprintf("vol %d%%", int(m.volume.Volume()*100+0.5))
	}
	return ui.StatusStyle.Render(state) + "  " + ui.DimStyle.Render(volume)
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: " + m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string

	parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Start/Pause"))
	if m.activeTab == TabTimer {
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Edit"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Reset"))
	parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Switch"))
	parts = append(parts, ui.FooterKeyStyle.Render("+/-")+ui.FooterDescStyle.Render(" Volume"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func indentBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	pad := strings.Repeat(" ", width)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
