package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/engine"
	"github.com/five82/switchboard/internal/logging"
	"github.com/five82/switchboard/internal/prefs"
)

// tabKind distinguishes section tabs from the logs tab.
type tabKind int

const (
	tabSection tabKind = iota
	tabLogs
)

type tab struct {
	kind   tabKind
	id     string
	title  string
	static bool
}

// logsTabID is the prefs value for the logs tab. Section ids never start
// with a colon.
const logsTabID = ":logs"

// inputMode is the target of the text input, if any.
type inputMode int

const (
	inputNone inputMode = iota
	inputReadout
	inputProfileName
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Engine   *engine.Engine
	Controls *Controls

	// Dispatcher must be the one the engine was built with. Run attaches it
	// to the program.
	Dispatcher *Dispatcher

	Prefs     prefs.Prefs
	PrefsPath string

	// LogFile is tailed by the logs tab. Empty disables the tab's content.
	LogFile string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	eng       *engine.Engine
	controls  *Controls
	prefsPath string
	prefs     prefs.Prefs
	keys      keyMap
	log       *zap.Logger

	// UI state
	theme    Theme
	tabs     []tab
	active   int
	cursors  map[string]int
	width    int
	height   int
	ready    bool
	showHelp bool
	now      time.Time

	// Text input shared by readout edits and the new-config name.
	mode    inputMode
	input   textinput.Model
	editRow *row

	logs logsState
}

// New creates a new Bubble Tea model. The saved tab and profile from
// opts.Prefs are restored.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64

	m := Model{
		ctx:       ctx,
		eng:       opts.Engine,
		controls:  opts.Controls,
		prefsPath: opts.PrefsPath,
		prefs:     opts.Prefs,
		keys:      DefaultKeyMap(),
		log:       logging.Named("ui"),
		theme:     GetTheme(opts.Prefs.Theme),
		cursors:   make(map[string]int),
		input:     input,
		now:       time.Now(),
		logs:      newLogsState(opts.LogFile),
	}
	m.prefs.Theme = m.theme.Name

	for _, desc := range m.eng.Registry().Sections() {
		m.tabs = append(m.tabs, tab{
			kind:   tabSection,
			id:     desc.ID,
			title:  desc.DisplayTitle(),
			static: !desc.Stateful,
		})
	}
	m.tabs = append(m.tabs, tab{kind: tabLogs, id: logsTabID, title: "Logs"})

	for i, t := range m.tabs {
		if t.id == opts.Prefs.LastTab {
			m.active = i
			break
		}
	}
	if name := strings.TrimSpace(opts.Prefs.LastProfile); name != "" {
		m.eng.SelectProfile(name)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(UIRefreshInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		// Engine work posted through the Dispatcher.
		msg()
		m.rememberProfile()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogs()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		cmds := []tea.Cmd{tickCmd(UIRefreshInterval)}
		if cmd := m.pollLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// contentHeight is the number of lines between the tab strip and the
// command bar.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderContent() string {
	t := m.currentTab()
	var body string
	switch {
	case t.kind == tabLogs:
		body = m.renderLogs()
	case t.static:
		body = m.renderProfiles()
	default:
		body = m.renderSection(t.id)
	}
	return fitHeight(body, m.contentHeight())
}

// fitHeight pads or clips body to exactly height lines.
func fitHeight(body string, height int) string {
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) currentTab() tab {
	return m.tabs[m.active]
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshLogView()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m, m.selectTab(m.active + 1)

	case key.Matches(msg, m.keys.PrevTab):
		return m, m.selectTab(m.active - 1)

	case key.Matches(msg, m.keys.JumpTab):
		idx := int(msg.String()[0] - '1')
		if idx < len(m.tabs)-1 {
			return m, m.selectTab(idx)
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		return m, m.selectTab(len(m.tabs) - 1)

	case key.Matches(msg, m.keys.Sync):
		m.eng.PersistCurrentWorking(m.ctx)
		return m, nil
	}

	t := m.currentTab()
	switch {
	case t.kind == tabLogs:
		return m.handleLogsKey(msg)
	case t.static:
		return m.handleProfilesKey(msg)
	default:
		return m.handleSectionKey(msg, t.id)
	}
}

// selectTab activates the tab at idx, wrapping at either end, and remembers
// it in prefs.
func (m *Model) selectTab(idx int) tea.Cmd {
	n := len(m.tabs)
	idx = ((idx % n) + n) % n
	if idx == m.active {
		return nil
	}
	m.active = idx
	m.prefs.LastTab = m.tabs[idx].id
	m.savePrefs()
	if m.tabs[idx].kind == tabLogs {
		return m.pollLogs()
	}
	return nil
}

// quit delivers any debounced write before the program exits. The writes
// themselves finish after the program stops; Run's caller drains them.
func (m *Model) quit() tea.Cmd {
	m.eng.Flush()
	return tea.Quit
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// handleInputKey routes keys to the text input while it is open.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.endInput()
		return m, m.quit()

	case key.Matches(msg, m.keys.Escape):
		m.endInput()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		switch m.mode {
		case inputReadout:
			if m.editRow != nil && m.editRow.readout != nil {
				m.editRow.readout.Commit(value)
			}
		case inputProfileName:
			m.eng.SetNameInput(value)
			// A blank name only sets the status line.
			_ = m.eng.SaveAsNewProfile(m.ctx, value)
			m.rememberProfile()
		}
		m.endInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == inputProfileName {
		m.eng.SetNameInput(m.input.Value())
	}
	return m, cmd
}

func (m *Model) beginInput(mode inputMode, value string, target *row) tea.Cmd {
	m.mode = mode
	m.editRow = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = inputNone
	m.editRow = nil
	m.input.Blur()
	m.input.SetValue("")
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the operator quits or
// ctx is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Dispatcher != nil {
		opts.Dispatcher.Attach(p)
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// helpModel renders the full key map in the help overlay.
func (m Model) helpModel() help.Model {
	h := help.New()
	h.ShowAll = true
	styles := m.theme.Styles()
	h.Styles.FullKey = styles.WarningText
	h.Styles.FullDesc = styles.Text
	h.Styles.FullSeparator = styles.FaintText
	return h
}
