package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/draftsim/internal/display"
	"github.com/lox/draftsim/internal/draft"
)

// Model is the Bubble Tea model for drafting from the human seat
type Model struct {
	session *draft.Session
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	cursor      int
	pickLog     []string
	quitting    bool
	showPool    bool
	lastMessage string

	// Dimensions
	width  int
	height int
}

// NewModel creates a model over session, starting it if it is idle. Picks
// made by the human seat are recorded in the log pane.
func NewModel(session *draft.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter to pick the highlighted card, or a number, 'auto', 'pool', 'quit'"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = display.SelectedStyle
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
	}

	session.Events().Subscribe(draft.SubscriberFunc(m.onEvent))
	if session.Phase() == draft.Idle {
		session.Start()
	}
	return m
}

func (m *Model) onEvent(e draft.Event) {
	switch ev := e.(type) {
	case draft.PickMadeEvent:
		if ev.Pick.Seat == draft.HumanSeat {
			m.addLogEntry(fmt.Sprintf("R%d P%d: %s", ev.Pick.Round, ev.Pick.Pick, ev.Pick.Card.Name))
		}
	case draft.RoundStartedEvent:
		m.addLogEntry(fmt.Sprintf("Round %d, passing %s", ev.Round, ev.Direction))
	case draft.DraftCompletedEvent:
		m.addLogEntry(fmt.Sprintf("Draft complete with %d picks", ev.Picks))
		m.showPool = true
	}
}

func (m *Model) addLogEntry(entry string) {
	m.pickLog = append(m.pickLog, entry)
	m.logViewport.SetContent(strings.Join(m.pickLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = max(msg.Width/3, 1)
		m.logViewport.Height = max(msg.Height-8, 1)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.session.CurrentPack())-1 {
				m.cursor++
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		case "enter":
			cmd := m.runCommand(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			if cmd != nil {
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// runCommand interprets one line of input.
func (m *Model) runCommand(input string) tea.Cmd {
	m.lastMessage = ""
	fields := strings.Fields(strings.ToLower(input))

	if m.session.Phase() != draft.Active {
		if len(fields) == 0 || fields[0] == "quit" || fields[0] == "q" {
			m.quitting = true
			return tea.Quit
		}
		m.lastMessage = "The draft is over. Press Enter to exit."
		return nil
	}

	if len(fields) == 0 {
		m.pickIndex(m.cursor)
		return nil
	}

	switch fields[0] {
	case "quit", "q":
		m.quitting = true
		return tea.Quit
	case "auto", "a":
		if !m.session.AutoPick() {
			m.lastMessage = "No card to pick"
		}
		m.cursor = 0
	case "pool", "p":
		m.showPool = !m.showPool
	default:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			m.lastMessage = fmt.Sprintf("Unknown command %q", fields[0])
			return nil
		}
		m.pickIndex(n - 1)
	}
	return nil
}

func (m *Model) pickIndex(i int) {
	pack := m.session.CurrentPack()
	if i < 0 || i >= len(pack) {
		m.lastMessage = fmt.Sprintf("Pick a card between 1 and %d", len(pack))
		return
	}
	chosen := pack[i]
	if m.session.HumanPick(chosen.ID) {
		m.logger.Debug("Picked card", "card", chosen.Name, "round", m.session.Round())
		m.cursor = 0
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var main string
	if m.showPool || m.session.Phase() != draft.Active {
		main = display.Pool(m.session.HumanPool())
	} else {
		main = display.Pack(m.session.CurrentPack(), m.cursor)
	}

	logPane := display.BoxStyle.Render(m.logViewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, display.BoxStyle.Render(main), logPane)

	footer := m.input.View()
	if m.lastMessage != "" {
		footer = display.ErrorStyle.Render(m.lastMessage) + "\n" + footer
	}
	help := display.InfoStyle.Render("↑↓ move • Enter pick • PgUp/PgDn scroll log • Ctrl+C quit")

	return lipgloss.JoinVertical(lipgloss.Left, display.DraftStatus(m.session), body, footer, help)
}

// Log returns the entries shown in the log pane
func (m *Model) Log() []string {
	out := make([]string, len(m.pickLog))
	copy(out, m.pickLog)
	return out
}

// Run drives an interactive draft until the user quits
func Run(session *draft.Session, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(session, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run draft UI: %w", err)
	}
	return nil
}
