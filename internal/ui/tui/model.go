package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/pvelamp/internal/provisioning"
)

// PhaseRow represents one provisioning phase for display.
type PhaseRow struct {
	Name   string
	Label  string
	Done   bool
	Active bool
	Err    error
	Detail string
}

// logTail is the number of recent log lines kept on screen.
const logTail = 5

// Model is the Bubble Tea model for the provisioning dashboard.
type Model struct {
	Hostname string

	Phases []PhaseRow

	// Recent free-form log lines.
	Lines []string

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewProvisionModel creates a model for the provision command TUI.
func NewProvisionModel(hostname string) Model {
	return Model{
		Hostname:  hostname,
		StartTime: time.Now(),
		Phases: []PhaseRow{
			{Name: "validation", Label: "Host Validation"},
			{Name: "container", Label: "Container Creation"},
			{Name: "readiness", Label: "Network Readiness"},
			{Name: "appstack", Label: "Application Stack"},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case EventMsg:
		m.applyEvent(msg.Event)

	case LogMsg:
		m.Lines = append(m.Lines, msg.Line)
		if len(m.Lines) > logTail {
			m.Lines = m.Lines[len(m.Lines)-logTail:]
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// applyEvent folds a provisioning event into the phase rows.
func (m *Model) applyEvent(event provisioning.Event) {
	idx := -1
	for i, row := range m.Phases {
		if row.Name == event.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	switch event.Type {
	case provisioning.EventPhaseStarted:
		// Earlier phases must be finished by the time a later one starts.
		for i := 0; i < idx; i++ {
			m.Phases[i].Done = true
			m.Phases[i].Active = false
		}
		m.Phases[idx].Active = true

	case provisioning.EventPhaseCompleted:
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
		m.Phases[idx].Detail = event.Message

	case provisioning.EventPhaseFailed:
		m.Phases[idx].Active = false
		m.Phases[idx].Err = errMessage(event.Message)

	case provisioning.EventCheckPassed, provisioning.EventCheckFailed,
		provisioning.EventStepStarted, provisioning.EventStepCompleted,
		provisioning.EventResourceCreated:
		m.Phases[idx].Detail = event.Message
	}
}

// errMessage wraps an event message as an error for display.
type errMessage string

func (e errMessage) Error() string { return string(e) }

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
