// Package tui provides a Bubble Tea terminal front-end over the same session
// controller the desktop window uses.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"text-recognition/src/notification"
	"text-recognition/src/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

// State represents the current UI state.
type State int

const (
	StateMain State = iota
	StateBrowse
	StateSave
	StateSettings
)

const (
	placeholderText = "Text from image will appear here"
	maxLogs         = 6
)

// LogEntry is a notification shown under the results box.
type LogEntry struct {
	Level   notification.Level
	Title   string
	Message string
}

// messageLog is shared by every copy of Model; Bubble Tea passes models by
// value but the session notifies through a single Notifier.
type messageLog struct {
	entries []LogEntry
}

func (l *messageLog) add(level notification.Level, title, message string) {
	l.entries = append(l.entries, LogEntry{Level: level, Title: title, Message: message})
	if len(l.entries) > maxLogs {
		l.entries = l.entries[len(l.entries)-maxLogs:]
	}
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	session *session.Session
	log     *messageLog
	notify  notification.Notifier

	picker   filepicker.Model
	allFiles bool
	result   viewport.Model

	saveInput   textinput.Model
	inputDir    textinput.Model
	outputDir   textinput.Model
	outputFocus bool

	width  int
	height int
}

// NewModel creates a model driving sess and installs its notifier on sess.
func NewModel(sess *session.Session) Model {
	log := &messageLog{}
	notify := notification.Multi{notification.Log{}, notification.Func(log.add)}
	sess.SetNotifier(notify)

	result := viewport.New(78, 12)
	result.SetContent(dimStyle.Render(placeholderText))

	return Model{
		state:     StateMain,
		session:   sess,
		log:       log,
		notify:    notify,
		result:    result,
		saveInput: newInput("path/to/output.txt"),
		inputDir:  newInput("input images directory"),
		outputDir: newInput("output text directory"),
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4096
	ti.Width = 70
	return ti
}

// Run starts the terminal UI and blocks until the user quits.
func Run(sess *session.Session) error {
	p := tea.NewProgram(NewModel(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) State() State { return m.state }

// Logs returns the notifications currently on screen.
func (m Model) Logs() []LogEntry {
	out := make([]LogEntry, len(m.log.entries))
	copy(out, m.log.entries)
	return out
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.result.Width = clamp(size.Width-4, 20, 120)
		m.result.Height = clamp(size.Height-16, 4, 40)
		m.result.SetContent(m.resultContent())
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateBrowse:
		return m.updateBrowse(msg)
	case StateSave:
		return m.updateSave(msg)
	case StateSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMain(msg)
	}
}

func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit

	case "b":
		m.state = StateBrowse
		return m, m.openPicker()

	case "r":
		_, _ = m.session.Run(context.Background())
		m.result.SetContent(m.resultContent())
		m.result.GotoTop()
		return m, nil

	case "s":
		if !m.session.CanSave() {
			_ = m.session.SaveText("")
			return m, nil
		}
		m.state = StateSave
		m.saveInput.SetValue(m.session.DefaultSavePath())
		m.saveInput.CursorEnd()
		return m, m.saveInput.Focus()

	case "c":
		if err := m.session.Deliver(session.ClipboardTarget{}); err != nil {
			m.notify.Notify(notification.LevelError, "Error", err.Error())
		} else {
			m.notify.Notify(notification.LevelStatus, "", "Copied to clipboard")
		}
		return m, nil

	case "o":
		m.state = StateSettings
		settings := m.session.Settings()
		m.inputDir.SetValue(settings.InputDir())
		m.outputDir.SetValue(settings.OutputDir())
		m.outputFocus = false
		m.outputDir.Blur()
		return m, m.inputDir.Focus()
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

// openPicker builds a fresh picker rooted at the input directory.
func (m *Model) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.CurrentDirectory = m.session.Settings().InputDir()
	fp.AutoHeight = false
	fp.Height = clamp(m.height-10, 5, 30)
	if !m.allFiles {
		fp.AllowedTypes = session.ImageExtensions
	}
	m.picker = fp
	return m.picker.Init()
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			m.state = StateMain
			return m, nil
		case "a":
			m.allFiles = !m.allFiles
			dir := m.picker.CurrentDirectory
			cmd := m.openPicker()
			if dir != "" {
				m.picker.CurrentDirectory = dir
				cmd = m.picker.Init()
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		if err := m.session.SelectImage(path); err != nil {
			m.notify.Notify(notification.LevelError, "Error", err.Error())
		}
		m.state = StateMain
		return m, nil
	}
	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.notify.Notify(notification.LevelWarning, "Not an image", fmt.Sprintf("%s is filtered out; press a to show all files", path))
	}
	return m, cmd
}

func (m Model) updateSave(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.saveInput.Blur()
			m.state = StateMain
			return m, nil
		case "enter":
			if err := m.session.SaveText(strings.TrimSpace(m.saveInput.Value())); err == nil {
				m.saveInput.Blur()
				m.state = StateMain
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.inputDir.Blur()
			m.outputDir.Blur()
			m.state = StateMain
			return m, nil
		case "tab", "shift+tab", "up", "down":
			m.outputFocus = !m.outputFocus
			if m.outputFocus {
				m.inputDir.Blur()
				return m, m.outputDir.Focus()
			}
			m.outputDir.Blur()
			return m, m.inputDir.Focus()
		case "enter":
			in := strings.TrimSpace(m.inputDir.Value())
			out := strings.TrimSpace(m.outputDir.Value())
			if m.session.SaveSettings(in, out) {
				m.inputDir.Blur()
				m.outputDir.Blur()
				m.state = StateMain
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.outputFocus {
		m.outputDir, cmd = m.outputDir.Update(msg)
	} else {
		m.inputDir, cmd = m.inputDir.Update(msg)
	}
	return m, cmd
}

func (m Model) resultContent() string {
	text := m.session.Text()
	if text == "" {
		return dimStyle.Render(placeholderText)
	}
	return lipgloss.NewStyle().Width(m.result.Width).Render(text)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Text Recognition"))
	b.WriteString("\n")

	switch m.state {
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateSave:
		b.WriteString(m.viewSave())
	case StateSettings:
		b.WriteString(m.viewSettings())
	default:
		b.WriteString(m.viewMain())
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewMain() string {
	var b strings.Builder

	image := m.session.ImagePath()
	if image == "" {
		image = dimStyle.Render("No file selected")
	}
	b.WriteString(labelStyle.Render("Image: "))
	b.WriteString(image)
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Recognition Results"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.result.View()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	filter := strings.Join(session.ImageExtensions, " ")
	if m.allFiles {
		filter = "all files"
	}
	b.WriteString(labelStyle.Render("Select Image File"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", filter)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSave() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Save Text File"))
	b.WriteString("\n\n")
	b.WriteString(m.saveInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSettings() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString("Input Images Directory:\n")
	b.WriteString(m.inputDir.View())
	b.WriteString("\n\n")
	b.WriteString("Output Text Files Directory:\n")
	b.WriteString(m.outputDir.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.log.entries {
		var style lipgloss.Style
		prefix := "•"
		switch entry.Level {
		case notification.LevelError:
			style = errorStyle
			prefix = "✗"
		case notification.LevelWarning:
			style = warningStyle
			prefix = "!"
		case notification.LevelInfo:
			style = successStyle
			prefix = "✓"
		default:
			style = dimStyle
		}
		line := entry.Message
		if entry.Title != "" && entry.Level != notification.LevelStatus {
			line = entry.Title + ": " + line
		}
		b.WriteString(style.Render(prefix + " " + line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateBrowse:
		return "enter: select • a: toggle all files • q: back"
	case StateSave:
		return "enter: save • esc: cancel"
	case StateSettings:
		return "tab: switch field • enter: save • esc: cancel"
	}

	help := []string{"b: browse"}
	if m.session.CanRun() {
		help = append(help, "r: run")
	}
	if m.session.CanSave() {
		help = append(help, "s: save", "c: copy")
	}
	help = append(help, "o: settings", "q: quit")
	return strings.Join(help, " • ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
