// Package card renders a single task as a card and lets it be edited in an
// overlay dialog. The card never owns the task: it holds the value its owner
// supplied and sends every change through the injected store.
package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todocard/internal/note"
	"todocard/internal/task"
)

const (
	placeholderTitle       = "Untitled Task"
	placeholderDescription = "No description provided."
	downloadedNotice       = "Note downloaded successfully"

	defaultWidth     = 48
	maxOverlayWidth  = 64
	descriptionLines = 4
)

// Mutator is the store collaborator the card writes through.
type Mutator interface {
	Update(ctx context.Context, id, title, description string, priority task.Priority) error
	Remove(ctx context.Context, id string) error
}

// Exporter turns the draft into a file and returns where it was written.
type Exporter interface {
	Export(title, description string) (string, error)
}

type Mode int

const (
	ModeClosed Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "closed"
}

// Draft is the editable working copy of the task fields.
type Draft struct {
	Title       string
	Description string
	Priority    task.Priority
}

// StoreErrMsg carries a failed store call to the host.
type StoreErrMsg struct {
	Op     string
	TaskID string
	Err    error
}

func (e StoreErrMsg) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.TaskID, e.Err)
}

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldPriority
	fieldCount
)

type Option func(*Model)

func WithExporter(e Exporter) Option {
	return func(m *Model) { m.exporter = e }
}

func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

func WithWidth(width int) Option {
	return func(m *Model) { m.width = width }
}

type Model struct {
	task     task.Task
	store    Mutator
	exporter Exporter
	ctx      context.Context
	styles   Styles
	keys     KeyMap
	help     help.Model
	width    int
	focused  bool

	mode  Mode
	draft Draft
	focus field

	titleInput textinput.Model
	descInput  textarea.Model

	notice      string
	noticeError bool
	lastExport  string
}

func New(t task.Task, store Mutator, opts ...Option) Model {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.Prompt = ""
	titleInput.CharLimit = 0

	descInput := textarea.New()
	descInput.Placeholder = "Description"
	descInput.ShowLineNumbers = false
	descInput.Prompt = ""
	descInput.CharLimit = 0
	descInput.MaxHeight = 0
	descInput.SetHeight(descriptionLines)

	m := Model{
		store:      store,
		exporter:   note.FileExporter{Dir: "."},
		ctx:        context.Background(),
		styles:     DefaultStyles(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		width:      defaultWidth,
		titleInput: titleInput,
		descInput:  descInput,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.SetWidth(m.width)
	m.SetTask(t)
	return m
}

func (m Model) Task() task.Task { return m.task }
func (m Model) Draft() Draft    { return m.draft }
func (m Model) Mode() Mode      { return m.mode }
func (m Model) Editing() bool   { return m.mode == ModeEditing }

// Notice is the pending acknowledgment, empty when none is shown.
func (m Model) Notice() string { return m.notice }

// LastExport is the path of the most recent download.
func (m Model) LastExport() string { return m.lastExport }

// CardTone classifies the card surface from the stored priority.
func (m Model) CardTone() task.Tone { return task.ToneFor(m.task.Priority) }

// OverlayTone classifies the dialog surface from the draft priority.
func (m Model) OverlayTone() task.Tone { return task.ToneFor(m.draft.Priority) }

// SetTask replaces the task value and overwrites the draft with it, even
// while the overlay is open. Unsaved edits are lost.
func (m *Model) SetTask(t task.Task) {
	m.task = t
	m.seed()
}

func (m *Model) SetWidth(width int) {
	if width <= 0 {
		width = defaultWidth
	}
	m.width = width
	inner := m.overlayInnerWidth()
	m.titleInput.Width = inner
	m.descInput.SetWidth(inner)
	m.help.Width = inner
}

func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

func (m *Model) seed() {
	m.draft = Draft{
		Title:       m.task.Title,
		Description: m.task.Description,
		Priority:    m.task.Priority,
	}
	m.titleInput.SetValue(m.draft.Title)
	m.titleInput.CursorEnd()
	m.descInput.SetValue(m.draft.Description)
}

// Open activates the card: the draft is seeded from the task and the overlay shown.
func (m *Model) Open() {
	m.seed()
	m.mode = ModeEditing
	m.notice = ""
	m.noticeError = false
	m.setFocus(fieldTitle)
}

// Close discards the draft and hides the overlay without touching the store.
func (m *Model) Close() {
	if m.mode != ModeEditing {
		return
	}
	m.seed()
	m.closeOverlay()
}

// Save writes the draft through the store and closes the overlay. A failed
// call is reported to the host through the returned command.
func (m *Model) Save() tea.Cmd {
	if m.mode != ModeEditing {
		return nil
	}
	d := m.draft
	err := m.store.Update(m.ctx, m.task.ID, d.Title, d.Description, d.Priority)
	m.closeOverlay()
	return storeErrCmd("update", m.task.ID, err)
}

// Delete removes the task through the store and closes the overlay.
func (m *Model) Delete() tea.Cmd {
	if m.mode != ModeEditing {
		return nil
	}
	err := m.store.Remove(m.ctx, m.task.ID)
	m.closeOverlay()
	return storeErrCmd("remove", m.task.ID, err)
}

// Download exports the current draft as a note. The overlay stays open and
// the user has to acknowledge the notice before editing continues.
func (m *Model) Download() {
	if m.mode != ModeEditing {
		return
	}
	path, err := m.exporter.Export(m.draft.Title, m.draft.Description)
	if err != nil {
		m.notice = "Download failed: " + err.Error()
		m.noticeError = true
		return
	}
	m.lastExport = path
	m.notice = downloadedNotice
	m.noticeError = false
}

func (m *Model) closeOverlay() {
	m.mode = ModeClosed
	m.notice = ""
	m.noticeError = false
	m.titleInput.Blur()
	m.descInput.Blur()
}

func storeErrCmd(op, id string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return StoreErrMsg{Op: op, TaskID: id, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.mode == ModeClosed {
		if key.Matches(keyMsg, m.keys.Open) {
			m.Open()
			return m, textinput.Blink
		}
		return m, nil
	}
	if m.notice != "" {
		if key.Matches(keyMsg, m.keys.Dismiss) {
			m.notice = ""
			m.noticeError = false
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Close):
		m.Close()
		return m, nil
	case key.Matches(keyMsg, m.keys.Save):
		return m, m.Save()
	case key.Matches(keyMsg, m.keys.Delete):
		return m, m.Delete()
	case key.Matches(keyMsg, m.keys.Download):
		m.Download()
		return m, nil
	case key.Matches(keyMsg, m.keys.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case key.Matches(keyMsg, m.keys.Prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	// The widgets sanitize seeded text, so the draft only takes their value
	// after an actual edit.
	case fieldTitle:
		before := m.titleInput.Value()
		m.titleInput, cmd = m.titleInput.Update(msg)
		if after := m.titleInput.Value(); after != before {
			m.draft.Title = after
		}
	case fieldDescription:
		before := m.descInput.Value()
		m.descInput, cmd = m.descInput.Update(msg)
		if after := m.descInput.Value(); after != before {
			m.draft.Description = after
		}
	case fieldPriority:
		switch {
		case key.Matches(keyMsg, m.keys.Left):
			m.movePriority(-1)
		case key.Matches(keyMsg, m.keys.Right):
			m.movePriority(1)
		}
	}
	return m, cmd
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.titleInput.Blur()
	m.descInput.Blur()
	switch f {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDescription:
		m.descInput.Focus()
	}
}

// selectedPriority is what the selector shows: an empty draft shows normal.
func (m Model) selectedPriority() task.Priority {
	if m.draft.Priority == "" {
		return task.Normal
	}
	return m.draft.Priority
}

func (m *Model) movePriority(delta int) {
	options := task.Priorities()
	current := 1
	for i, p := range options {
		if p == m.selectedPriority() {
			current = i
			break
		}
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(options) {
		next = len(options) - 1
	}
	m.draft.Priority = options[next]
}

func (m Model) innerWidth() int {
	w := m.width - 4
	if w < 8 {
		w = 8
	}
	return w
}

func (m Model) overlayInnerWidth() int {
	w := m.width
	if w > maxOverlayWidth {
		w = maxOverlayWidth
	}
	w -= 6
	if w < 12 {
		w = 12
	}
	return w
}

// View renders the card summary. It is always present.
func (m Model) View() string {
	inner := m.innerWidth()
	title := m.task.Title
	if title == "" {
		title = placeholderTitle
	}
	description := m.task.Description
	if description == "" {
		description = placeholderDescription
	}
	lines := []string{
		m.styles.Title.Render(truncate(title, inner)),
		m.styles.Description.Render(wrapText(description, inner)),
	}
	if m.task.Priority != "" {
		lines = append(lines, "", m.styles.Badge.Render("Priority: "+string(m.task.Priority)))
	}
	style := m.styles.Card(m.CardTone()).Width(inner + 2)
	if m.focused {
		style = style.BorderForeground(m.styles.CardFocused)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// OverlayView renders the edit dialog, or nothing when the card is closed.
func (m Model) OverlayView() string {
	if m.mode != ModeEditing {
		return ""
	}
	inner := m.overlayInnerWidth()
	var b strings.Builder
	b.WriteString(m.fieldLabel("Title", fieldTitle) + "\n")
	b.WriteString(m.titleInput.View() + "\n\n")
	b.WriteString(m.fieldLabel("Description", fieldDescription) + "\n")
	b.WriteString(m.descInput.View() + "\n\n")
	b.WriteString(m.fieldLabel("Priority", fieldPriority) + "\n")
	b.WriteString(m.priorityView() + "\n\n")
	b.WriteString(m.styles.Muted.Render("Editing Task") + "\n")
	b.WriteString(m.help.View(m.keys))

	dialog := m.styles.Overlay(m.OverlayTone()).Width(inner + 4).Render(b.String())
	if m.notice == "" {
		return dialog
	}
	return lipgloss.JoinVertical(lipgloss.Left, dialog, m.noticeView())
}

func (m Model) fieldLabel(label string, f field) string {
	if m.focus == f {
		return m.styles.Selected.UnsetPadding().Render("▶ " + label)
	}
	return m.styles.Label.Render("  " + label)
}

func (m Model) priorityView() string {
	selected := m.selectedPriority()
	parts := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		label := strings.ToUpper(string(p[:1])) + string(p[1:])
		if p == selected {
			parts = append(parts, m.styles.Selected.Render("["+label+"]"))
			continue
		}
		parts = append(parts, m.styles.Option.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) noticeView() string {
	style := m.styles.Notice
	if m.noticeError {
		style = m.styles.NoticeError
	}
	return style.Render(m.notice + "\n\n" + m.styles.Muted.Render("enter: ok"))
}
