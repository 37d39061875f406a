package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todocard/internal/card"
	"todocard/internal/store"
	"todocard/internal/task"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "26", Dark: "69"}
	colorMuted  = lipgloss.Color("241")
)

const minCardWidth = 24

// observedRepo records successful writes made through it so the board
// knows when the cards changed the store underneath it.
type observedRepo struct {
	store.Repository

	mu    sync.Mutex
	dirty bool
}

func (r *observedRepo) Update(ctx context.Context, id, title, description string, priority task.Priority) error {
	err := r.Repository.Update(ctx, id, title, description, priority)
	if err == nil {
		r.markDirty()
	}
	return err
}

func (r *observedRepo) Remove(ctx context.Context, id string) error {
	err := r.Repository.Remove(ctx, id)
	if err == nil {
		r.markDirty()
	}
	return err
}

func (r *observedRepo) markDirty() {
	r.mu.Lock()
	r.dirty = true
	r.mu.Unlock()
}

// takeDirty reports whether a write happened since the last call.
func (r *observedRepo) takeDirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	dirty := r.dirty
	r.dirty = false
	return dirty
}

type tasksLoadedMsg struct{ tasks []task.Task }

type taskAddedMsg struct {
	task  task.Task
	tasks []task.Task
}

type refreshMsg struct{}

type okMsg struct{ msg string }

type errMsg struct{ err error }

type boardModel struct {
	app    *App
	repo   *observedRepo
	ctx    context.Context
	styles card.Styles

	cards  []card.Model
	cursor int
	offset int
	openID string

	loaded  bool
	status  string
	refresh time.Duration

	winW int
	winH int
}

func startTUI(ctx context.Context, app *App) error {
	model := newBoardModel(ctx, app)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newBoardModel(ctx context.Context, app *App) boardModel {
	styles := card.DefaultStyles()
	styles.CardFocused = colorAccent
	m := boardModel{
		app:    app,
		repo:   &observedRepo{Repository: app.Repo},
		ctx:    ctx,
		styles: styles,
	}
	if app.Config != nil && app.Config.RefreshSeconds > 0 {
		m.refresh = time.Duration(app.Config.RefreshSeconds) * time.Second
	}
	return m
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m boardModel) loadCmd() tea.Cmd {
	repo := m.repo
	ctx := m.ctx
	return func() tea.Msg {
		items, err := repo.List(ctx)
		if err != nil {
			return errMsg{err: fmt.Errorf("load tasks: %w", err)}
		}
		return tasksLoadedMsg{tasks: items}
	}
}

func (m boardModel) addTaskCmd() tea.Cmd {
	repo := m.repo
	ctx := m.ctx
	return func() tea.Msg {
		created, err := repo.Add(ctx, "", "", "")
		if err != nil {
			return errMsg{err: fmt.Errorf("add task: %w", err)}
		}
		items, err := repo.List(ctx)
		if err != nil {
			return errMsg{err: fmt.Errorf("load tasks: %w", err)}
		}
		return taskAddedMsg{task: created, tasks: items}
	}
}

func (m boardModel) tickCmd() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW = msg.Width
		m.winH = msg.Height
		m.resizeCards()
		m.ensureVisible()
		return m, nil
	case tasksLoadedMsg:
		m.applyTasks(msg.tasks)
		return m, nil
	case taskAddedMsg:
		m.applyTasks(msg.tasks)
		m.status = "✅ Task created"
		m.openCard(msg.task.ID)
		return m, nil
	case refreshMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	case card.StoreErrMsg:
		m.status = msg.Error()
		m.app.logWarn("store call failed", "op", msg.Op, "id", msg.TaskID, "err", msg.Err)
		if errors.Is(msg.Err, store.ErrNotFound) {
			return m, m.loadCmd()
		}
		return m, nil
	case okMsg:
		m.status = msg.msg
		return m, nil
	case errMsg:
		m.status = msg.err.Error()
		m.app.logWarn("board error", "err", msg.err)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.openID != "" {
			return m.updateOpenCard(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "n":
		m.status = ""
		return m, m.addTaskCmd()
	case "r":
		m.status = "Reloading..."
		return m, m.loadCmd()
	}
	if len(m.cards) == 0 {
		return m, nil
	}
	m.status = ""
	var cmd tea.Cmd
	m.cards[m.cursor], cmd = m.cards[m.cursor].Update(msg)
	if m.cards[m.cursor].Editing() {
		m.openID = m.cards[m.cursor].Task().ID
	}
	return m, cmd
}

func (m boardModel) updateOpenCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.indexOf(m.openID)
	if idx < 0 {
		m.openID = ""
		return m, nil
	}
	hadNotice := m.cards[idx].Notice() != ""
	var cmd tea.Cmd
	m.cards[idx], cmd = m.cards[idx].Update(msg)
	if !hadNotice && m.cards[idx].Notice() != "" {
		m.app.logDebug("note download", "id", m.openID, "notice", m.cards[idx].Notice(), "path", m.cards[idx].LastExport())
	}
	if !m.cards[idx].Editing() {
		m.openID = ""
	}
	if m.repo.takeDirty() {
		return m, tea.Batch(cmd, m.loadCmd())
	}
	return m, cmd
}

// applyTasks pushes a fresh task list into the cards. Existing cards are
// re-supplied with their task, which resets any draft in progress.
func (m *boardModel) applyTasks(items []task.Task) {
	byID := make(map[string]card.Model, len(m.cards))
	for _, c := range m.cards {
		byID[c.Task().ID] = c
	}
	next := make([]card.Model, 0, len(items))
	for _, t := range items {
		c, ok := byID[t.ID]
		if ok {
			c.SetTask(t)
		} else {
			c = m.newCard(t)
		}
		next = append(next, c)
	}
	m.cards = next
	m.loaded = true
	if m.openID != "" && m.indexOf(m.openID) < 0 {
		m.openID = ""
	}
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncFocus()
	m.ensureVisible()
}

func (m *boardModel) newCard(t task.Task) card.Model {
	return card.New(t, m.repo,
		card.WithContext(m.ctx),
		card.WithStyles(m.styles),
		card.WithExporter(m.app.Exporter),
		card.WithWidth(m.cardWidth()),
	)
}

// openCard opens the overlay for id. Only one overlay is up at a time, so a
// card that is already open gets closed first.
func (m *boardModel) openCard(id string) {
	idx := m.indexOf(id)
	if idx < 0 {
		return
	}
	if prev := m.indexOf(m.openID); prev >= 0 && prev != idx {
		m.cards[prev].Close()
	}
	m.cursor = idx
	m.syncFocus()
	m.ensureVisible()
	m.cards[idx].Open()
	m.openID = id
}

func (m boardModel) indexOf(id string) int {
	for i, c := range m.cards {
		if c.Task().ID == id {
			return i
		}
	}
	return -1
}

func (m *boardModel) moveCursor(delta int) {
	if len(m.cards) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	m.syncFocus()
	m.ensureVisible()
}

func (m *boardModel) syncFocus() {
	for i := range m.cards {
		m.cards[i].SetFocused(i == m.cursor)
	}
}

func (m boardModel) cardWidth() int {
	if m.winW == 0 {
		return 0
	}
	width := m.winW - 4
	if width < minCardWidth {
		width = minCardWidth
	}
	return width
}

func (m *boardModel) resizeCards() {
	width := m.cardWidth()
	for i := range m.cards {
		m.cards[i].SetWidth(width)
	}
}

// ensureVisible scrolls so the cursor card fits in the window.
func (m *boardModel) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	avail := m.listHeight()
	if avail <= 0 {
		return
	}
	for m.offset < m.cursor {
		used := 0
		for i := m.offset; i <= m.cursor; i++ {
			used += lipgloss.Height(m.cards[i].View())
		}
		if used <= avail {
			break
		}
		m.offset++
	}
}

func (m boardModel) listHeight() int {
	if m.winH == 0 {
		return 0
	}
	// padding, header, help and status lines
	return m.winH - 8
}

func (m boardModel) View() string {
	padding := lipgloss.NewStyle().Padding(1, 2)
	status := ""
	if m.status != "" {
		status = "\n\n" + gray(m.status)
	}

	if idx := m.indexOf(m.openID); idx >= 0 {
		return padding.Render(renderHeader("Edit") + "\n\n" + m.cards[idx].OverlayView() + status)
	}
	if !m.loaded {
		return padding.Render(renderHeader("Tasks") + "\n\n" + gray("Loading...") + status)
	}
	body := gray("No tasks yet. Press n to add one.")
	if len(m.cards) > 0 {
		body = m.cardsView()
	}
	help := gray("enter: edit • n: new • r: reload • ↑/↓: move • q: quit")
	return padding.Render(renderHeader("Tasks") + "\n\n" + body + "\n\n" + help + status)
}

func (m boardModel) cardsView() string {
	avail := m.listHeight()
	views := make([]string, 0, len(m.cards))
	used := 0
	for i := m.offset; i < len(m.cards); i++ {
		v := m.cards[i].View()
		h := lipgloss.Height(v)
		if avail > 0 && used+h > avail && len(views) > 0 {
			break
		}
		used += h
		views = append(views, v)
	}
	return strings.Join(views, "\n")
}

func renderHeader(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("todocard") + " · " + lipgloss.NewStyle().Bold(true).Foreground(colorMuted).Render(title)
}

func (a *App) logWarn(msg string, args ...any) {
	if a == nil || a.Logger == nil {
		return
	}
	a.Logger.Warn(msg, args...)
}

func (a *App) logDebug(msg string, args ...any) {
	if a == nil || a.Logger == nil {
		return
	}
	a.Logger.Debug(msg, args...)
}
