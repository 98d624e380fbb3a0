package viewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thushan/ollaview/internal/config"
	"github.com/thushan/ollaview/internal/core/domain"
	"github.com/thushan/ollaview/internal/core/ports"
	"github.com/thushan/ollaview/internal/logger"
	"github.com/thushan/ollaview/pkg/format"
	"github.com/thushan/ollaview/theme"
)

const (
	// header, details, button, status, help and the table border
	chromeHeight  = 8
	minTableRows  = 3
	minColumnSize = 8

	statusRefreshing = "正在获取模型列表…"
)

// RefreshMsg asks the viewer to start a refresh cycle. It is ignored while
// one is already in progress.
type RefreshMsg struct{}

// fetchResultMsg carries the outcome of the background fetch back onto the
// event loop, nothing touches the table before it arrives
type fetchResultMsg struct {
	list  *domain.ModelList
	err   error
	cycle int
}

type Options struct {
	Context  context.Context
	Lister   ports.ModelLister
	Recorder ports.RefreshRecorder
	Logger   *logger.StyledLogger
	Theme    *theme.Theme
	Window   config.WindowConfig
	Icon     string
}

// Model is the viewer window. The refresh control is disabled exactly while
// refreshing is set, which is the only thing preventing concurrent fetches.
type Model struct {
	ctx      context.Context
	lister   ports.ModelLister
	recorder ports.RefreshRecorder
	logger   *logger.StyledLogger
	dialog   *errorDialog
	last     *domain.ModelList
	now      func() time.Time

	styles  theme.UIStyles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	table   table.Model

	title     string
	icon      string
	status    string
	statusErr bool

	width      int
	height     int
	cycle      int
	refreshing bool
}

func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}

	styles := opts.Theme.UI

	t := table.New(
		table.WithColumns(columnsFor(opts.Window.Columns())),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = styles.TableHeader
	ts.Selected = styles.TableSelected
	ts.Cell = styles.TableCell
	t.SetStyles(ts)

	m := Model{
		ctx:      opts.Context,
		lister:   opts.Lister,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		now:      time.Now,
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Title)),
		table:    t,
		title:    opts.Window.Title,
		icon:     opts.Icon,
	}
	m.resize(opts.Window.Columns(), opts.Window.Rows())
	return m
}

// Init sets the terminal title and starts the first refresh straight away
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.title),
		func() tea.Msg { return RefreshMsg{} },
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case RefreshMsg:
		return m.beginRefresh()

	case fetchResultMsg:
		return m.completeRefresh(msg)

	case spinner.TickMsg:
		if !m.refreshing || m.dialog != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// modal: nothing but dismissal gets past the dialog
	if m.dialog != nil {
		if key.Matches(msg, m.keys.Dismiss) {
			m.dismissDialog()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m.beginRefresh()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) beginRefresh() (tea.Model, tea.Cmd) {
	if m.refreshing {
		m.logger.Debug("Refresh ignored, one is already in flight", "cycle", m.cycle)
		return m, nil
	}

	m.refreshing = true
	m.cycle++
	m.last = nil
	m.table.SetRows(nil)
	m.table.GotoTop()
	m.status = statusRefreshing
	m.statusErr = false

	m.logger.Debug("Refreshing model list", "cycle", m.cycle)
	return m, tea.Batch(m.spinner.Tick, m.fetch(m.cycle))
}

// fetch runs on its own goroutine (Bubble Tea executes commands off the
// event loop) and only reports back through the returned message
func (m Model) fetch(cycle int) tea.Cmd {
	ctx, lister := m.ctx, m.lister
	return func() tea.Msg {
		if lister == nil {
			return fetchResultMsg{cycle: cycle, err: fmt.Errorf("no model lister configured")}
		}
		list, err := lister.ListModels(ctx)
		return fetchResultMsg{cycle: cycle, list: list, err: err}
	}
}

func (m Model) completeRefresh(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	if !m.refreshing || msg.cycle != m.cycle {
		m.logger.Debug("Dropping stale refresh result", "cycle", msg.cycle, "current", m.cycle)
		return m, nil
	}

	if msg.err == nil && msg.list == nil {
		msg.list = &domain.ModelList{}
	}

	m.table.SetRows(ResultRows(msg.list, msg.err))
	m.table.GotoTop()

	if msg.err != nil {
		kind := domain.KindOf(msg.err)
		if m.recorder != nil {
			m.recorder.RecordFailure(kind)
		}
		m.logger.ErrorWithDetail("Unable to list models", endpointOf(msg), []any{"kind", kind.String()}, []any{"error", msg.err})

		m.status = DialogMessage(msg.err)
		m.statusErr = true
		// the control is re-enabled once the dialog goes away
		m.dialog = newErrorDialog(msg.err)
		return m, nil
	}

	m.last = msg.list
	if m.recorder != nil {
		m.recorder.RecordSuccess(msg.list)
	}
	m.logger.InfoWithCount("Listed models", msg.list.Len(), "endpoint", endpointOf(msg), "latency", msg.list.Latency)

	if msg.list.IsEmpty() {
		m.status = RowNoModels
	} else {
		m.status = fmt.Sprintf("共 %d 个模型 · %s", msg.list.Len(), format.Latency(msg.list.Latency))
	}
	m.statusErr = false
	m.finishRefresh()
	return m, nil
}

func (m *Model) dismissDialog() {
	m.dialog = nil
	m.finishRefresh()
}

// finishRefresh is the last step of every cycle, whatever the outcome
func (m *Model) finishRefresh() {
	m.refreshing = false
}

func endpointOf(msg fetchResultMsg) string {
	if msg.list != nil {
		return msg.list.Endpoint
	}
	return ""
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.help.Width = width

	m.table.SetColumns(columnsFor(width))
	m.table.SetWidth(width - 2)
	m.table.SetHeight(max(height-chromeHeight, minTableRows))
}

// columnsFor splits the width evenly between the three columns, each cell
// carries one cell of padding on both sides and the table has a border
func columnsFor(width int) []table.Column {
	each := max((width-2)/3-2, minColumnSize)
	titles := Columns()
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: each}
	}
	return cols
}

// Refreshing reports whether a refresh cycle is in progress, i.e. whether
// the refresh control is disabled
func (m Model) Refreshing() bool {
	return m.refreshing
}

// DialogVisible reports whether the modal error dialog is open
func (m Model) DialogVisible() bool {
	return m.dialog != nil
}

// Rows returns the current table contents
func (m Model) Rows() []table.Row {
	return m.table.Rows()
}

func (m Model) View() string {
	width := m.width
	if m.dialog != nil {
		body := lipgloss.Place(width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center,
			m.dialog.view(m.styles, width))
		return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(dialogKeys{dismiss: m.keys.Dismiss}))
	}

	sections := []string{
		m.headerView(),
		m.styles.TableBorder.Render(m.table.View()),
		m.detailsView(),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, m.buttonView()),
		m.statusView(),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	var b strings.Builder
	if m.icon != "" {
		b.WriteString(m.styles.Icon.Render(m.icon))
	}
	b.WriteString(m.styles.Title.Render(m.title))
	if m.refreshing {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	return b.String()
}

func (m Model) buttonView() string {
	if m.refreshing {
		return m.styles.ButtonDisabled.Render(RefreshLabel)
	}
	return m.styles.Button.Render(RefreshLabel)
}

func (m Model) statusView() string {
	if m.statusErr {
		return m.styles.StatusError.Render(m.status)
	}
	return m.styles.Status.Render(m.status)
}

// detailsView shows the human friendly size and age of the selected model
func (m Model) detailsView() string {
	if m.last.IsEmpty() {
		return m.styles.Details.Render(" ")
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= m.last.Len() {
		return m.styles.Details.Render(" ")
	}
	return m.styles.Details.Render(describeRecord(m.last.Models[idx], m.now()))
}

func describeRecord(r domain.ModelRecord, now time.Time) string {
	parts := []string{r.Name}
	if r.HasSize {
		parts = append(parts, format.Size(r.SizeBytes))
	}
	if t, ok := r.ModifiedTime(); ok {
		parts = append(parts, "修改于 "+format.Age(t, now))
	}
	return strings.Join(parts, " · ")
}
