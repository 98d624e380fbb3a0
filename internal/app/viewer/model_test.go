package viewer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/ollaview/internal/adapter/discovery"
	"github.com/thushan/ollaview/internal/adapter/stats"
	"github.com/thushan/ollaview/internal/config"
	"github.com/thushan/ollaview/internal/core/domain"
	"github.com/thushan/ollaview/internal/logger"
)

type fakeLister struct {
	list  *domain.ModelList
	err   error
	mu    sync.Mutex
	calls int
}

func (f *fakeLister) ListModels(_ context.Context) (*domain.ModelList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.list, f.err
}

func (f *fakeLister) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var (
	keyR     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyQ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	errBoom  = errors.New("boom")
)

func newTestModel(lister *fakeLister, recorder *stats.RefreshCollector) Model {
	opts := Options{
		Lister: lister,
		Logger: logger.NewNop(),
		Window: config.DefaultConfig().Window,
	}
	if recorder != nil {
		opts.Recorder = recorder
	}
	return New(opts)
}

// runCmd executes cmd and any batched commands, returning the messages they
// produced. Commands run synchronously here, standing in for the goroutines
// Bubble Tea would use.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// deliver feeds every fetch result produced by cmd back into the model
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if res, ok := msg.(fetchResultMsg); ok {
			m, _ = update(t, m, res)
		}
	}
	return m
}

func refresh(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := update(t, m, RefreshMsg{})
	require.True(t, m.Refreshing(), "refresh control must be disabled while fetching")
	require.Empty(t, m.Rows(), "table must be cleared when a refresh starts")
	return deliver(t, m, cmd)
}

func recordsList(records ...domain.ModelRecord) *domain.ModelList {
	return &domain.ModelList{Models: records, Latency: 3 * time.Millisecond}
}

func TestInit_RequestsRefresh(t *testing.T) {
	m := newTestModel(&fakeLister{list: recordsList()}, nil)

	msgs := runCmd(m.Init())
	assert.Contains(t, msgs, tea.Msg(RefreshMsg{}))
	assert.False(t, m.Refreshing())
}

func TestRefresh_RecordsInServiceOrder(t *testing.T) {
	lister := &fakeLister{list: recordsList(
		domain.ModelRecord{Name: "qwen2.5:7b", Size: "4683087332", Modified: "2024-09-20T08:00:00Z"},
		domain.ModelRecord{Name: "gemma3:12b", Size: "8149190253", Modified: "2025-03-12T12:00:00Z"},
		domain.ModelRecord{Name: "all-minilm", Size: "45960996", Modified: "2024-01-01T00:00:00Z"},
	)}
	m := refresh(t, newTestModel(lister, nil))

	assert.Equal(t, []table.Row{
		{"qwen2.5:7b", "4683087332", "2024-09-20T08:00:00Z"},
		{"gemma3:12b", "8149190253", "2025-03-12T12:00:00Z"},
		{"all-minilm", "45960996", "2024-01-01T00:00:00Z"},
	}, m.Rows())
	assert.False(t, m.Refreshing())
	assert.False(t, m.DialogVisible())
	assert.Equal(t, 1, lister.Calls())
}

func TestRefresh_EmptyShowsPlaceholder(t *testing.T) {
	m := refresh(t, newTestModel(&fakeLister{list: recordsList()}, nil))

	assert.Equal(t, []table.Row{{"未找到已安装的模型", "", ""}}, m.Rows())
	assert.False(t, m.Refreshing())
	assert.False(t, m.DialogVisible())
}

func TestRefresh_NilListIsEmpty(t *testing.T) {
	collector := stats.NewRefreshCollector()
	m := newTestModel(&fakeLister{}, collector)

	require.NotPanics(t, func() { m = refresh(t, m) })

	assert.Equal(t, []table.Row{{"未找到已安装的模型", "", ""}}, m.Rows())
	assert.False(t, m.Refreshing())
	assert.False(t, m.DialogVisible())
	assert.Equal(t, int64(1), collector.GetStats().EmptyResults)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestRefresh_Failures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedRow table.Row
		message     string
	}{
		{
			name:        "connection",
			err:         &discovery.ConnectionError{URL: "http://localhost:11434/api/tags", Err: errors.New("connection refused")},
			expectedRow: table.Row{"无法连接到 Ollama 服务", "", ""},
			message:     "无法连接到 Ollama 服务，请确保 Ollama 正在运行",
		},
		{
			name:        "service",
			err:         &discovery.ServiceError{URL: "http://localhost:11434/api/tags", StatusCode: 500},
			expectedRow: table.Row{"获取模型列表失败", "", ""},
			message:     "无法连接到 Ollama 服务",
		},
		{
			name: "unexpected",
			err: &discovery.UnexpectedError{
				Operation: "parse_response",
				Err:       &discovery.ParseError{Format: "json", Err: errors.New("invalid JSON")},
			},
			expectedRow: table.Row{"错误: failed to parse json response: invalid JSON", "", ""},
			message:     "发生错误：failed to parse json response: invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := refresh(t, newTestModel(&fakeLister{err: tt.err}, nil))

			assert.Equal(t, []table.Row{tt.expectedRow}, m.Rows())
			require.True(t, m.DialogVisible(), "a failure must raise the dialog")
			assert.True(t, m.Refreshing(), "control stays disabled until the dialog is dismissed")
			assert.Contains(t, m.View(), tt.message)

			m, _ = update(t, m, keyEnter)
			assert.False(t, m.DialogVisible())
			assert.False(t, m.Refreshing())
			assert.Equal(t, []table.Row{tt.expectedRow}, m.Rows(), "the failure row outlives the dialog")
		})
	}
}

func TestDialog_IsModal(t *testing.T) {
	lister := &fakeLister{err: &discovery.ConnectionError{Err: errors.New("refused")}}
	m := refresh(t, newTestModel(lister, nil))
	require.True(t, m.DialogVisible())

	m, cmd := update(t, m, keyR)
	assert.Nil(t, cmd, "refresh must not start behind the dialog")
	assert.True(t, m.DialogVisible())

	m, cmd = update(t, m, keyQ)
	assert.Nil(t, cmd)
	assert.True(t, m.DialogVisible())

	m, _ = update(t, m, keyEsc)
	assert.False(t, m.DialogVisible())
	assert.False(t, m.Refreshing())
	assert.Equal(t, 1, lister.Calls())
}

func TestDialog_CtrlCStillQuits(t *testing.T) {
	m := refresh(t, newTestModel(&fakeLister{err: &discovery.ServiceError{StatusCode: 404}}, nil))
	require.True(t, m.DialogVisible())

	_, cmd := update(t, m, keyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRefresh_GuardIgnoresSecondTrigger(t *testing.T) {
	lister := &fakeLister{list: recordsList(domain.ModelRecord{Name: "llama3:8b"})}
	m := newTestModel(lister, nil)

	m, first := update(t, m, RefreshMsg{})
	require.True(t, m.Refreshing())

	m, second := update(t, m, RefreshMsg{})
	assert.Nil(t, second)
	m, third := update(t, m, keyR)
	assert.Nil(t, third)

	m = deliver(t, m, first)
	assert.Equal(t, 1, lister.Calls())
	assert.False(t, m.Refreshing())
	assert.Len(t, m.Rows(), 1)
}

func TestRefresh_StaleResultDropped(t *testing.T) {
	m := newTestModel(&fakeLister{list: recordsList()}, nil)
	m, _ = update(t, m, RefreshMsg{})

	m, _ = update(t, m, fetchResultMsg{cycle: m.cycle - 1, list: recordsList(domain.ModelRecord{Name: "old"})})
	assert.True(t, m.Refreshing())
	assert.Empty(t, m.Rows())
}

func TestRefresh_IsIdempotent(t *testing.T) {
	lister := &fakeLister{list: recordsList(
		domain.ModelRecord{Name: "llama3:8b", Size: "4700000000", Modified: "2024-05-01T10:00:00Z"},
		domain.ModelRecord{Name: "phi3:mini", Size: "2176178913", Modified: "2024-04-23T09:00:00Z"},
	)}
	m := refresh(t, newTestModel(lister, nil))
	first := m.Rows()

	m = refresh(t, m)
	assert.Equal(t, first, m.Rows())
	assert.Equal(t, 2, lister.Calls())
}

func TestRefresh_EveryOutcomeEndsEnabled(t *testing.T) {
	listers := []*fakeLister{
		{list: recordsList(domain.ModelRecord{Name: "a"})},
		{list: recordsList()},
		{err: &discovery.ConnectionError{Err: errors.New("refused")}},
		{err: &discovery.ServiceError{StatusCode: 503}},
		{err: &discovery.UnexpectedError{Operation: "http_request", Err: context.DeadlineExceeded}},
		{err: errBoom},
	}

	for _, lister := range listers {
		m := refresh(t, newTestModel(lister, nil))
		if m.DialogVisible() {
			m, _ = update(t, m, keyEnter)
		}
		assert.False(t, m.Refreshing())
		assert.Contains(t, m.View(), RefreshLabel)
	}
}

func TestRefresh_KeyTriggers(t *testing.T) {
	lister := &fakeLister{list: recordsList(domain.ModelRecord{Name: "llama3:8b"})}
	m := newTestModel(lister, nil)

	for _, k := range []tea.KeyMsg{keyR, {Type: tea.KeyF5}, {Type: tea.KeyCtrlR}} {
		var cmd tea.Cmd
		m, cmd = update(t, m, k)
		require.True(t, m.Refreshing(), "key %q should start a refresh", k.String())
		m = deliver(t, m, cmd)
		require.False(t, m.Refreshing())
	}
	assert.Equal(t, 3, lister.Calls())
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(&fakeLister{}, nil)
	_, cmd := update(t, m, keyQ)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRefresh_RecordsStats(t *testing.T) {
	collector := stats.NewRefreshCollector()

	refresh(t, newTestModel(&fakeLister{list: recordsList(domain.ModelRecord{Name: "a"})}, collector))
	refresh(t, newTestModel(&fakeLister{err: &discovery.ConnectionError{Err: errors.New("refused")}}, collector))

	s := collector.GetStats()
	assert.EqualValues(t, 2, s.Attempts)
	assert.EqualValues(t, 1, s.Successes)
	assert.EqualValues(t, 1, s.FailuresByKind["connection"])
}

func TestView_Layout(t *testing.T) {
	lister := &fakeLister{list: recordsList(
		domain.ModelRecord{Name: "llama3:8b", Size: "4700000000", Modified: "2024-05-01T10:00:00Z", SizeBytes: 4700000000, HasSize: true},
		domain.ModelRecord{Name: "phi3:mini", Size: "2176178913", Modified: "2024-04-23T09:00:00Z", SizeBytes: 2176178913, HasSize: true},
	)}
	m := refresh(t, newTestModel(lister, nil))
	m.now = func() time.Time { return time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC) }

	view := m.View()
	for _, want := range []string{"Ollama 模型查看器", "名称", "大小", "修改时间", "刷新列表", "llama3:8b", "4.7GB", "共 2 个模型"} {
		assert.Contains(t, view, want)
	}

	m, _ = update(t, m, keyDown)
	assert.Contains(t, m.View(), "2.176GB")
}

func TestView_Resize(t *testing.T) {
	m := newTestModel(&fakeLister{}, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	for _, col := range m.table.Columns() {
		assert.Equal(t, 37, col.Width)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	for _, col := range m.table.Columns() {
		assert.Equal(t, minColumnSize, col.Width)
	}
}

func TestDescribeRecord(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "llama3:8b · 4.7GB · 修改于 2 days ago", describeRecord(domain.ModelRecord{
		Name: "llama3:8b", Modified: "2024-05-01T10:00:00Z", SizeBytes: 4700000000, HasSize: true,
	}, now))
	assert.Equal(t, "Unknown", describeRecord(domain.ModelRecord{Name: "Unknown", Size: "Unknown", Modified: "Unknown"}, now))
}

func TestEndToEnd_Scenarios(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models": [{"name": "llama3:8b", "size": 4700000000, "modified": "2024-05-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig().Service
	cfg.URL = srv.URL
	m := New(Options{
		Lister: discovery.NewTagsClient(cfg, logger.NewNop()),
		Window: config.DefaultConfig().Window,
	})

	m = refresh(t, m)
	assert.Equal(t, []table.Row{{"llama3:8b", "4700000000", "2024-05-01T10:00:00Z"}}, m.Rows())

	// service goes away
	srv.Close()
	m = refresh(t, m)
	assert.Equal(t, []table.Row{{"无法连接到 Ollama 服务", "", ""}}, m.Rows())
	assert.True(t, m.DialogVisible())
	assert.True(t, m.Refreshing())

	m, _ = update(t, m, keyEnter)
	assert.False(t, m.Refreshing())
}
