package tui

import (
	"context"
	"strings"

	"outline-cli/internal/filter"
	"outline-cli/internal/model"
	"outline-cli/internal/nav"
	"outline-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures one outline session.
type Options struct {
	// Title is shown in the header (usually the source path).
	Title string
	// ContextID scopes persisted pane and view state.
	ContextID string
	// Load builds the outline. It runs at start and again after every source change.
	Load func() ([]model.Node, error)
	// WatchPath, when set, is watched for changes that trigger Load.
	WatchPath string

	Nav        nav.Options
	Glyphs     string
	PaneWidth  int
	SelectedID string
	ShowDetail bool

	Store  store.PaneStore
	Logger *zap.Logger
}

// Result is what the session reports back after quitting.
type Result struct {
	// Activated is the last node activated with enter/space or a click, if any.
	Activated *model.Node
	ActiveID  string
}

// searchExpandDepth opens every matched subtree when a search session starts.
const searchExpandDepth = 1 << 30

type sourceLoadedMsg struct {
	nodes []model.Node
	err   error
}

type stateSavedMsg struct {
	err error
}

type Model struct {
	opts   Options
	keys   keyMap
	rows   rowRenderer
	logger *zap.Logger

	all []model.Node

	// browse holds the unfiltered navigation state; search is a separate navigator that
	// lives only while a query is active, so searching never disturbs browse state.
	browse *nav.Navigator
	search *nav.Navigator

	filter    textinput.Model
	filtering bool
	query     string

	detail     viewport.Model
	showDetail bool
	detailKey  string

	width  int
	height int
	pane   store.PaneState

	activated *model.Node
	status    string
	loadErr   error
}

// NewModel loads the outline and restores persisted state.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 256

	m := Model{
		opts:       opts,
		keys:       defaultKeyMap(),
		rows:       newRowRenderer(),
		logger:     logger,
		browse:     nav.New(opts.Nav),
		filter:     ti,
		detail:     viewport.New(0, 0),
		showDetail: opts.ShowDetail,
		pane:       store.PaneState{Width: opts.PaneWidth},
	}
	m.restore(context.Background())

	if opts.Load != nil {
		nodes, err := opts.Load()
		m.loadErr = err
		m.all = nodes
	}
	m.browse.SetNodes(m.all)
	if opts.SelectedID != "" {
		m.browse.Reveal(opts.SelectedID)
	}
	if m.query != "" {
		m.filter.SetValue(m.query)
		m.applyQuery()
	}
	m.syncDetail()
	return m
}

func (m *Model) restore(ctx context.Context) {
	if m.opts.Store == nil || m.opts.ContextID == "" {
		return
	}
	if ps, err := store.LoadPaneState(ctx, m.opts.Store, m.opts.ContextID); err != nil {
		m.logger.Warn("load pane state", zap.Error(err))
	} else {
		if ps.Width > 0 {
			m.pane.Width = ps.Width
		}
		m.pane.Collapsed = ps.Collapsed
	}
	vs, err := store.LoadViewState(ctx, m.opts.Store, m.opts.ContextID)
	if err != nil {
		m.logger.Warn("load view state", zap.Error(err))
		return
	}
	if len(vs.Known) > 0 {
		m.browse.Restore(nav.NewExpandSet(vs.Expanded...), nav.NewExpandSet(vs.Known...), vs.ActiveID)
	}
	m.query = strings.TrimSpace(vs.Query)
	m.showDetail = m.showDetail || vs.ShowDetail
}

// viewState snapshots browse state for the next session.
func (m Model) viewState() *store.ViewState {
	return &store.ViewState{
		Version:    1,
		ActiveID:   m.browse.ActiveID(),
		Expanded:   m.browse.Expanded().IDs(),
		Known:      m.browse.Known().IDs(),
		Query:      m.query,
		ShowDetail: m.showDetail,
	}
}

func (m Model) saveViewState(ctx context.Context) error {
	if m.opts.Store == nil || m.opts.ContextID == "" {
		return nil
	}
	return store.SaveViewState(ctx, m.opts.Store, m.opts.ContextID, m.viewState())
}

func (m Model) savePaneCmd() tea.Cmd {
	if m.opts.Store == nil || m.opts.ContextID == "" {
		return nil
	}
	s, id, st := m.opts.Store, m.opts.ContextID, m.pane
	return func() tea.Msg {
		return stateSavedMsg{err: store.SavePaneState(context.Background(), s, id, st)}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	load := m.opts.Load
	if load == nil {
		return nil
	}
	return func() tea.Msg {
		nodes, err := load()
		return sourceLoadedMsg{nodes: nodes, err: err}
	}
}

// current is the navigator the user is looking at.
func (m *Model) current() *nav.Navigator {
	if m.search != nil {
		return m.search
	}
	return m.browse
}

// applyQuery rebuilds the search view for m.query. An empty query ends the search and
// returns to browse state with the searched row revealed.
func (m *Model) applyQuery() {
	if strings.TrimSpace(m.query) == "" {
		if m.search != nil {
			last := m.search.ActiveID()
			m.search = nil
			if last != "" {
				m.browse.Reveal(last)
			}
		}
		return
	}
	if m.search == nil {
		opts := m.browse.Options()
		opts.DefaultExpandDepth = searchExpandDepth
		m.search = nav.New(opts)
		m.search.SetViewport(m.browse.Height())
	}
	m.search.SetNodes(filter.Apply(m.all, m.query))
}

// setNodes installs a rebuilt tree in both navigators.
func (m *Model) setNodes(nodes []model.Node) {
	m.all = nodes
	m.browse.SetNodes(nodes)
	if m.search != nil {
		m.search.SetNodes(filter.Apply(nodes, m.query))
	}
}

func (m Model) result() Result {
	r := Result{ActiveID: m.current().ActiveID()}
	if m.activated != nil {
		n := *m.activated
		r.Activated = &n
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return nil
}
